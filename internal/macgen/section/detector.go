package section

import (
	"github.com/wcsim/macgen/internal/macgen/options"
)

// Verbosity returns the fixed block that silences the run, tracking and hits output.
func Verbosity(_ *options.Options) []Section {
	return []Section{{
		Block: []string{
			directive("/run/verbose", "0"),
			directive("/tracking/verbose", "0"),
			directive("/hits/verbose", "0"),
		},
	}}
}

// Geometry returns one section per detector geometry and, for geometries that support it,
// per water tank length. The baseline geometry is the simulator default and gets no
// selection directive.
func Geometry(o *options.Options) []Section {
	var sections []Section
	for _, geom := range o.Geometry {
		for _, length := range o.TankLength {
			var block []string
			fragment := geom
			if geom != options.BaselineGeometry {
				block = append(block, directive("/WCSim/WCgeom", geom))
			}
			if options.HasConfigurableTankLength(geom) {
				block = append(block, directive("/WCSim/HyperK/waterTank_Length", length))
				fragment += "_" + length
			}
			block = append(block, directive("/WCSim/Construct"))
			sections = appendUnique(sections, Section{Block: block, Fragment: fragment})
		}
	}
	return sections
}

// PMT returns one section per quantum efficiency method and collection efficiency setting.
func PMT(o *options.Options) []Section {
	var sections []Section
	for _, method := range o.PMTQEMethod {
		for _, collEff := range o.PMTCollEff {
			sections = appendUnique(sections, Section{
				Block: []string{
					directive("/WCSim/PMTQEMethod", method),
					directive("/WCSim/CollEff", collEff),
				},
				Fragment: method + "_PMTCollEff_" + collEff,
			})
		}
	}
	return sections
}
