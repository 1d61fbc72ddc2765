package section

import (
	"context"

	"github.com/wcsim/macgen/internal/macgen/kinematics"
	"github.com/wcsim/macgen/internal/macgen/options"
)

// VectorFileGenerator produces a vector file for a symbolic gun configuration and returns its name.
type VectorFileGenerator interface {
	Generate(ctx context.Context, r kinematics.Request) (string, error)
}

// ParticleGun returns one section per gun energy. With vector position and direction the
// Geant4 particle gun is configured directly. With symbolic ones gen is called once per
// energy and the resulting vector file is referenced instead.
func ParticleGun(ctx context.Context, o *options.Options, gen VectorFileGenerator) ([]Section, error) {
	var sections []Section
	for _, energy := range o.GunEnergy {
		var block []string
		if o.GunPosition.IsSymbol() {
			kinFile, err := gen.Generate(ctx, kinematics.Request{
				Events:    o.NEvents,
				Particle:  o.GunParticle,
				Energy:    energy,
				Position:  o.GunPosition.Symbol,
				Direction: o.GunDirection.Symbol,
			})
			if err != nil {
				return nil, err
			}
			block = []string{directive("/mygen/vecfile", kinFile)}
		} else {
			block = []string{
				directive("/mygen/generator", "normal"),
				directive("/gun/particle", o.GunParticle),
				directive("/gun/energy", energy, "MeV"),
				directive("/gun/direction", o.GunDirection.Vector...),
				directive("/gun/position", o.GunPosition.Vector...),
			}
		}
		sections = appendUnique(sections, Section{Block: block, Fragment: energy + o.GunParticle})
	}
	return sections, nil
}
