package options

import (
	"golang.org/x/exp/maps"
	goslices "golang.org/x/exp/slices"
)

// Names of the allow-lists, as referenced by `choice=<name>` validation tags.
const (
	GeometryChoices         = "geometry"
	PMTQEMethodChoices      = "pmtQEMethod"
	PMTCollEffChoices       = "pmtCollEff"
	DigitizerChoices        = "digitizer"
	TriggerChoices          = "trigger"
	SaveFailuresModeChoices = "saveFailuresMode"
	ParticleChoices         = "particle"
	PositionChoices         = "position"
	DirectionChoices        = "direction"
	BatchModeChoices        = "batchMode"
)

const (
	BatchModeLocal  = "local"
	BatchModeCondor = "condor"

	// BaselineGeometry is the simulator's default detector; selecting it emits no geometry directive.
	BaselineGeometry = "SuperK"

	// SKDetSimDAQ names both the digitizer and the trigger that only work with each other.
	SKDetSimDAQ = "SKI_SKDETSIM"
)

var choices = map[string][]string{
	GeometryChoices: {
		"HyperK",
		"HyperK_withHPD",
		"SuperK",
		"SuperK_20inchPMT_20perCent",
		"SuperK_20inchBandL_20perCent",
		"SuperK_12inchBandL_15perCent",
		"SuperK_20inchBandL_14perCent",
		"Cylinder_12inchHPD_15perCent",
		"Cylinder_60x74_20inchBandL_14perCent",
		"Cylinder_60x74_20inchBandL_40perCent",
	},
	PMTQEMethodChoices:      {"Stacking_Only", "Stacking_And_SensitiveDetector", "SensitiveDetector_Only"},
	PMTCollEffChoices:       {"on", "off"},
	DigitizerChoices:        {"SKIV", "SKI", SKDetSimDAQ},
	TriggerChoices:          {"NHits", SKDetSimDAQ, "NHits2", "NHitsThenLocalNHits", "NoTrigger"},
	SaveFailuresModeChoices: {"0", "1", "2"},
	ParticleChoices:         {"e-", "e+", "mu-", "mu+", "pi-", "pi+", "pi0", "gamma", "p+", "n0"},
	PositionChoices:         {"center", "random", "wall", "minusx", "plusx", "minusz", "plusz"},
	DirectionChoices:        {"towall", "tocap", "4pi", "wall"},
	BatchModeChoices:        {BatchModeLocal, BatchModeCondor},
}

// Geometries whose water tank length can be configured.
var tankLengthGeometries = []string{"HyperK", "HyperK_withHPD"}

// Triggers configured through the /DAQ/TriggerNHits directives.
var nhitsTriggers = []string{"NHits", SKDetSimDAQ, "NHits2", "NHitsThenLocalNHits"}

// Triggers additionally configured through the /DAQ/TriggerLocalNHits directives.
var localNHitsTriggers = []string{"NHitsThenLocalNHits"}

// Choices returns a copy of the named allow-list, or nil if there is no such list.
func Choices(name string) []string {
	return goslices.Clone(choices[name])
}

// AllChoices returns a copy of every allow-list, keyed by list name.
func AllChoices() map[string][]string {
	rv := make(map[string][]string, len(choices))
	for _, name := range ChoiceNames() {
		rv[name] = Choices(name)
	}
	return rv
}

// ChoiceNames returns the allow-list names in sorted order.
func ChoiceNames() []string {
	names := maps.Keys(choices)
	goslices.Sort(names)
	return names
}

// IsChoice reports whether value is in the named allow-list.
func IsChoice(name string, value string) bool {
	return goslices.Contains(choices[name], value)
}

// HasConfigurableTankLength reports whether /WCSim/HyperK/waterTank_Length applies to geometry.
func HasConfigurableTankLength(geometry string) bool {
	return goslices.Contains(tankLengthGeometries, geometry)
}

// IsNHitsTrigger reports whether trigger takes the NHits threshold and window.
func IsNHitsTrigger(trigger string) bool {
	return goslices.Contains(nhitsTriggers, trigger)
}

// IsLocalNHitsTrigger reports whether trigger takes the local NHits neighbours, threshold and window.
func IsLocalNHitsTrigger(trigger string) bool {
	return goslices.Contains(localNHitsTriggers, trigger)
}

// CompatibleDAQ reports whether digitizer and trigger can be used together. The SKDETSIM trigger
// requires the SKDETSIM digitizer and vice versa; every other pairing is allowed.
func CompatibleDAQ(digitizer string, trigger string) bool {
	return (digitizer == SKDetSimDAQ) == (trigger == SKDetSimDAQ)
}
