package options

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcsim/macgen/internal/common/sweeperrors"
)

func validOptions() Options {
	o := Defaults()
	o.WCSimDir = "/opt/wcsim"
	o.G4System = "Linux-g++"
	return o
}

func TestParseList(t *testing.T) {
	tests := map[string]struct {
		input string
		want  List
	}{
		"single":        {"SuperK", List{"SuperK"}},
		"several":       {"0,8.4", List{"0", "8.4"}},
		"duplicates":    {"5,10,5,20,10", List{"5", "10", "20"}},
		"whitespace":    {" 5 , 10 ", List{"5", "10"}},
		"empty entries": {"5,,10,", List{"5", "10"}},
		"colon window":  {"100:900,200:800", List{"100:900", "200:800"}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseList(tc.input))
		})
	}
}

func TestParsePlacement(t *testing.T) {
	tests := map[string]struct {
		input string
		want  Placement
	}{
		"vector":       {"0,0,0", Vec("0", "0", "0")},
		"spaced":       {"1, -2.5 ,3", Vec("1", "-2.5", "3")},
		"symbol":       {"random", Sym("random")},
		"short vector": {"1,2", Placement{Kind: PlacementVector, Vector: []string{"1", "2"}}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParsePlacement(tc.input))
		})
	}
	assert.Equal(t, "1,0,0", Vec("1", "0", "0").String())
	assert.Equal(t, "4pi", Sym("4pi").String())
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, validOptions().Validate())
}

func TestValidate_Invalid(t *testing.T) {
	tests := map[string]struct {
		mutate func(*Options)
		field  string
	}{
		"unknown geometry":      {func(o *Options) { o.Geometry = List{"SuperK", "Box"} }, "wcGeom[1]"},
		"non-numeric length":    {func(o *Options) { o.TankLength = List{"long"} }, "hkWaterTankLength[0]"},
		"unknown qe method":     {func(o *Options) { o.PMTQEMethod = List{"Magic"} }, "pmtQEMethod[0]"},
		"unknown coll eff":      {func(o *Options) { o.PMTCollEff = List{"maybe"} }, "pmtCollEff[0]"},
		"unknown digitizer":     {func(o *Options) { o.Digitizer = List{"SKII"} }, "daqDigitizer[0]"},
		"unknown trigger":       {func(o *Options) { o.Trigger = List{"Anisotropy"} }, "daqTrigger[0]"},
		"unknown failures mode": {func(o *Options) { o.SaveFailuresMode = List{"3"} }, "daqSaveFailuresMode[0]"},
		"empty energies":        {func(o *Options) { o.GunEnergy = nil }, "gunEnergy"},
		"unknown particle":      {func(o *Options) { o.GunParticle = "tau-" }, "gunParticle"},
		"noise mode 2":          {func(o *Options) { o.DarkNoiseMode = 2 }, "darkNoiseMode"},
		"zero events":           {func(o *Options) { o.NEvents = 0 }, "nEvents"},
		"unknown batch mode":    {func(o *Options) { o.BatchMode = "slurm" }, "batchMode"},
		"missing wcsim dir":     {func(o *Options) { o.WCSimDir = "" }, "wcsimDir"},
		"two component vector": {func(o *Options) { o.GunPosition = ParsePlacement("1,2") }, "gunPosition"},
		"four component vector": {
			func(o *Options) { o.GunDirection = ParsePlacement("1,0,0,0") }, "gunDirection",
		},
		"non-numeric vector": {func(o *Options) { o.GunPosition = Vec("0", "x", "0") }, "gunPosition"},
		"unknown position": {
			func(o *Options) { o.GunPosition = Sym("middle"); o.GunDirection = Sym("4pi") }, "gunPosition",
		},
		"unknown direction": {
			func(o *Options) { o.GunPosition = Sym("random"); o.GunDirection = Sym("up") }, "gunDirection",
		},
		"mixed kinds": {func(o *Options) { o.GunPosition = Sym("random") }, "gunDirection"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			o := validOptions()
			tc.mutate(&o)
			err := o.Validate()
			require.Error(t, err)
			assert.True(t, sweeperrors.IsInvalidArgument(err))

			var merr *multierror.Error
			require.True(t, errors.As(err, &merr))
			var names []string
			for _, e := range merr.Errors {
				var invalid *sweeperrors.ErrInvalidArgument
				require.True(t, errors.As(e, &invalid))
				names = append(names, invalid.Name)
			}
			assert.Contains(t, names, tc.field)
		})
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	o := validOptions()
	o.Geometry = List{"Box"}
	o.GunParticle = "tau-"
	o.NEvents = -1

	var merr *multierror.Error
	require.True(t, errors.As(o.Validate(), &merr))
	assert.Len(t, merr.Errors, 3)
}

func TestValidate_SymbolicPlacements(t *testing.T) {
	o := validOptions()
	o.GunPosition = Sym("random")
	o.GunDirection = Sym("4pi")
	assert.NoError(t, o.Validate())
}

func TestLoad(t *testing.T) {
	v := viper.New()
	v.Set("wcGeom", "HyperK,SuperK,HyperK")
	v.Set("hkWaterTankLength", "49500")
	v.Set("pmtQEMethod", "Stacking_Only")
	v.Set("pmtCollEff", "on,off")
	v.Set("daqDigitizer", "SKI")
	v.Set("daqTrigger", "NHits")
	v.Set("daqSaveFailuresMode", "0")
	v.Set("daqSaveFailuresTime", "200")
	v.Set("daqNHitsThreshold", "25")
	v.Set("daqNHitsWindow", "200")
	v.Set("daqNHitsIgnoreNoise", true)
	v.Set("daqLocalNHitsNeighbours", "50")
	v.Set("daqLocalNHitsThreshold", "10")
	v.Set("daqLocalNHitsWindow", "50")
	v.Set("darkNoiseRate", []interface{}{0, 8.4})
	v.Set("darkNoiseConvert", "1.367")
	v.Set("darkNoiseMode", "0")
	v.Set("darkNoiseWindow", "100:900")
	v.Set("gunParticle", "mu-")
	v.Set("gunEnergy", "5,10,20,50")
	v.Set("gunPosition", "random")
	v.Set("gunDirection", "4pi")
	v.Set("nEvents", 100)
	v.Set("batchMode", "condor")
	v.Set("outputDir", "out")
	v.Set("wcsimDir", "/opt/wcsim")

	o, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, List{"HyperK", "SuperK"}, o.Geometry)
	assert.Equal(t, List{"on", "off"}, o.PMTCollEff)
	assert.Equal(t, List{"0", "8.4"}, o.DarkNoiseRate)
	assert.Equal(t, 0, o.DarkNoiseMode)
	assert.Equal(t, List{"100:900"}, o.DarkNoiseWindow)
	assert.Equal(t, List{"5", "10", "20", "50"}, o.GunEnergy)
	assert.Equal(t, Sym("random"), o.GunPosition)
	assert.Equal(t, Sym("4pi"), o.GunDirection)
	assert.True(t, o.NHitsIgnoreNoise)
	assert.Equal(t, 100, o.NEvents)
	assert.Equal(t, BatchModeCondor, o.BatchMode)
}

func TestLoad_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("wcGeom", "Box")
	_, err := Load(v)
	assert.True(t, sweeperrors.IsInvalidArgument(err))
}

func TestDAQCompatibility(t *testing.T) {
	assert.True(t, CompatibleDAQ("SKI", "NHits"))
	assert.True(t, CompatibleDAQ("SKIV", "NHitsThenLocalNHits"))
	assert.True(t, CompatibleDAQ(SKDetSimDAQ, SKDetSimDAQ))
	assert.False(t, CompatibleDAQ("SKI", SKDetSimDAQ))
	assert.False(t, CompatibleDAQ(SKDetSimDAQ, "NHits"))
}

func TestTriggerFamilies(t *testing.T) {
	for _, trigger := range Choices(TriggerChoices) {
		assert.Equal(t, trigger != "NoTrigger", IsNHitsTrigger(trigger), trigger)
		assert.Equal(t, trigger == "NHitsThenLocalNHits", IsLocalNHitsTrigger(trigger), trigger)
	}
}

func TestChoiceNames(t *testing.T) {
	names := ChoiceNames()
	assert.Equal(t, len(AllChoices()), len(names))
	assert.IsIncreasing(t, names)
}
