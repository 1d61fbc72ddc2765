// Package options holds the sweep configuration record and the rules for validating it.
//
// An Options value is built once from flags, environment and config file (see Load) and is
// treated as read-only afterwards. List fields carry every alternative of a sweep axis; the
// section builders expand them.
package options

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/wcsim/macgen/internal/common/config"
)

// Options is the full set of sweep parameters. The mapstructure names double as flag names
// and config file keys.
type Options struct {
	// Geometry
	Geometry   List `mapstructure:"wcGeom" validate:"min=1,dive,choice=geometry"`
	TankLength List `mapstructure:"hkWaterTankLength" validate:"min=1,dive,numeric"`

	// PMT behaviour
	PMTQEMethod List `mapstructure:"pmtQEMethod" validate:"min=1,dive,choice=pmtQEMethod"`
	PMTCollEff  List `mapstructure:"pmtCollEff" validate:"min=1,dive,choice=pmtCollEff"`

	// Digitization and triggering
	Digitizer            List `mapstructure:"daqDigitizer" validate:"min=1,dive,choice=digitizer"`
	Trigger              List `mapstructure:"daqTrigger" validate:"min=1,dive,choice=trigger"`
	SaveFailuresMode     List `mapstructure:"daqSaveFailuresMode" validate:"min=1,dive,choice=saveFailuresMode"`
	SaveFailuresTime     List `mapstructure:"daqSaveFailuresTime" validate:"min=1,dive,numeric"`
	NHitsThreshold       List `mapstructure:"daqNHitsThreshold" validate:"min=1,dive,numeric"`
	NHitsWindow          List `mapstructure:"daqNHitsWindow" validate:"min=1,dive,numeric"`
	NHitsIgnoreNoise     bool `mapstructure:"daqNHitsIgnoreNoise"`
	LocalNHitsNeighbours List `mapstructure:"daqLocalNHitsNeighbours" validate:"min=1,dive,numeric"`
	LocalNHitsThreshold  List `mapstructure:"daqLocalNHitsThreshold" validate:"min=1,dive,numeric"`
	LocalNHitsWindow     List `mapstructure:"daqLocalNHitsWindow" validate:"min=1,dive,numeric"`

	// Dark noise. The window shape depends on the mode and is checked when the noise axis is built.
	DarkNoiseRate    List `mapstructure:"darkNoiseRate" validate:"min=1,dive,numeric"`
	DarkNoiseConvert List `mapstructure:"darkNoiseConvert" validate:"min=1,dive,numeric"`
	DarkNoiseMode    int  `mapstructure:"darkNoiseMode" validate:"oneof=0 1"`
	DarkNoiseWindow  List `mapstructure:"darkNoiseWindow" validate:"min=1"`

	// Particle gun
	SavePi0      bool      `mapstructure:"savePi0"`
	GunParticle  string    `mapstructure:"gunParticle" validate:"choice=particle"`
	GunEnergy    List      `mapstructure:"gunEnergy" validate:"min=1,dive,numeric"`
	GunPosition  Placement `mapstructure:"gunPosition"`
	GunDirection Placement `mapstructure:"gunDirection"`
	NEvents      int       `mapstructure:"nEvents" validate:"gt=0"`

	// Job handling
	BatchMode       string `mapstructure:"batchMode" validate:"choice=batchMode"`
	OnlyCreateFiles bool   `mapstructure:"onlyCreateFiles"`
	OutputDir       string `mapstructure:"outputDir" validate:"required"`
	WCSimDir        string `mapstructure:"wcsimDir" validate:"required"`
	G4System        string `mapstructure:"g4System"`
}

// Defaults returns the options used when nothing else is specified. WCSimDir and G4System have
// no default; they normally come from the WCSIMDIR and G4SYSTEM environment variables.
func Defaults() Options {
	return Options{
		Geometry:             List{"SuperK"},
		TankLength:           List{"49500"},
		PMTQEMethod:          List{"Stacking_Only"},
		PMTCollEff:           List{"on"},
		Digitizer:            List{"SKI"},
		Trigger:              List{"NHits"},
		SaveFailuresMode:     List{"0"},
		SaveFailuresTime:     List{"200"},
		NHitsThreshold:       List{"25"},
		NHitsWindow:          List{"200"},
		LocalNHitsNeighbours: List{"50"},
		LocalNHitsThreshold:  List{"10"},
		LocalNHitsWindow:     List{"50"},
		DarkNoiseRate:        List{"4.2"},
		DarkNoiseConvert:     List{"1.367"},
		DarkNoiseMode:        1,
		DarkNoiseWindow:      List{"1500"},
		GunParticle:          "e-",
		GunEnergy:            List{"500"},
		GunPosition:          Vec("0", "0", "0"),
		GunDirection:         Vec("1", "0", "0"),
		NEvents:              10,
		BatchMode:            BatchModeLocal,
		OutputDir:            ".",
	}
}

// Load decodes the options held by v and validates them.
func Load(v *viper.Viper) (*Options, error) {
	o := &Options{}
	if err := v.Unmarshal(o, config.CustomHooks...); err != nil {
		return nil, errors.Wrap(err, "error decoding options")
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks every field against its allow-list and shape rules. All violations are
// returned together, each as an ErrInvalidArgument.
func (o Options) Validate() error {
	return config.ValidationErrors(newValidator().Struct(o), describe)
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// The error only signals an empty tag or nil func, neither of which can happen here.
	_ = validate.RegisterValidation("choice", func(fl validator.FieldLevel) bool {
		return IsChoice(fl.Param(), fl.Field().String())
	})
	validate.RegisterStructValidation(placementValidation, Options{})
	return validate
}

func placementValidation(sl validator.StructLevel) {
	o := sl.Current().Interface().(Options)
	if !validPlacement(o.GunPosition, PositionChoices) {
		sl.ReportError(o.GunPosition, "gunPosition", "GunPosition", "placement", PositionChoices)
	}
	if !validPlacement(o.GunDirection, DirectionChoices) {
		sl.ReportError(o.GunDirection, "gunDirection", "GunDirection", "placement", DirectionChoices)
	}
	if o.GunPosition.Kind != o.GunDirection.Kind {
		sl.ReportError(o.GunDirection, "gunDirection", "GunDirection", "placementKind", "")
	}
}

func validPlacement(p Placement, vocabulary string) bool {
	if p.IsSymbol() {
		return IsChoice(vocabulary, p.Symbol)
	}
	return p.validVector()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "a value is required"
	case "min":
		return "at least one value is required"
	case "numeric":
		return "must be a number"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "choice":
		return fmt.Sprintf("must be one of %s", strings.Join(Choices(fe.Param()), ", "))
	case "placement":
		return fmt.Sprintf(
			"must be exactly three comma-separated numbers or exactly one of %s",
			strings.Join(Choices(fe.Param()), ", "),
		)
	case "placementKind":
		return "gunPosition and gunDirection must both be vectors or both be symbolic names"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
