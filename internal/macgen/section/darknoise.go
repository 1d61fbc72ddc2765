package section

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/wcsim/macgen/internal/common/sweeperrors"
	"github.com/wcsim/macgen/internal/macgen/options"
)

// Dark noise modes understood by /DarkRate/SetDarkMode.
const (
	// DarkNoiseFixedRange applies noise between a low and a high time, given as "low:high".
	DarkNoiseFixedRange = 0
	// DarkNoiseAroundHits applies noise in a window around each hit, given as a single integer.
	DarkNoiseAroundHits = 1
)

// DarkNoise returns one section per noise rate, conversion factor and window. The window is
// interpreted according to the noise mode; a window that doesn't fit the mode, or an unknown
// mode, is an error.
func DarkNoise(o *options.Options) ([]Section, error) {
	mode := strconv.Itoa(o.DarkNoiseMode)
	// The conversion factor only affects names when it can differ between files.
	tagConvert := len(o.DarkNoiseConvert) > 1
	var sections []Section
	for _, rate := range o.DarkNoiseRate {
		for _, convert := range o.DarkNoiseConvert {
			for _, window := range o.DarkNoiseWindow {
				windowBlock, err := darkNoiseWindow(o.DarkNoiseMode, window)
				if err != nil {
					return nil, err
				}
				block := []string{
					directive("/DarkRate/SetDarkRate", rate, "kHz"),
					directive("/DarkRate/SetConvert", convert),
					directive("/DarkRate/SetDarkMode", mode),
				}
				fragment := "DarkNoiseM" + mode + "R" + rate
				if tagConvert {
					fragment += "C" + convert
				}
				fragment += "W" + window
				sections = appendUnique(sections, Section{
					Block:    append(block, windowBlock...),
					Fragment: fragment,
				})
			}
		}
	}
	return sections, nil
}

func darkNoiseWindow(mode int, window string) ([]string, error) {
	switch mode {
	case DarkNoiseAroundHits:
		if _, err := strconv.Atoi(window); err != nil {
			return nil, errors.WithStack(&sweeperrors.ErrInvalidArgument{
				Name:    "darkNoiseWindow",
				Value:   window,
				Message: "for darkNoiseMode 1 the window must be a single integer (not colon separated)",
			})
		}
		return []string{directive("/DarkRate/SetDarkWindow", window)}, nil
	case DarkNoiseFixedRange:
		bounds := strings.Split(window, ":")
		if len(bounds) != 2 || !isNumber(bounds[0]) || !isNumber(bounds[1]) {
			return nil, errors.WithStack(&sweeperrors.ErrInvalidArgument{
				Name:    "darkNoiseWindow",
				Value:   window,
				Message: "for darkNoiseMode 0 the window must be exactly two numbers separated by a colon",
			})
		}
		return []string{
			directive("/DarkRate/SetDarkLow", bounds[0]),
			directive("/DarkRate/SetDarkHigh", bounds[1]),
		}, nil
	default:
		return nil, errors.WithStack(&sweeperrors.ErrInvalidArgument{
			Name:    "darkNoiseMode",
			Value:   mode,
			Message: "unknown dark noise mode",
		})
	}
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
