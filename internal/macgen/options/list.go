package options

import (
	"strings"

	"github.com/wcsim/macgen/internal/common/slices"
)

// List is a comma-delimited option value. Values are trimmed, empty entries are dropped and
// duplicates collapse onto their first occurrence, so iteration order follows the input.
type List []string

// ParseList splits s into a List.
func ParseList(s string) List {
	var l List
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			l = append(l, v)
		}
	}
	return slices.Unique(l)
}

func (l *List) UnmarshalText(text []byte) error {
	*l = ParseList(string(text))
	return nil
}

func (l List) String() string {
	return strings.Join(l, ",")
}
