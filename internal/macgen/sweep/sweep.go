// Package sweep expands per-axis sections into the full Cartesian product of a sweep.
package sweep

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/wcsim/macgen/internal/common/slices"
	"github.com/wcsim/macgen/internal/common/sweeperrors"
	"github.com/wcsim/macgen/internal/macgen/section"
)

// Axis is one dimension of the sweep.
type Axis struct {
	Name     string
	Sections []section.Section
	// NameRank orders fragments within a combination name; lower ranks come first.
	// Axes with equal rank keep their iteration order.
	NameRank int
}

// Combination is one point of the sweep.
type Combination struct {
	// Fragments of every axis joined with "_", ordered by NameRank.
	Name string
	// Directive lines of every axis, in axis order.
	Directives []string
}

// Text renders the directives as they appear in a macro file.
func (c Combination) Text() string {
	if len(c.Directives) == 0 {
		return ""
	}
	return strings.Join(c.Directives, "\n") + "\n"
}

// Count returns the number of combinations axes expand to.
func Count(axes ...Axis) int {
	n := 1
	for _, axis := range axes {
		n *= len(axis.Sections)
	}
	return n
}

// Expand returns the Cartesian product of axes. The first axis varies slowest and the last fastest.
// Two combinations with the same name are an ErrStubCollision.
func Expand(axes ...Axis) ([]Combination, error) {
	nameOrder := make([]int, len(axes))
	for i := range nameOrder {
		nameOrder[i] = i
	}
	sort.SliceStable(nameOrder, func(i, j int) bool {
		return axes[nameOrder[i]].NameRank < axes[nameOrder[j]].NameRank
	})

	// Each partial combination records which section it took from each axis so far.
	picks := [][]int{{}}
	for _, axis := range axes {
		next := make([][]int, 0, len(picks)*len(axis.Sections))
		for _, p := range picks {
			for i := range axis.Sections {
				next = append(next, append(append(make([]int, 0, len(axes)), p...), i))
			}
		}
		picks = next
	}

	combinations := make([]Combination, 0, len(picks))
	seen := make(map[string]bool, len(picks))
	for _, p := range picks {
		var directives []string
		for axisIndex, sectionIndex := range p {
			directives = append(directives, axes[axisIndex].Sections[sectionIndex].Block...)
		}
		fragments := slices.Filter(
			slices.Map(nameOrder, func(axisIndex int) string { return axes[axisIndex].Sections[p[axisIndex]].Fragment }),
			func(f string) bool { return f != "" },
		)
		name := strings.Join(fragments, "_")
		if seen[name] {
			return nil, errors.WithStack(&sweeperrors.ErrStubCollision{Stub: name})
		}
		seen[name] = true
		combinations = append(combinations, Combination{Name: name, Directives: directives})
	}
	return combinations, nil
}
