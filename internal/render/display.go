package render

import (
	"errors"
	"slices"
)

// Display is an in-memory Surface holding the most recent render.
type Display struct {
	Location string
	Icons    []Icon
	Commits  int
}

// Replace implements Surface.
func (d *Display) Replace(location string, icons []Icon) error {
	d.Location = location
	d.Icons = slices.Clone(icons)
	d.Commits++
	return nil
}

// Empty reports whether the display shows nothing.
func (d *Display) Empty() bool {
	return len(d.Icons) == 0
}

// Group is a run of consecutive icons sharing a shape and label.
type Group struct {
	Shape string
	Label string
	Count int
	Fill  Fill
}

// Summarize collapses icons into runs of the same shape and label, in order.
func Summarize(icons []Icon) []Group {
	var groups []Group
	for _, icon := range icons {
		if n := len(groups); n > 0 && groups[n-1].Shape == icon.Shape && groups[n-1].Label == icon.Label {
			groups[n-1].Count++
			continue
		}
		groups = append(groups, Group{Shape: icon.Shape, Label: icon.Label, Count: 1, Fill: icon.Fill})
	}
	return groups
}

// Tee returns a Surface that replaces every one of surfaces in turn. All of
// them are attempted; their errors are joined.
func Tee(surfaces ...Surface) Surface {
	return tee(surfaces)
}

type tee []Surface

func (t tee) Replace(location string, icons []Icon) error {
	var errs []error
	for _, s := range t {
		if err := s.Replace(location, icons); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
