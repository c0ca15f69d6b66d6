// Package catalog holds the two read-only lookup tables behind the leaf
// display: which leaves were counted on each street, and what each leaf
// shape looks like.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"

	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidCount is returned for a leaf count that is not a non-negative integer.
	ErrInvalidCount = errors.New("count must be a non-negative integer")
	// ErrInvalidShape is returned for a shape entry that is not a [viewBox, path] pair.
	ErrInvalidShape = errors.New(`shape must be a ["viewBox", "path"] pair`)
)

// ColorCount is how many leaves of one color label were counted.
type ColorCount struct {
	Label string
	Count int
}

// ShapeCounts lists the color counts recorded for one leaf shape, in source order.
type ShapeCounts struct {
	Shape  string
	Colors []ColorCount
}

// Location is everything recorded for one street.
type Location struct {
	Name   string
	Shapes []ShapeCounts
}

// Total returns the number of leaves recorded for the location.
func (l Location) Total() int {
	n := 0
	for _, s := range l.Shapes {
		for _, c := range s.Colors {
			n += c.Count
		}
	}
	return n
}

// Locations is the location catalog. Names keep the order of the source document.
type Locations struct {
	order  []string
	byName map[string]Location
}

// NewLocations builds a catalog from locs. A repeated name replaces the
// earlier value but keeps its position.
func NewLocations(locs ...Location) *Locations {
	c := &Locations{byName: make(map[string]Location, len(locs))}
	for _, loc := range locs {
		c.add(loc)
	}
	return c
}

func (c *Locations) add(loc Location) {
	if _, ok := c.byName[loc.Name]; !ok {
		c.order = append(c.order, loc.Name)
	}
	c.byName[loc.Name] = loc
}

// Lookup returns the location with the given name.
func (c *Locations) Lookup(name string) (Location, bool) {
	loc, ok := c.byName[name]
	return loc, ok
}

// Names returns every location name in catalog order.
func (c *Locations) Names() []string {
	return slices.Clone(c.order)
}

// Len returns the number of locations.
func (c *Locations) Len() int {
	return len(c.order)
}

// LoadLocations reads a location catalog from a JSON file.
func LoadLocations(path string) (*Locations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading location catalog: %w", err)
	}
	return ParseLocations(data)
}

// ParseLocations parses a location catalog document:
//
//	{"Main St": {"oak-leaf": [{"yellow-orange": 2}, {"red": 1}]}}
func ParseLocations(data []byte) (*Locations, error) {
	root, err := parseObject(data)
	if err != nil {
		return nil, fmt.Errorf("parsing location catalog: %w", err)
	}

	c := NewLocations()
	root.ForEach(func(key, value gjson.Result) bool {
		var loc Location
		loc, err = parseLocation(key.Str, value)
		if err != nil {
			return false
		}
		c.add(loc)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("parsing location catalog: %w", err)
	}
	return c, nil
}

func parseLocation(name string, value gjson.Result) (Location, error) {
	path := strconv.Quote(name)
	if !value.IsObject() {
		return Location{}, fmt.Errorf("%s: expected an object of shapes", path)
	}

	loc := Location{Name: name}
	index := make(map[string]int)

	var err error
	value.ForEach(func(key, entries gjson.Result) bool {
		var counts ShapeCounts
		counts, err = parseShapeCounts(path+"."+strconv.Quote(key.Str), key.Str, entries)
		if err != nil {
			return false
		}
		if i, ok := index[counts.Shape]; ok {
			loc.Shapes[i] = counts
			return true
		}
		index[counts.Shape] = len(loc.Shapes)
		loc.Shapes = append(loc.Shapes, counts)
		return true
	})
	return loc, err
}

func parseShapeCounts(path, shape string, entries gjson.Result) (ShapeCounts, error) {
	if !entries.IsArray() {
		return ShapeCounts{}, fmt.Errorf("%s: expected an array of color counts", path)
	}

	counts := ShapeCounts{Shape: shape}
	for i, entry := range entries.Array() {
		entryPath := fmt.Sprintf("%s[%d]", path, i)
		if !entry.IsObject() {
			return ShapeCounts{}, fmt.Errorf("%s: expected an object of color counts", entryPath)
		}

		var err error
		entry.ForEach(func(label, count gjson.Result) bool {
			var n int
			n, err = parseCount(count)
			if err != nil {
				err = fmt.Errorf("%s.%s: %w", entryPath, strconv.Quote(label.Str), err)
				return false
			}
			counts.Colors = append(counts.Colors, ColorCount{Label: label.Str, Count: n})
			return true
		})
		if err != nil {
			return ShapeCounts{}, err
		}
	}
	return counts, nil
}

func parseCount(v gjson.Result) (int, error) {
	if v.Type != gjson.Number {
		return 0, ErrInvalidCount
	}
	if v.Num < 0 || v.Num != math.Trunc(v.Num) || v.Num > math.MaxInt32 {
		return 0, ErrInvalidCount
	}
	return int(v.Num), nil
}

func parseObject(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return gjson.Result{}, errors.New("expected a top-level object")
	}
	return root, nil
}
