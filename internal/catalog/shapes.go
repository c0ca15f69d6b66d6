package catalog

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/tidwall/gjson"
)

// Shape is the outline of one leaf shape.
type Shape struct {
	Name    string
	ViewBox string // SVG viewBox, e.g. "0 0 10 10"
	Path    string // SVG path data
}

// Shapes is the shape catalog.
type Shapes struct {
	order  []string
	byName map[string]Shape
}

// NewShapes builds a shape catalog. A repeated name replaces the earlier shape.
func NewShapes(shapes ...Shape) *Shapes {
	c := &Shapes{byName: make(map[string]Shape, len(shapes))}
	for _, s := range shapes {
		c.add(s)
	}
	return c
}

func (c *Shapes) add(s Shape) {
	if _, ok := c.byName[s.Name]; !ok {
		c.order = append(c.order, s.Name)
	}
	c.byName[s.Name] = s
}

// Lookup returns the shape with the given name.
func (c *Shapes) Lookup(name string) (Shape, bool) {
	s, ok := c.byName[name]
	return s, ok
}

// Names returns every shape name in catalog order.
func (c *Shapes) Names() []string {
	return slices.Clone(c.order)
}

// Len returns the number of shapes.
func (c *Shapes) Len() int {
	return len(c.order)
}

// LoadShapes reads a shape catalog from a JSON file.
func LoadShapes(path string) (*Shapes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading shape catalog: %w", err)
	}
	return ParseShapes(data)
}

// ParseShapes parses a shape catalog document:
//
//	{"oak-leaf": ["0 0 10 10", "M0 0 L10 10"]}
func ParseShapes(data []byte) (*Shapes, error) {
	root, err := parseObject(data)
	if err != nil {
		return nil, fmt.Errorf("parsing shape catalog: %w", err)
	}

	c := NewShapes()
	root.ForEach(func(key, value gjson.Result) bool {
		pair := value.Array()
		if !value.IsArray() || len(pair) != 2 || pair[0].Type != gjson.String || pair[1].Type != gjson.String {
			err = fmt.Errorf("%s: %w", strconv.Quote(key.Str), ErrInvalidShape)
			return false
		}
		c.add(Shape{Name: key.Str, ViewBox: pair[0].Str, Path: pair[1].Str})
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("parsing shape catalog: %w", err)
	}
	return c, nil
}
