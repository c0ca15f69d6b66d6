// Package render turns a street's recorded leaves into an ordered list of
// icons and hands them to a display surface.
package render

import (
	"strconv"
	"strings"

	"github.com/jsvensson/streetleaves/internal/catalog"
	"github.com/jsvensson/streetleaves/internal/palette"
	"github.com/tliron/commonlog"
)

// Logger receives render diagnostics.
type Logger interface {
	Warningf(format string, values ...any)
	Errorf(format string, values ...any)
}

// Source provides the loaded, read-only data a Renderer works from.
type Source interface {
	LocationCatalog() *catalog.Locations
	ShapeCatalog() *catalog.Shapes
	ColorPalette() *palette.Palette
}

// Surface displays the icons of one render. Replace must discard whatever was
// shown before. location is empty when the display is cleared.
type Surface interface {
	Replace(location string, icons []Icon) error
}

// Renderer resolves locations to icons. It is not safe for concurrent use;
// renders are expected to run one at a time.
type Renderer struct {
	locations *catalog.Locations
	shapes    *catalog.Shapes
	palette   *palette.Palette
	surface   Surface
	log       Logger
	idPrefix  string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSurface sets where rendered icons are committed. The default discards them.
func WithSurface(s Surface) Option {
	return func(r *Renderer) { r.surface = s }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// WithIDPrefix sets the prefix of gradient identity tokens, for pages that
// show more than one display.
func WithIDPrefix(prefix string) Option {
	return func(r *Renderer) { r.idPrefix = idPrefix(prefix) }
}

// New returns a Renderer over src.
func New(src Source, opts ...Option) *Renderer {
	r := &Renderer{
		locations: src.LocationCatalog(),
		shapes:    src.ShapeCatalog(),
		palette:   src.ColorPalette(),
		surface:   discard{},
		log:       commonlog.GetLogger("streetleaves.render"),
		idPrefix:  "leaf",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render replaces the surface with the icons for name. An unknown name
// clears the surface. Surface failures are logged, never returned.
func (r *Renderer) Render(name string) {
	icons, ok := r.Resolve(name)
	if !ok {
		r.commit("", nil)
		return
	}
	r.commit(name, icons)
}

// Update is the incremental form of Render used while a name is being
// typed: an unknown name leaves the surface as it is.
func (r *Renderer) Update(name string) {
	if icons, ok := r.Resolve(name); ok {
		r.commit(name, icons)
	}
}

// Resolve returns the icons for name in catalog order, and false if name is
// not a known location. Entries whose shape is missing from the shape catalog
// are logged and skipped.
func (r *Renderer) Resolve(name string) ([]Icon, bool) {
	loc, ok := r.locations.Lookup(name)
	if !ok {
		return nil, false
	}

	icons := []Icon{}
	for _, sc := range loc.Shapes {
		for _, cc := range sc.Colors {
			shape, ok := r.shapes.Lookup(sc.Shape)
			if !ok {
				r.log.Warningf("shape not found: %s", sc.Shape)
				continue
			}

			colors := r.palette.Resolve(cc.Label)
			for range cc.Count {
				id := r.gradientID(len(icons), sc.Shape, cc.Label)
				icons = append(icons, Icon{
					Shape:   sc.Shape,
					Label:   cc.Label,
					ViewBox: shape.ViewBox,
					Path:    shape.Path,
					Fill:    resolveFill(colors, id),
				})
			}
		}
	}
	return icons, true
}

func (r *Renderer) commit(location string, icons []Icon) {
	if err := r.surface.Replace(location, icons); err != nil {
		r.log.Errorf("updating display for %q: %s", location, err)
	}
}

// gradientID builds the identity token for the seq-th icon of a render.
// seq alone makes it unique within the render; shape and label keep it readable.
func (r *Renderer) gradientID(seq int, shape, label string) string {
	return r.idPrefix + "-" + strconv.Itoa(seq) + "-" + sanitizeID(shape) + "-" + sanitizeID(label)
}

// idPrefix turns prefix into the start of an XML id: empty falls back to
// "leaf", and a leading character other than a letter or '_' gets a '_'.
func idPrefix(prefix string) string {
	s := sanitizeID(prefix)
	if s == "" {
		return "leaf"
	}
	if c := s[0]; !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_') {
		s = "_" + s
	}
	return s
}

// sanitizeID maps s onto characters that may follow the first character of
// an XML id.
func sanitizeID(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}

type discard struct{}

func (discard) Replace(string, []Icon) error { return nil }
