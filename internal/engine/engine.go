package engine

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	texttemplate "text/template"

	"github.com/jsvensson/streetleaves/internal/color"
	"github.com/jsvensson/streetleaves/internal/render"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// Engine writes rendered leaves to files by executing Go templates. It is a
// render.Surface: every Replace rewrites every output file.
type Engine struct {
	TemplatesDir string   // if empty, the built-in templates are used
	OutputDir    string
	Pages        []string // if non-empty, only render these template basenames
}

// Replace executes the templates with the given icons and overwrites the
// output files. An empty location renders the cleared page. Every template
// runs before any file is written, so a failing template leaves all previous
// outputs in place.
func (e *Engine) Replace(location string, icons []render.Icon) error {
	templates, err := e.templates()
	if err != nil {
		return err
	}

	data := newPageData(location, icons)
	var pages []renderedPage
	for _, t := range templates {
		if !e.shouldRender(t.name) {
			continue
		}
		content, err := e.renderTemplate(t, data)
		if err != nil {
			return err
		}
		pages = append(pages, renderedPage{name: t.name, content: content})
	}

	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, p := range pages {
		outPath := filepath.Join(e.OutputDir, p.name)
		if err := os.WriteFile(outPath, p.content, 0o644); err != nil {
			return fmt.Errorf("writing output file %s: %w", outPath, err)
		}
	}
	return nil
}

// Outputs returns the paths Replace writes to.
func (e *Engine) Outputs() ([]string, error) {
	templates, err := e.templates()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, t := range templates {
		if e.shouldRender(t.name) {
			out = append(out, filepath.Join(e.OutputDir, t.name))
		}
	}
	return out, nil
}

type templateSource struct {
	name string // output name: the file name without .tmpl
	fsys fs.FS
	file string
}

func (e *Engine) templates() ([]templateSource, error) {
	fsys, dir := fs.FS(defaultTemplates), "templates"
	if e.TemplatesDir != "" {
		fsys, dir = os.DirFS(e.TemplatesDir), "."
	}

	matches, err := fs.Glob(fsys, path.Join(dir, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	out := make([]templateSource, 0, len(matches))
	for _, m := range matches {
		out = append(out, templateSource{
			name: strings.TrimSuffix(path.Base(m), ".tmpl"),
			fsys: fsys,
			file: m,
		})
	}
	return out, nil
}

func (e *Engine) shouldRender(name string) bool {
	if len(e.Pages) == 0 {
		return true
	}
	return slices.Contains(e.Pages, name)
}

type executor interface {
	Execute(w io.Writer, data any) error
}

// parseTemplate picks html/template for markup outputs so attribute values
// are escaped, and text/template for everything else.
func parseTemplate(t templateSource) (executor, error) {
	switch filepath.Ext(t.name) {
	case ".html", ".htm", ".svg", ".xml":
		return htmltemplate.New(path.Base(t.file)).Funcs(htmltemplate.FuncMap(funcMap())).ParseFS(t.fsys, t.file)
	default:
		return texttemplate.New(path.Base(t.file)).Funcs(funcMap()).ParseFS(t.fsys, t.file)
	}
}

type renderedPage struct {
	name    string
	content []byte
}

func (e *Engine) renderTemplate(t templateSource, data pageData) ([]byte, error) {
	tmpl, err := parseTemplate(t)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", t.file, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", t.file, err)
	}
	return buf.Bytes(), nil
}

// pageData is the data passed to templates.
type pageData struct {
	Location string
	Icons    []render.Icon
	Groups   []render.Group
	Count    int
}

func newPageData(location string, icons []render.Icon) pageData {
	return pageData{
		Location: location,
		Icons:    icons,
		Groups:   render.Summarize(icons),
		Count:    len(icons),
	}
}

func funcMap() texttemplate.FuncMap {
	return texttemplate.FuncMap{
		"hex": func(c color.Color) string {
			return c.Hex()
		},
		"rgb": func(c color.Color) string {
			return c.RGB()
		},
		"paint": func(f render.Fill) string {
			return f.Paint()
		},
		"swatch": func(f render.Fill) string {
			colors := f.Colors()
			hexes := make([]string, len(colors))
			for i, c := range colors {
				hexes[i] = c.Hex()
			}
			return strings.Join(hexes, " → ")
		},
	}
}
