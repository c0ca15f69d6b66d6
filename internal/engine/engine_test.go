package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsvensson/streetleaves/internal/color"
	"github.com/jsvensson/streetleaves/internal/render"
)

func testIcons() []render.Icon {
	yellow := color.MustParseHex("#FEDF05")
	orange := color.MustParseHex("#D95600")
	gradient := func(id string) render.Fill {
		return render.Fill{Color: yellow, Gradient: &render.Gradient{
			ID:    id,
			Stops: []render.Stop{{Offset: 0, Color: yellow}, {Offset: 1, Color: orange}},
		}}
	}
	return []render.Icon{
		{Shape: "oak-leaf", Label: "yellow-orange", ViewBox: "0 0 10 10", Path: "M0 0 L10 10", Fill: gradient("leaf-0-oak-leaf-yellow-orange")},
		{Shape: "oak-leaf", Label: "yellow-orange", ViewBox: "0 0 10 10", Path: "M0 0 L10 10", Fill: gradient("leaf-1-oak-leaf-yellow-orange")},
		{Shape: "maple", Label: "red", ViewBox: "0 0 24 24", Path: "M12 2 L22 22 L2 22 Z", Fill: render.Fill{Color: color.MustParseHex("#BB1701")}},
	}
}

func setupTemplateDir(t *testing.T, templates map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range templates {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	return string(content)
}

func TestReplace_DefaultTemplates(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "output")
	e := &Engine{OutputDir: outDir}

	if err := e.Replace("Main St", testIcons()); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	html := readOutput(t, filepath.Join(outDir, "leaves.html"))
	wantHTML := []string{
		"<h1>Main St</h1>",
		`viewBox="0 0 10 10"`,
		`<linearGradient id="leaf-0-oak-leaf-yellow-orange" x1="0%" y1="0%" x2="100%" y2="100%">`,
		`<stop offset="0%" stop-color="#FEDF05"/>`,
		`<stop offset="100%" stop-color="#D95600"/>`,
		`fill="url(#leaf-1-oak-leaf-yellow-orange)"`,
		`fill="#BB1701"`,
	}
	for _, want := range wantHTML {
		if !strings.Contains(html, want) {
			t.Errorf("leaves.html missing %q, got:\n%s", want, html)
		}
	}
	if n := strings.Count(html, "<svg "); n != 3 {
		t.Errorf("leaves.html has %d svg elements, want 3", n)
	}

	txt := readOutput(t, filepath.Join(outDir, "leaves.txt"))
	wantTxt := []string{
		"Main St: 3 leaves",
		"oak-leaf\tyellow-orange\t2\t#FEDF05 → #D95600",
		"maple\tred\t1\t#BB1701",
	}
	for _, want := range wantTxt {
		if !strings.Contains(txt, want) {
			t.Errorf("leaves.txt missing %q, got:\n%s", want, txt)
		}
	}
}

func TestReplace_OverwritesPreviousOutput(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "output")
	e := &Engine{OutputDir: outDir}

	if err := e.Replace("Main St", testIcons()); err != nil {
		t.Fatal(err)
	}
	first := readOutput(t, filepath.Join(outDir, "leaves.html"))
	if err := e.Replace("Main St", testIcons()); err != nil {
		t.Fatal(err)
	}
	if second := readOutput(t, filepath.Join(outDir, "leaves.html")); second != first {
		t.Error("rendering the same icons twice produced different pages")
	}

	if err := e.Replace("", nil); err != nil {
		t.Fatal(err)
	}
	cleared := readOutput(t, filepath.Join(outDir, "leaves.html"))
	if strings.Contains(cleared, "<svg ") || strings.Contains(cleared, "Main St") {
		t.Errorf("cleared page still shows previous leaves:\n%s", cleared)
	}
	if !strings.Contains(cleared, "No street selected") {
		t.Errorf("cleared page missing placeholder:\n%s", cleared)
	}
}

func TestReplace_CustomTemplates(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{
		"count.txt.tmpl": `{{ .Location }}={{ .Count }}{{ range .Icons }} {{ paint .Fill }}{{ end }}`,
		"rgb.txt.tmpl":   `{{ range .Icons }}{{ rgb .Fill.Color }};{{ end }}`,
	})
	outDir := filepath.Join(t.TempDir(), "output")
	e := &Engine{TemplatesDir: tmplDir, OutputDir: outDir}

	if err := e.Replace("Main St", testIcons()); err != nil {
		t.Fatalf("Replace() error: %v", err)
	}

	want := "Main St=3 url(#leaf-0-oak-leaf-yellow-orange) url(#leaf-1-oak-leaf-yellow-orange) #BB1701"
	if got := readOutput(t, filepath.Join(outDir, "count.txt")); got != want {
		t.Errorf("count.txt = %q, want %q", got, want)
	}
	want = "rgb(254, 223, 5);rgb(254, 223, 5);rgb(187, 23, 1);"
	if got := readOutput(t, filepath.Join(outDir, "rgb.txt")); got != want {
		t.Errorf("rgb.txt = %q, want %q", got, want)
	}
}

func TestReplace_HTMLEscaping(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{
		"page.html.tmpl": `<h1>{{ .Location }}</h1>`,
		"page.txt.tmpl":  `{{ .Location }}`,
	})
	outDir := filepath.Join(t.TempDir(), "output")
	e := &Engine{TemplatesDir: tmplDir, OutputDir: outDir}

	if err := e.Replace("<b>Elm</b> & Oak", nil); err != nil {
		t.Fatal(err)
	}
	if got := readOutput(t, filepath.Join(outDir, "page.html")); strings.Contains(got, "<b>") {
		t.Errorf("page.html was not escaped: %s", got)
	}
	if got := readOutput(t, filepath.Join(outDir, "page.txt")); got != "<b>Elm</b> & Oak" {
		t.Errorf("page.txt = %q, want raw text", got)
	}
}

func TestReplace_PageFilter(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{
		"one.txt.tmpl": "one",
		"two.txt.tmpl": "two",
	})
	outDir := filepath.Join(t.TempDir(), "output")
	e := &Engine{TemplatesDir: tmplDir, OutputDir: outDir, Pages: []string{"one.txt"}}

	if err := e.Replace("Main St", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "one.txt")); err != nil {
		t.Error("one.txt should exist")
	}
	if _, err := os.Stat(filepath.Join(outDir, "two.txt")); err == nil {
		t.Error("two.txt should not exist when filtered")
	}

	outputs, err := e.Outputs()
	if err != nil {
		t.Fatal(err)
	}
	if len(outputs) != 1 || filepath.Base(outputs[0]) != "one.txt" {
		t.Errorf("Outputs() = %v, want [one.txt]", outputs)
	}
}

func TestReplace_NoTemplates(t *testing.T) {
	e := &Engine{TemplatesDir: t.TempDir(), OutputDir: filepath.Join(t.TempDir(), "output")}
	if err := e.Replace("Main St", nil); err == nil {
		t.Error("expected error for empty templates dir")
	}
}

func TestReplace_FailingTemplateKeepsPreviousOutput(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{
		"page.txt.tmpl": `{{ .Location }}{{ if eq .Location "bad" }}{{ .Missing.Field }}{{ end }}`,
	})
	outDir := filepath.Join(t.TempDir(), "output")
	e := &Engine{TemplatesDir: tmplDir, OutputDir: outDir}

	if err := e.Replace("good", nil); err != nil {
		t.Fatal(err)
	}
	if err := e.Replace("bad", nil); err == nil {
		t.Fatal("expected execution error")
	}
	if got := readOutput(t, filepath.Join(outDir, "page.txt")); got != "good" {
		t.Errorf("page.txt = %q, want previous output kept", got)
	}
}

func TestReplace_FailingTemplateWritesNothing(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{
		"a.txt.tmpl": `{{ .Location }}`,
		"b.txt.tmpl": `{{ .Location }}{{ if eq .Location "bad" }}{{ .Missing.Field }}{{ end }}`,
	})
	outDir := filepath.Join(t.TempDir(), "output")
	e := &Engine{TemplatesDir: tmplDir, OutputDir: outDir}

	if err := e.Replace("good", nil); err != nil {
		t.Fatal(err)
	}
	if err := e.Replace("bad", nil); err == nil {
		t.Fatal("expected execution error")
	}
	for _, name := range []string{"a.txt", "b.txt"} {
		if got := readOutput(t, filepath.Join(outDir, name)); got != "good" {
			t.Errorf("%s = %q, want previous output kept", name, got)
		}
	}
}

func TestNewPageData_Groups(t *testing.T) {
	data := newPageData("Main St", testIcons())

	if data.Count != 3 {
		t.Errorf("Count = %d, want 3", data.Count)
	}
	if len(data.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(data.Groups))
	}
	if g := data.Groups[0]; g.Shape != "oak-leaf" || g.Label != "yellow-orange" || g.Count != 2 {
		t.Errorf("group 0 = %+v", g)
	}
}
