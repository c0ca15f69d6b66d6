// Package format rewrites palette files into canonical form.
package format

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
)

var (
	multipleBlankLines        = regexp.MustCompile(`\n{3,}`)
	blankLineAfterOpenBrace   = regexp.MustCompile(`\{\n[ \t]*\n`)
	blankLineBeforeCloseBrace = regexp.MustCompile(`\n[ \t]*\n([ \t]*\})`)
	hexLiteral                = regexp.MustCompile(`"#[0-9a-fA-F]{6}"`)
)

// Format returns content in canonical palette style: hclwrite spacing and
// alignment, at most one blank line in a row, no blank lines hugging braces,
// upper-case hex color literals and a single trailing newline.
//
// It works on partial or invalid input so it can run while a file is being edited.
func Format(content string) string {
	out := string(hclwrite.Format([]byte(content)))
	out = multipleBlankLines.ReplaceAllString(out, "\n\n")
	out = blankLineAfterOpenBrace.ReplaceAllString(out, "{\n")
	out = blankLineBeforeCloseBrace.ReplaceAllString(out, "\n${1}")
	out = hexLiteral.ReplaceAllStringFunc(out, strings.ToUpper)

	out = strings.TrimRight(out, "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

// File formats the palette file at path. It reports whether the file was not
// already formatted, and rewrites it unless check is set.
func File(path string, check bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	formatted := []byte(Format(string(data)))
	if bytes.Equal(formatted, data) {
		return false, nil
	}
	if check {
		return true, nil
	}

	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return true, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
