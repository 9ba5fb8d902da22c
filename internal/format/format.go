// Package format rewrites light files in canonical HCL style.
package format

import (
	"fmt"
	"regexp"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)
var blankLineAfterOpenBrace = regexp.MustCompile(`\{\n\s*\n`)
var blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)

// Format returns src formatted according to HCL canonical style, with runs
// of blank lines collapsed and blank lines at block edges removed. Source
// that does not parse is rejected rather than rewritten.
func Format(src []byte) ([]byte, error) {
	if _, diags := hclsyntax.ParseConfig(src, "", hcl.Pos{Line: 1, Column: 1}); diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	formatted := hclwrite.Format(src)
	formatted = multipleBlankLines.ReplaceAll(formatted, []byte("\n\n"))
	formatted = blankLineAfterOpenBrace.ReplaceAll(formatted, []byte("{\n"))
	formatted = blankLineBeforeCloseBrace.ReplaceAll(formatted, []byte("\n${1}"))
	return formatted, nil
}
