package ui

import (
	"fmt"
	"strings"

	domain "placementcms/domain/roster"
	"placementcms/internal/roster"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// rosterHelpMarkdown documents the accepted upload headers. Matching ignores
// case, spaces and punctuation, so each alias is shown in its normalized form.
func rosterHelpMarkdown(fields *roster.FieldMap) string {
	var b strings.Builder

	b.WriteString("# Student roster upload\n\n")
	b.WriteString("Upload an `.xlsx` or `.xls` file. Only the first sheet is read; ")
	b.WriteString("the first row holds the column headers and every following row is one student.\n\n")
	b.WriteString("Headers are matched after lowercasing and removing everything except letters and digits, ")
	b.WriteString("so `Roll No`, `roll_no` and `ROLL-NO` are the same column. Unknown columns are ignored.\n\n")

	b.WriteString("| Field | Required | Type | Accepted headers |\n")
	b.WriteString("|-------|----------|------|------------------|\n")
	for _, f := range domain.AllFields {
		required := "no"
		if f.IsMandatory() {
			required = "**yes**"
		}
		kind := "text"
		if f.IsNumeric() {
			kind = "number"
		}

		aliases := fields.Aliases(f)
		names := make([]string, 0, len(aliases))
		for _, a := range aliases {
			names = append(names, "`"+string(a)+"`")
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", f.DisplayName(), required, kind, strings.Join(names, ", "))
	}

	b.WriteString("\nNumbers may carry a trailing `%`. Completely empty rows are skipped.\n")
	return b.String()
}

// renderHelpPage converts the help markdown into a standalone HTML page
func renderHelpPage(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Student roster upload",
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}
