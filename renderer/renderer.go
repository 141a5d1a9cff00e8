// Package renderer turns ledger views into markdown and plain text.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templateFS embed.FS

var templates, _ = fs.Sub(templateFS, "templates")

// funcs are available in every template.
var funcs = template.FuncMap{
	"cell": cell,
}

// cell escapes a value for a markdown table cell or list item.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// RenderTimeline renders rows as a markdown table under a title.
func RenderTimeline(t *Timeline) string {
	return renderTemplate("timeline", "timeline.md", map[string]string{"rows": "rows.md"}, t)
}

// RenderBalances renders a balance report.
func RenderBalances(b *Balances) string {
	return renderTemplate("balances", "balances.md", nil, b)
}

// RenderDiagnostics renders the warnings of a ledger.
func RenderDiagnostics(d *Diagnostics) string {
	return renderTemplate("diagnostics", "diagnostics.md", map[string]string{"warnings": "warnings.md"}, d)
}

// RenderImport renders the report of an import.
func RenderImport(imp *Import) string {
	return renderTemplate("import", "import.md", map[string]string{"warnings": "warnings.md"}, imp)
}

// RenderOutcomes renders the results of writes as a list.
func RenderOutcomes(outs []Outcome) string {
	return renderTemplate("outcomes", "outcomes.md", nil, outs)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
