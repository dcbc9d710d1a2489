// Package renderer renders the portfolio as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/etnz/tradingpost"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

// templateDir is the embedded directory holding the templates.
const templateDir = "templates"

// Names resolves item names for display. Unknown items render as their
// identifier.
type Names map[tradingpost.ItemID]string

func (n Names) name(id tradingpost.ItemID) string {
	if name, ok := n[id]; ok && name != "" {
		return name
	}
	return id.String()
}

// funcs returns the template functions shared by every template.
func funcs(names Names) template.FuncMap {
	return template.FuncMap{
		"gold":   func(g tradingpost.Gold) string { return g.Format() },
		"signed": func(g tradingpost.Gold) string { return g.SignedFormat() },
		"pct":    percent,
		"name":   names.name,
	}
}

// percent formats a ratio as a signed percentage, "-" for zero.
func percent(r decimal.Decimal) string {
	if r.IsZero() {
		return "-"
	}
	s := r.Shift(2).StringFixed(2) + "%"
	if r.IsPositive() {
		return "+" + s
	}
	return s
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, fm template.FuncMap, data any) string {
	mainContent, err := fs.ReadFile(templates, path.Join(templateDir, mainFile))
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(fm).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, path.Join(templateDir, file))
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
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
