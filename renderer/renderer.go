// Package renderer renders depreciation schedules as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderSchedule renders a single asset schedule to a markdown string.
func RenderSchedule(s *Schedule) string {
	partials := map[string]string{
		"schedule_title": "schedule_title.md",
		"schedule_table": "schedule_table.md",
	}
	return renderTemplate("schedule", "schedule.md", partials, s)
}

// RenderReport renders every schedule of the report, followed by the rejected
// rows if there are any.
func RenderReport(r *Report) string {
	var b strings.Builder
	b.WriteString(renderTemplate("report", "report.md", nil, r))
	for _, s := range r.Schedules {
		b.WriteString("\n")
		b.WriteString(RenderSchedule(s))
	}
	ConditionalBlock(&b, func(w io.Writer) bool {
		io.WriteString(w, "\n")
		io.WriteString(w, renderTemplate("errors", "errors.md", nil, r))
		return len(r.Errors) > 0
	})
	return b.String()
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
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
