package chart

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

// Renderable is the interface chart components expose.
type Renderable interface {
	Render(w io.Writer) error
}

// Section is one titled chart block on the dashboard.
type Section struct {
	Title    string
	Subtitle string
	Chart    Renderable
}

// Page is a complete dashboard document.
type Page struct {
	Title    string
	Subtitle string
	Theme    Theme
	Sections []Section
}

// NewPage creates a dashboard page with the given theme.
func NewPage(title, subtitle string, theme Theme) *Page {
	return &Page{Title: title, Subtitle: subtitle, Theme: theme}
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; padding: 24px; background: {{.Background}}; color: {{.Text}};
       font-family: -apple-system, "Segoe UI", Roboto, sans-serif; }
h1 { font-size: 22px; margin: 0 0 4px; }
p.subtitle { color: {{.Muted}}; margin: 0 0 24px; font-size: 14px; }
section { margin-bottom: 32px; background: {{.Surface}}; border-radius: 8px; padding: 16px; }
section h2 { font-size: 16px; margin: 0 0 2px; }
section p { color: {{.Muted}}; margin: 0 0 12px; font-size: 13px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="subtitle">{{.Subtitle}}</p>
{{range .Sections}}<section>
<h2>{{.Title}}</h2>
<p>{{.Subtitle}}</p>
{{.Body}}
</section>
{{end}}</body>
</html>
`))

type pageData struct {
	Title      string
	Subtitle   string
	Background string
	Surface    string
	Text       string
	Muted      string
	Sections   []sectionData
}

type sectionData struct {
	Title    string
	Subtitle string
	Body     template.HTML
}

// Render writes the page as a standalone HTML document.
func (p *Page) Render(w io.Writer) error {
	theme := GetThemeConfig(p.Theme)

	data := pageData{
		Title:      p.Title,
		Subtitle:   p.Subtitle,
		Background: theme.PageBackground,
		Surface:    theme.ChartBackground,
		Text:       theme.ChartText,
		Muted:      theme.ChartTextMuted,
	}

	for _, section := range p.Sections {
		var buf bytes.Buffer

		err := section.Chart.Render(&buf)
		if err != nil {
			return fmt.Errorf("render section %q: %w", section.Title, err)
		}

		data.Sections = append(data.Sections, sectionData{
			Title:    section.Title,
			Subtitle: section.Subtitle,
			Body:     template.HTML(buf.String()), //nolint:gosec // chart output is library-generated.
		})
	}

	err := pageTemplate.Execute(w, data)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	return nil
}
