package export

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/archguide/pkg/content"
)

// GenerateFilename returns a default export file name such as
// "rag_20250114_1530.svg".
func GenerateFilename(diagramID, format string) string {
	name := strings.ToLower(strings.TrimSpace(diagramID))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" {
		name = "diagram"
	}
	return fmt.Sprintf("%s_%s.%s", name, time.Now().Format("20060102_1504"), format)
}

// DefaultPath joins dir and a generated file name.
func DefaultPath(dir, diagramID, format string) string {
	return filepath.Join(dir, GenerateFilename(diagramID, format))
}

type pageQuestion struct {
	Question string
	Answer   string
	Open     bool
}

type pageList struct {
	ID        string
	Title     string
	Questions []pageQuestion
}

type pageData struct {
	Title      string
	Generated  string
	SVG        template.HTML
	Panel      pagePanel
	Lists      []pageList
	Background string
	Surface    string
	SurfaceAlt string
	Border     string
	Text       string
	Muted      string
}

type pagePanel struct {
	Visible     bool
	Name        string
	Description string
	Example     string
	Techniques  []string
	Color       string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { margin: 0; background: {{.Background}}; color: {{.Text}}; font-family: 'Source Sans 3','Helvetica Neue',sans-serif; }
  main { max-width: 760px; margin: 0 auto; padding: 24px; }
  h1 { font-family: 'Libre Baskerville',Georgia,serif; font-weight: 400; }
  figure { margin: 0; background: {{.Surface}}; border: 1px solid {{.Border}}; }
  figure svg { width: 100%; height: auto; display: block; }
  .panel { margin-top: 16px; padding: 18px 22px; background: {{.Surface}}; border: 1px solid; border-left-width: 3px; }
  .panel h3 { font-family: 'Libre Baskerville',Georgia,serif; font-weight: 400; margin: 0 0 10px; }
  .label { font-family: 'IBM Plex Mono',Menlo,monospace; font-size: 10px; letter-spacing: 0.1em; text-transform: uppercase; }
  .tag { display: inline-block; padding: 2px 10px; margin: 0 6px 6px 0; font-family: 'IBM Plex Mono',Menlo,monospace; font-size: 11px; border: 1px solid; }
  details { padding: 10px 14px; border-bottom: 1px solid {{.Border}}; }
  details[open] { background: {{.SurfaceAlt}}; }
  summary { cursor: pointer; }
  footer { color: {{.Muted}}; font-size: 12px; text-align: center; padding: 20px 0; }
</style>
</head>
<body>
<main>
<h1>{{.Title}}</h1>
<figure>{{.SVG}}</figure>
{{with .Panel}}{{if .Visible}}
<section class="panel" style="border-color: {{.Color}}">
  <h3>{{.Name}}</h3>
  <p>{{.Description}}</p>
  {{if .Example}}<div class="label" style="color: {{.Color}}">Example</div>
  <p>{{.Example}}</p>{{end}}
  {{if .Techniques}}<div class="label" style="color: {{.Color}}">Key Techniques</div>
  <div>{{range .Techniques}}<span class="tag" style="color: {{$.Panel.Color}}">{{.}}</span>{{end}}</div>{{end}}
</section>
{{end}}{{end}}
{{range .Lists}}
<section class="questions" id="questions-{{.ID}}">
  <h2 class="label">{{.Title}}</h2>
  {{range .Questions}}<details{{if .Open}} open{{end}}><summary>{{.Question}}</summary><p>{{.Answer}}</p></details>
  {{end}}
</section>
{{end}}
<footer>Generated {{.Generated}}</footer>
</main>
</body>
</html>
`))

// renderHTML writes a self-contained page: the inline SVG, the detail panel
// and the question lists with their open entries expanded.
func renderHTML(w io.Writer, opts Options, layout layoutResult) error {
	svgDoc, err := svgString(layout)
	if err != nil {
		return err
	}
	// Drop the XML prolog; it is not valid inside an HTML body.
	if i := strings.Index(svgDoc, "<svg"); i > 0 {
		svgDoc = svgDoc[i:]
	}

	data := pageData{
		Title:      titleOr(layout),
		Generated:  time.Now().Format("2006-01-02 15:04"),
		SVG:        template.HTML(svgDoc),
		Background: content.HexBackground,
		Surface:    content.HexSurface,
		SurfaceAlt: content.HexSurfaceAlt,
		Border:     content.HexBorder,
		Text:       content.HexTextBody,
		Muted:      content.HexTextMuted,
	}
	if p := layout.Panel; p.Visible {
		data.Panel = pagePanel{
			Visible:     true,
			Name:        p.Name,
			Description: p.Description,
			Example:     p.Example,
			Techniques:  p.Techniques,
			Color:       css(tokenColor(p.Color)),
		}
	}
	for _, l := range opts.Questions {
		openKey, isOpen := opts.Open[l.ID()].Current()
		pl := pageList{ID: l.ID(), Title: l.Title()}
		for _, e := range l.Entries() {
			pl.Questions = append(pl.Questions, pageQuestion{
				Question: e.Question,
				Answer:   e.Answer,
				Open:     isOpen && e.Key == openKey,
			})
		}
		data.Lists = append(data.Lists, pl)
	}
	return pageTemplate.Execute(w, data)
}
