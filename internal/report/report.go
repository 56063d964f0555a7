// Package report renders naming reports as text.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/f3rmion/sancai/internal/engine"
	"github.com/f3rmion/sancai/internal/pinyin"
	"github.com/f3rmion/sancai/internal/sancai"
	"github.com/mattn/go-runewidth"
)

// ReferenceList is where users can check which characters the dictionary covers.
const ReferenceList = "通用规范汉字表 (Table of General Standard Chinese Characters, 2013)"

// Renderer turns results into text using a template.
type Renderer struct {
	template *template.Template
	parser   *pinyin.Parser
}

// CharRow is one character line of the report.
type CharRow struct {
	Char    string
	Pinyin  string
	Strokes int
	Source  string
	Part    string // surname or given name
}

// GridRow is one grid line of the report.
type GridRow struct {
	Label   string // e.g. "天格 heaven"
	Value   int
	Element sancai.Element
}

// Data holds everything a report template can use.
type Data struct {
	Name         string
	Romanized    string
	Chars        []CharRow
	Grids        []GridRow
	ThreeTalents sancai.ThreeTalents
	DictVersion  string
}

var funcs = template.FuncMap{
	// pad right-fills s to w terminal cells; CJK characters count as two.
	"pad": func(w int, v any) string {
		return runewidth.FillRight(fmt.Sprint(v), w)
	},
	"elem": func(e sancai.Element) string {
		return e.Hanzi() + " " + string(e)
	},
}

// NewRenderer creates a renderer with the default template.
func NewRenderer() *Renderer {
	return &Renderer{
		template: template.Must(template.New("report").Funcs(funcs).Parse(defaultTemplate)),
		parser:   pinyin.NewParser(),
	}
}

// SetTemplate sets a custom report template.
func (r *Renderer) SetTemplate(tmpl string) error {
	t, err := template.New("report").Funcs(funcs).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	r.template = t
	return nil
}

// BuildData converts a result into template data.
func (r *Renderer) BuildData(res *sancai.Result) Data {
	name := res.Input.Surname + res.Input.GivenName

	var chars []CharRow
	add := func(part string, list []sancai.CharStrokes) {
		for _, cs := range list {
			chars = append(chars, CharRow{
				Char:    cs.Char,
				Pinyin:  strings.Join(r.parser.GetPinyin(cs.Char), "/"),
				Strokes: cs.Strokes,
				Source:  cs.Source,
				Part:    part,
			})
		}
	}
	add("surname", res.Surname)
	add("given", res.GivenName)

	g := res.Grids
	e := res.Elements
	return Data{
		Name:      name,
		Romanized: r.parser.Romanize(name),
		Chars:     chars,
		Grids: []GridRow{
			{Label: "天格 heaven", Value: g.Heaven, Element: e.Heaven},
			{Label: "人格 human", Value: g.Human, Element: e.Human},
			{Label: "地格 earth", Value: g.Earth, Element: e.Earth},
			{Label: "总格 total", Value: g.Total, Element: e.Total},
			{Label: "外格 outer", Value: g.Outer, Element: e.Outer},
		},
		ThreeTalents: res.ThreeTalents,
		DictVersion:  res.DictVersion,
	}
}

// Render renders a successful result.
func (r *Renderer) Render(res *sancai.Result) (string, error) {
	var buf bytes.Buffer
	if err := r.template.Execute(&buf, r.BuildData(res)); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}

// RenderOutcome renders either branch of an outcome.
func (r *Renderer) RenderOutcome(out engine.Outcome) (string, error) {
	if out.OK {
		return r.Render(out.Result)
	}
	return RenderFailure(out), nil
}

// RenderFailure explains why an analysis failed and what the user can do about it.
func RenderFailure(out engine.Outcome) string {
	var sb strings.Builder
	name := out.Input.Surname + " " + out.Input.GivenName
	sb.WriteString(fmt.Sprintf("Cannot analyze %s\n", strings.TrimSpace(name)))

	if out.Error == nil {
		return sb.String()
	}

	switch out.Error.Code {
	case sancai.CodeUnresolvedCharacter:
		sb.WriteString("  These characters are not in the standard character table:\n")
		for _, c := range out.InvalidCharacters {
			sb.WriteString(fmt.Sprintf("    %s\n", c))
		}
		sb.WriteString(fmt.Sprintf("  Check the reference list: %s\n", ReferenceList))
	case sancai.CodeInvalidInput:
		sb.WriteString(fmt.Sprintf("  %s\n", out.Error.Message))
		sb.WriteString("  Use Chinese characters only; the given name has one or two characters.\n")
	case sancai.CodeDictionaryUnavailable:
		sb.WriteString(fmt.Sprintf("  %s\n", out.Error.Message))
		sb.WriteString("  The stroke dictionary could not be loaded; try again later.\n")
	default:
		sb.WriteString(fmt.Sprintf("  %s\n", out.Error.Message))
	}
	return sb.String()
}

const defaultTemplate = `{{- /* sancai naming report */ -}}
{{ .Name }}  {{ .Romanized }}

{{ pad 6 "字" }}{{ pad 16 "拼音" }}{{ pad 8 "笔画" }}source
{{- range .Chars }}
{{ pad 6 .Char }}{{ pad 16 .Pinyin }}{{ pad 8 .Strokes }}{{ .Source }}
{{- end }}

{{ range .Grids -}}
{{ pad 14 .Label }}{{ pad 6 .Value }}{{ elem .Element }}
{{ end }}
三才 {{ .ThreeTalents }}  ({{ index .ThreeTalents 0 }}, {{ index .ThreeTalents 1 }}, {{ index .ThreeTalents 2 }})
dictionary {{ .DictVersion }}
`
