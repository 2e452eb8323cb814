package view

import (
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/intelligrit/salesmap/internal/choropleth"
	"github.com/intelligrit/salesmap/internal/model"
)

var svgTemplate = template.Must(template.New("map").Funcs(template.FuncMap{
	"num": func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) },
}).Parse(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="{{.ViewBox}}" class="salesmap{{if .Dark}} dark{{end}}" data-mode="{{.Mode}}">
<rect x="{{num .BgX}}" y="{{num .BgY}}" width="{{num .BgW}}" height="{{num .BgH}}" fill="{{.Background}}"/>
<g class="states">
{{- range .Shapes}}
<path id="{{.ID}}" data-state="{{.State}}" d="{{.D}}" fill="{{.Fill.Color}}" fill-opacity="{{num .Fill.Opacity}}" stroke="{{$.Stroke}}" stroke-width="{{num .Fill.StrokeWidth}}" stroke-opacity="{{num .Fill.StrokeOpacity}}"{{if .Fill.Highlight}} class="{{.Fill.Highlight}}"{{end}}/>
{{- end}}
</g>
{{- if .Labels}}
<g class="labels" fill="{{.LabelColor}}" font-size="9" text-anchor="middle" pointer-events="none">
{{- range .Labels}}
<text x="{{num .X}}" y="{{num .Y}}">{{.State}}</text>
{{- end}}
</g>
{{- end}}
</svg>
`))

type renderShape struct {
	ID    string
	State model.State
	D     string
	Fill  choropleth.Fill
}

type renderData struct {
	ViewBox            string
	Dark               bool
	Mode               string
	BgX, BgY, BgW, BgH float64
	Background         string
	Stroke             string
	LabelColor         string
	Shapes             []renderShape
	Labels             []model.LabelPosition
}

// Theme colors outside the performance palette.
const (
	backgroundLight = "hsl(210 40% 98%)"
	backgroundDark  = "hsl(222.2 84% 4.9%)"
	labelLight      = "#1f2937"
	labelDark       = "#e5e7eb"
)

// Render writes the map as a standalone SVG document. Labels from the latest
// completed pass are included; a pending pass is not waited for.
func (v *View) Render(w io.Writer) error {
	start := time.Now()
	data := renderData{
		Dark:       v.opts.Dark,
		Mode:       v.machine.State().Mode.String(),
		Background: backgroundLight,
		Stroke:     "#ffffff",
		LabelColor: labelLight,
	}
	if v.opts.Dark {
		data.Background, data.Stroke, data.LabelColor = backgroundDark, backgroundDark, labelDark
	}
	if m := v.opts.Map; m != nil {
		data.ViewBox = m.ViewBoxAttr()
		data.BgX, data.BgY = m.ViewBox.MinX, m.ViewBox.MinY
		data.BgW, data.BgH = m.ViewBox.Width(), m.ViewBox.Height()
		data.Shapes = make([]renderShape, 0, len(m.Shapes))
		for _, s := range m.Shapes {
			data.Shapes = append(data.Shapes, renderShape{ID: s.ID, State: s.State, D: s.D, Fill: v.Fill(s.State)})
		}
	}
	data.Labels, _ = v.Labels()

	err := svgTemplate.Execute(w, data)
	if v.opts.Metrics != nil {
		v.opts.Metrics.RenderDuration.Observe(float64(time.Since(start).Microseconds()) / 1000)
	}
	return err
}
