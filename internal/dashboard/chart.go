package dashboard

import (
	"html/template"
	"io"
)

// PetitionStat is one bar in the dashboard chart. The dataset is a fixed
// sample: the dashboard demonstrates the reporting view without touching
// the live store.
type PetitionStat struct {
	ID             int
	UserID         int
	PetitionName   string
	SignatureCount int
	CreateDate     string
}

// SampleData returns the static dataset rendered by the chart.
func SampleData() []PetitionStat {
	return []PetitionStat{
		{ID: 1, UserID: 101, PetitionName: "Save the Rainforest", SignatureCount: 120000, CreateDate: "2024-01-23"},
		{ID: 2, UserID: 101, PetitionName: "Ban Single-Use Plastics", SignatureCount: 160000, CreateDate: "2024-01-23"},
		{ID: 3, UserID: 103, PetitionName: "Renewable Energy Now", SignatureCount: 130000, CreateDate: "2024-01-23"},
	}
}

type chartBar struct {
	PetitionStat
	X      int // bar left edge in SVG units
	Y      int // bar top edge
	Height int
}

type chartPage struct {
	DisplayName string
	Bars        []chartBar
	MaxCount    int
	Width       int // total SVG width for the bar row
}

const (
	chartHeight = 400
	barWidth    = 160
	barGap      = 60
)

// RenderChart writes the authenticated dashboard page: a bar chart of
// signature counts per petition drawn as inline SVG.
func RenderChart(w io.Writer, displayName string, data []PetitionStat) error {
	maxCount := 1
	for _, d := range data {
		if d.SignatureCount > maxCount {
			maxCount = d.SignatureCount
		}
	}
	bars := make([]chartBar, 0, len(data))
	for i, d := range data {
		h := d.SignatureCount * chartHeight / maxCount
		bars = append(bars, chartBar{
			PetitionStat: d,
			X:            barGap + i*(barWidth+barGap),
			Y:            chartHeight - h,
			Height:       h,
		})
	}
	width := barGap + len(bars)*(barWidth+barGap)
	return chartTmpl.Execute(w, chartPage{DisplayName: displayName, Bars: bars, MaxCount: maxCount, Width: width})
}

// RenderLogin writes the login form. A non-empty message is shown above
// the form (wrong credentials, logged-out notice).
func RenderLogin(w io.Writer, message string) error {
	return loginTmpl.Execute(w, struct{ Message string }{Message: message})
}

var chartTmpl = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head><title>Petition Dashboard</title></head>
<body>
<p>Hello, <b>{{.DisplayName}}</b> | <a href="/logout">Logout</a></p>
<h1>Petition signature tracking</h1>
<svg width="{{.Width}}" height="460" viewBox="0 0 {{.Width}} 460" xmlns="http://www.w3.org/2000/svg">
{{- range .Bars}}
  <rect x="{{.X}}" y="{{.Y}}" width="160" height="{{.Height}}" fill="#4472c4">
    <title>{{.PetitionName}}: {{.SignatureCount}} signatures (created {{.CreateDate}}, user {{.UserID}})</title>
  </rect>
  <text x="{{.X}}" y="450" font-size="13">{{.PetitionName}}</text>
{{- end}}
</svg>
</body>
</html>
`))

var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Petition Dashboard Login</title></head>
<body>
<h1>Login</h1>
{{if .Message}}<p><b>{{.Message}}</b></p>{{end}}
<form method="POST" action="/login">
  <label>Username <input type="text" name="username"></label><br>
  <label>Password <input type="password" name="password"></label><br>
  <button type="submit">Login</button>
</form>
</body>
</html>
`))
