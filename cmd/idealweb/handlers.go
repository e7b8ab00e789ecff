package main

import (
	"html/template"
	"net/http"

	"github.com/idealfit/idealfit/resultsdb"
)

type handler struct {
	*Global
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Site}}</title></head>
<body>
<h1>{{.Site}}</h1>

<h2>Selected ideal functions</h2>
<table border="1" cellpadding="4">
<tr><th>Series</th><th>Ideal function</th><th>Sum of squared deviations</th><th>Max deviation</th></tr>
{{range .Selections}}
<tr>
<td>{{.SeriesName}}</td>
<td>y{{.IdealFunctionNo}}</td>
<td>{{printf "%.6f" .SumSquaredDev}}</td>
<td>{{printf "%.6f" .MaxDev}}</td>
</tr>
{{end}}
</table>

{{if .PlotDir}}
<h2>Charts</h2>
{{range .Selections}}
<p><img src="/plots/training_{{.SeriesName}}.png" alt="training {{.SeriesName}}"></p>
{{end}}
<p><img src="/plots/test_assignments.png" alt="test assignments"></p>
{{end}}

<h2>Test observations ({{.Assigned}} of {{len .Tests}} assigned)</h2>
<table border="1" cellpadding="4">
<tr><th>x</th><th>y</th><th>Deviation</th><th>Ideal function</th><th>Reason</th></tr>
{{range .Tests}}
<tr>
<td>{{printf "%g" .X}}</td>
<td>{{printf "%g" .Y}}</td>
<td>{{if .DeltaY.Valid}}{{printf "%.6f" .DeltaY.Float64}}{{else}}-{{end}}</td>
<td>{{if .IdealFunctionNo.Valid}}y{{.IdealFunctionNo.Int64}}{{else}}-{{end}}</td>
<td>{{.Reason}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	selections, err := h.db.Selections()
	if err != nil {
		h.HTTPError(w, err)
		return
	}

	tests, err := h.db.TestResults()
	if err != nil {
		h.HTTPError(w, err)
		return
	}

	assigned := 0
	for _, v := range tests {
		if v.IdealFunctionNo.Valid {
			assigned++
		}
	}

	output := struct {
		Site       string
		PlotDir    string
		Selections []resultsdb.Selection
		Tests      []resultsdb.TestResult
		Assigned   int
	}{
		Site:       h.Site,
		PlotDir:    h.PlotDir,
		Selections: selections,
		Tests:      tests,
		Assigned:   assigned,
	}

	if err := indexTemplate.Execute(w, output); err != nil {
		h.log.Println(err)
	}
}

func (h *handler) HTTPError(w http.ResponseWriter, err error) {
	h.log.Println(err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
