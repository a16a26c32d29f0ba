package render

import (
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/karandeol-26/VeriCura/internal/app"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// modelText strips all markup from text supplied by the model. Its output
// is already escaped, so templates insert it as HTML.
var modelText = bluemonday.StrictPolicy()

var funcs = template.FuncMap{
	"clean":          func(s string) template.HTML { return template.HTML(modelText.Sanitize(s)) }, //nolint:gosec // sanitized

	"upper":          func(l model.Label) string { return strings.ToUpper(string(l)) },
	"tone":           Tone,
	"claimPositive":  claimPositive,
	"authorPositive": authorPositive,
	"linkTitle":      linkTitle,
	"linkWhy":        linkWhy,
	"verdict":        verdictText,
	"joined":         func(ss []string) string { return strings.Join(ss, ", ") },
	"disclaimer":     func() string { return Disclaimer },
}

var page = template.Must(template.New("page").Funcs(funcs).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>VeriCura report</title>
<style>
body{font-family:system-ui,sans-serif;background:#0f1a17;color:#e4fff5;max-width:42rem;margin:2rem auto}
.result-card{border-radius:12px;padding:1rem;background:#15241f}
.score-val{font-size:2.4rem;font-weight:700}
.status-pill{display:inline-block;padding:.2rem .6rem;border-radius:999px;font-size:.75rem}
.status-good{background:#1f7a4d}.status-mid{background:#8a6d1f}.status-bad{background:#8a2f1f}
.factor-card{border-left:4px solid #566;padding:.4rem .6rem;margin:.4rem 0;background:#1b2e28}
.factor-pos{border-color:#2ecc71}.factor-neg{border-color:#e74c3c}
.factor-title{font-weight:600}.factor-desc{font-size:.85rem;opacity:.85}
.issues-label{margin-top:10px;text-transform:uppercase;font-size:.7rem;opacity:.7}
.ai-badge{font-size:.7rem;color:#9fe}
.progress-track{height:6px;background:#233;border-radius:3px}
.progress-fill{height:6px;background:#2ecc71;border-radius:3px}
a{color:#e4fff5}
</style>
</head>
<body>
<div class="result-card">
{{- if eq .Kind "report"}}{{template "report" .}}
{{- else if eq .Kind "not-health"}}{{template "nonhealth" .}}
{{- else}}<div class="factor-title">{{.Message}}</div>{{if .Detail}}<div class="factor-desc">{{.Detail}}</div>{{end}}
{{- end}}
</div>
</body>
</html>
{{define "report"}}
<div class="score-row">
  <div class="score-val">{{.Report.Score}}</div>
  <div class="score-sub">{{.Report.URL}}</div>
  {{if .Report.AIAdjusted}}<div class="ai-badge">AI-adjusted</div>{{end}}
  <div class="status-pill status-{{tone .Label}}">{{upper .Label}}</div>
</div>
<div class="progress-track"><div class="progress-fill" style="width: {{.Report.Score}}%"></div></div>
<div class="issues-label">Why this score</div>
{{range .Factors}}
<div class="factor-card {{if .Positive}}factor-pos{{else}}factor-neg{{end}}" data-issue-id="{{.ID}}">
  <div class="factor-title">{{.Title}}</div>
  <div class="factor-desc">{{.Description}}</div>
</div>
{{end}}
{{if .Report.AuthorNames}}<div class="factor-desc">Authors found on page: {{joined .Report.AuthorNames}}</div>{{end}}
{{with .Analysis}}<div id="aiResult">{{template "analysis" .}}</div>{{end}}
{{end}}
{{define "nonhealth"}}
<div class="score-row">
  <div class="score-val">– –</div>
  <div class="score-sub">{{.URL}}</div>
  <div class="status-pill status-mid">NOT HEALTH CONTENT</div>
</div>
<div class="issues-label">{{.Message}}</div>
<div class="factor-card"><div class="factor-title">What to try</div><div class="factor-desc">{{.Hint}}</div></div>
{{end}}
{{define "analysis"}}
{{- if eq .Kind "not-configured"}}
<div class="factor-card factor-neg"><div class="factor-title">AI not configured</div><div class="factor-desc">{{.Message}}</div></div>
{{- else if eq .Kind "analysis-failed"}}
<div class="factor-card factor-neg"><div class="factor-title">AI analysis failed</div><div class="factor-desc">{{.Error}}</div></div>
{{- else if eq .Kind "no-report"}}
<div class="factor-card"><div class="factor-desc">{{.Message}}</div></div>
{{- else}}{{with .Result}}
<div class="factor-card"><div class="factor-title">AI verdict</div><div class="factor-desc">{{clean (verdict .)}}</div></div>
{{range .Claims}}
<div class="factor-card {{if claimPositive .}}factor-pos{{else}}factor-neg{{end}}">
  <div class="factor-title">{{clean .Text}}</div>
  <div class="factor-desc">{{.Assessment}} – {{clean .Reason}}</div>
</div>
{{end}}
{{if .Authors}}<div class="issues-label">Author credibility</div>{{end}}
{{range .Authors}}
<div class="factor-card {{if authorPositive .}}factor-pos{{else}}factor-neg{{end}}">
  <div class="factor-title">{{clean .Name}}</div>
  <div class="factor-desc">{{.Credibility}}{{if .Notes}} – {{clean .Notes}}{{end}}</div>
</div>
{{end}}
<div class="issues-label">Evidence / read more</div>
{{range .EvidenceLinks}}
<div class="factor-card factor-pos">
  <div class="factor-title"><a href="{{.URL}}" target="_blank" rel="noopener">{{clean (linkTitle .)}}</a></div>
  <div class="factor-desc">{{clean (linkWhy .)}}</div>
</div>
{{end}}
<div class="factor-card"><div class="factor-desc">{{disclaimer}}</div></div>
{{end}}{{end}}
{{end}}`))

type htmlData struct {
	Kind     app.OutcomeKind
	URL      string
	Message  string
	Detail   string
	Hint     string
	Report   *model.Report
	Label    model.Label
	Factors  []model.Factor
	Analysis *app.AnalysisOutcome
}

// HTML writes v to w as a standalone page.
func HTML(w io.Writer, v View) error {
	data := htmlData{
		Kind:     v.Scan.Kind,
		URL:      v.URL,
		Message:  v.Scan.Message,
		Detail:   v.Scan.Error,
		Hint:     NotHealthHint,
		Report:   v.Report(),
		Label:    v.Label(),
		Factors:  v.Scan.Factors,
		Analysis: v.Analysis,
	}
	if data.Kind == "" {
		data.Kind = app.OutcomeScanFailed
	}
	if data.Kind == app.OutcomeScanFailed && data.Message == "" {
		data.Message = app.MsgScanFailed
	}
	return page.Execute(w, data)
}
