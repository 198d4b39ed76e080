// Package renderer renders the portfolio reports as markdown.
package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/etnz/tracker"
)

// funcs are the helpers available in every template.
var funcs = template.FuncMap{
	"bar": bar,
}

// renderTemplate renders data with a template and the partials it depends on.
func renderTemplate(name string, data any, templates ...string) string {
	tmpl := template.New(name).Funcs(funcs)
	for _, t := range templates {
		if _, err := tmpl.Parse(t); err != nil {
			return fmt.Sprintf("error parsing template %q: %v", name, err)
		}
	}
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}

const summaryTemplate = `{{ define "summary" -}}
## Portfolio Summary

| Total Value | Top Performer | Worst Performer | Symbols |
|---:|:---|:---|---:|
| {{ .TotalValue }} | {{ with .TopPerformer }}{{ .Symbol }} {{ .Gain.SignedString }}{{ else }}-{{ end }} | {{ with .WorstPerformer }}{{ .Symbol }} {{ .Gain.SignedString }}{{ else }}-{{ end }} | {{ .UniqueSymbols }} |
{{ end }}`

const holdingsTemplate = `{{ define "holdings" -}}
## Holdings

{{ if .Holdings -}}
| Symbol | Shares | Avg Cost | Price | Value | Gain | Gain % |
|:---|---:|---:|---:|---:|---:|---:|
{{- range .Holdings }}
| {{ .Symbol }} | {{ .Shares }} | {{ .AvgCostBasis }} | {{ .CurrentPrice }} | {{ .CurrentValue }} | {{ .UnrealizedGainLoss.SignedString }} | {{ .GainPercent.SignedString }} |
{{- end }}
{{ if gt .Pages 1 }}
Page {{ .Page }} of {{ .Pages }} ({{ .Total }} holdings)
{{ end -}}
{{ else -}}
No holdings.
{{ end -}}
{{ end }}`

const allocationTemplate = `{{ define "allocation" -}}
## Allocation

{{ if . -}}
| Symbol | Value | Weight | |
|:---|---:|---:|:---|
{{- range . }}
| {{ .Symbol }} | {{ .Value }} | {{ .Weight }} | {{ bar .Weight }} |
{{- end }}
{{ else -}}
Nothing to allocate.
{{ end -}}
{{ end }}`

const timelineTemplate = `{{ define "timeline" -}}
## Timeline

{{ if . -}}
| Date | Value |
|:---|---:|
{{- range . }}
| {{ .Date }} | {{ .Value }} |
{{- end }}
{{ else -}}
No trades.
{{ end -}}
{{ end }}`

const reportTemplate = `{{ define "report" -}}
# Portfolio Report

{{ template "summary" .Metrics }}
{{ template "holdings" .Page }}
{{ template "allocation" .Allocations }}
{{ template "timeline" .Timeline }}
{{- end }}`

// RenderSummary renders the portfolio metrics.
func RenderSummary(m tracker.Metrics) string {
	return renderTemplate("summary", m, summaryTemplate)
}

// RenderHoldings renders a page of the holdings table.
func RenderHoldings(page tracker.HoldingPage) string {
	return renderTemplate("holdings", page, holdingsTemplate)
}

// RenderAllocations renders the share of each holding in the portfolio value.
func RenderAllocations(allocations []tracker.Allocation) string {
	return renderTemplate("allocation", allocations, allocationTemplate)
}

// RenderTimeline renders the portfolio value at each trade date.
func RenderTimeline(points []tracker.TimelinePoint) string {
	return renderTemplate("timeline", points, timelineTemplate)
}

// RenderReport renders the full report, holdings are displayed in a single page.
func RenderReport(r *tracker.Report) string {
	data := struct {
		*tracker.Report
		Page tracker.HoldingPage
	}{
		Report: r,
		Page:   tracker.HoldingQuery{PageSize: len(r.Holdings)}.Apply(r.Holdings),
	}
	return renderTemplate("report", data, reportTemplate, summaryTemplate, holdingsTemplate, allocationTemplate, timelineTemplate)
}

// bar draws a weight as a horizontal bar, one block per 5%.
func bar(p tracker.Percent) string {
	if !p.IsFinite() || p <= 0 {
		return ""
	}
	return strings.Repeat("█", int(p+2.5)/5)
}
