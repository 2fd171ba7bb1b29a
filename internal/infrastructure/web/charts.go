package web

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"SurveyMonitor/internal/domain"
)

const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// renderDashboard writes the chart page for one (possibly LGA-filtered) snapshot.
func renderDashboard(w io.Writer, data domain.DashboardData, lga string) error {
	scope := "All LGAs"
	if lga != "" {
		scope = lga
	}

	page := components.NewPage()
	page.PageTitle = "Survey Monitor"
	page.SetAssetsHost(echartsAssetsPrefix)
	page.AddCharts(
		completionPie(data, scope),
		progressPie("Approval status", data.StatusBreakdown),
		errorBar(data.ErrorBreakdown),
		productivityBar(data.UserProductivity),
		quotaBar(data.QuotaByLGA),
		gpsScatter(data.Submissions),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

func initOpts() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Width:      "100%",
		Height:     "420px",
		AssetsHost: echartsAssetsPrefix,
	})
}

func completionPie(data domain.DashboardData, scope string) *charts.Pie {
	s := data.Summary

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Survey progress: %s", scope),
			Subtitle: fmt.Sprintf("%d of %d submissions (%.1f%%), approval %.1f%%. %s",
				s.TotalSubmissions, s.OverallTarget, s.CompletionRate, s.ApprovalRate, data.StatusMessage),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	pie.AddSeries("Survey progress", completionSlices(data.QuotaProgress),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return pie
}

// completionSlices emits one slice per dataset; the quota chart carries a
// single label with Completed and Remaining as separate series.
func completionSlices(chart domain.ProgressChart) []opts.PieData {
	items := make([]opts.PieData, 0, len(chart.Datasets))
	for _, ds := range chart.Datasets {
		if len(ds.Data) == 0 {
			continue
		}
		items = append(items, opts.PieData{Name: ds.Label, Value: ds.Data[0]})
	}
	return items
}

func progressPie(title string, chart domain.ProgressChart) *charts.Pie {
	items := make([]opts.PieData, 0, len(chart.Labels))
	if len(chart.Datasets) > 0 {
		values := chart.Datasets[0].Data
		for i, label := range chart.Labels {
			if i >= len(values) {
				break
			}
			items = append(items, opts.PieData{Name: label, Value: values[i]})
		}
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	pie.AddSeries(title, items, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))
	return pie
}

func errorBar(breakdown []domain.ErrorBreakdown) *charts.Bar {
	labels := make([]string, 0, len(breakdown))
	counts := make([]opts.BarData, 0, len(breakdown))
	for _, e := range breakdown {
		labels = append(labels, e.Label)
		counts = append(counts, opts.BarData{Value: e.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Submission quality", Subtitle: "Error flags by frequency"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("flags", counts, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	return bar
}

func productivityBar(rows []domain.UserProductivity) *charts.Bar {
	ids := make([]string, 0, len(rows))
	valid := make([]opts.BarData, 0, len(rows))
	invalid := make([]opts.BarData, 0, len(rows))
	for _, p := range rows {
		ids = append(ids, p.InterviewerID)
		valid = append(valid, opts.BarData{Value: p.Valid})
		invalid = append(invalid, opts.BarData{Value: p.Invalid})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Interviewer productivity"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	bar.SetXAxis(ids).
		AddSeries("Valid", valid).
		AddSeries("Invalid", invalid)
	return bar
}

func quotaBar(quotas []domain.Quota) *charts.Bar {
	lgas := make([]string, 0, len(quotas))
	targets := make([]opts.BarData, 0, len(quotas))
	actuals := make([]opts.BarData, 0, len(quotas))
	for _, q := range quotas {
		lgas = append(lgas, q.Category)
		targets = append(targets, opts.BarData{Value: q.Target})
		actuals = append(actuals, opts.BarData{Value: q.Actual})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Quota by LGA"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	bar.SetXAxis(lgas).
		AddSeries("Target", targets).
		AddSeries("Actual", actuals)
	return bar
}

func gpsScatter(subs []domain.Submission) *charts.Scatter {
	points := make([]opts.ScatterData, 0, len(subs))
	for _, s := range subs {
		if s.GPS.Lat == 0 && s.GPS.Lon == 0 {
			continue
		}
		points = append(points, opts.ScatterData{
			Name:  s.ID,
			Value: []interface{}{s.GPS.Lon, s.GPS.Lat},
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Submission locations", Subtitle: fmt.Sprintf("%d geotagged submissions", len(points))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Longitude", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Latitude", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("submissions", points, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	return scatter
}
