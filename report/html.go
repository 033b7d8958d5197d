package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pivolan/campaign_analyzer/analysis"
	"github.com/pivolan/campaign_analyzer/domain/models"
)

const (
	green  = "#2ecc71"
	blue   = "#3498db"
	red    = "#e74c3c"
	orange = "#f39c12"
	purple = "#9b59b6"
	teal   = "#1abc9c"
)

func ratingColor(r analysis.Rating) string {
	switch r {
	case analysis.Good:
		return green
	case analysis.Fair:
		return orange
	default:
		return red
	}
}

// chartValue turns non-finite numbers into echarts' missing marker; JSON
// has no NaN.
func chartValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return v
}

// initOpts gives every chart a stable id so the page renders identically
// for identical input.
func initOpts(id int) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		ChartID: fmt.Sprintf("panel_%d", id),
		Width:   "900px",
		Height:  "500px",
	})
}

func title(text string) charts.GlobalOpts {
	return charts.WithTitleOpts(opts.Title{Title: text})
}

func tooltip(trigger string) charts.GlobalOpts {
	return charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: trigger})
}

func barData(values []float64, color func(int) string) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: chartValue(v)}
		if color != nil {
			data[i].ItemStyle = &opts.ItemStyle{Color: color(i)}
		}
	}
	return data
}

func colored(c string) charts.SeriesOpts {
	return charts.WithItemStyleOpts(opts.ItemStyle{Color: c})
}

// Dashboard builds an interactive page with one chart per aggregate.
func Dashboard(r *analysis.Result) *components.Page {
	page := components.NewPage()
	page.SetPageTitle("Análisis de campañas")
	page.AddCharts(
		platformTotals(r.PlatformTotals),
		roasByPlatform(r.ROASByPlatform),
		campaignRates(r.CampaignRates),
		audienceDistribution(r.AudienceDistribution),
		scatter(5, "Presupuesto vs Revenue (coloreado por ROAS)", "Presupuesto Diario ($)", "Revenue Generado ($)", r.BudgetRevenue,
			[]string{"#d73027", "#ffffbf", "#1a9850"}),
		scatter(6, "CPC vs CPA (coloreado por Conversion Rate)", "Costo por Click ($)", "Costo por Adquisición ($)", r.CPCvsCPA,
			[]string{"#440154", "#21918c", "#fde725"}),
		engagement(r.EngagementByPlatform),
		audienceConversions(r.AudienceConversions),
		weeklyRevenue(r.WeeklyRevenue),
		correlation(r),
		funnel(r.Funnel),
		platformScores(r.PlatformScores),
		roiByCampaignType(r.ROIByCampaignType),
	)
	return page
}

// WriteDashboard renders the dashboard page as HTML.
func WriteDashboard(w io.Writer, r *analysis.Result) error {
	return Dashboard(r).Render(w)
}

func platformTotals(totals []models.PlatformTotals) *charts.Bar {
	names := make([]string, len(totals))
	revenue := make([]float64, len(totals))
	conversions := make([]float64, len(totals))
	cost := make([]float64, len(totals))
	for i, t := range totals {
		names[i] = t.Platform
		revenue[i] = t.Revenue
		conversions[i] = t.Conversions * 100
		cost[i] = t.Cost
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts(1), title("Revenue, Conversiones y Costo por Plataforma"), tooltip("axis"))
	bar.SetXAxis(names).
		AddSeries("Revenue", barData(revenue, nil), colored(green)).
		AddSeries("Conversiones (x100)", barData(conversions, nil), colored(blue)).
		AddSeries("Costo Total", barData(cost, nil), colored(red))
	return bar
}

func ranked(values []models.RankedValue) ([]string, []float64) {
	keys := make([]string, len(values))
	nums := make([]float64, len(values))
	for i, v := range values {
		keys[i] = v.Key
		nums[i] = v.Value
	}
	return keys, nums
}

func roasByPlatform(values []models.RankedValue) *charts.Bar {
	keys, nums := ranked(values)
	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts(2), title("ROAS Promedio por Plataforma"), tooltip("axis"))
	bar.SetXAxis(keys).AddSeries("ROAS", barData(nums, func(i int) string {
		return ratingColor(analysis.RateROAS(nums[i]))
	}))
	return bar
}

func campaignRates(rates []models.CampaignRates) *charts.Bar {
	names := make([]string, len(rates))
	ctr := make([]float64, len(rates))
	conv := make([]float64, len(rates))
	for i, r := range rates {
		names[i] = r.CampaignType
		ctr[i] = r.CTR
		conv[i] = r.ConversionRate
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts(3), title("CTR y Tasa de Conversión por Tipo de Campaña"), tooltip("axis"))
	bar.SetXAxis(names).
		AddSeries("CTR Promedio (%)", barData(ctr, nil), colored(purple)).
		AddSeries("Conversion Rate (%)", barData(conv, nil), colored(teal))
	return bar
}

func audienceDistribution(counts []models.ValueCount) *charts.Pie {
	data := make([]opts.PieData, len(counts))
	for i, c := range counts {
		data[i] = opts.PieData{Name: c.Value, Value: c.Count}
	}
	pie := charts.NewPie()
	pie.SetGlobalOptions(initOpts(4), title("Distribución de Audiencia Objetivo"), tooltip("item"))
	pie.AddSeries("Audiencia", data)
	return pie
}

func scatter(id int, name, xName, yName string, points []models.Point, colors []string) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(points))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		data = append(data, opts.ScatterData{Value: []interface{}{chartValue(p.X), chartValue(p.Y), chartValue(p.Color)}})
		if !math.IsNaN(p.Color) && !math.IsInf(p.Color, 0) {
			lo, hi = math.Min(lo, p.Color), math.Max(hi, p.Color)
		}
	}
	if lo > hi {
		lo, hi = 0, 1
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		initOpts(id), title(name), tooltip("item"),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: yName}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Dimension:  "2",
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: colors},
		}),
	)
	sc.AddSeries(name, data)
	return sc
}

func engagement(groups []analysis.Distribution) *charts.BoxPlot {
	names := make([]string, len(groups))
	data := make([]opts.BoxPlotData, len(groups))
	for i, g := range groups {
		names[i] = g.Key
		s := g.Stats
		data[i] = opts.BoxPlotData{Value: []interface{}{
			chartValue(s.LowerWhisker), chartValue(s.Q1), chartValue(s.Median), chartValue(s.Q3), chartValue(s.UpperWhisker),
		}}
	}
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(initOpts(7), title("Distribución de Engagement Rate por Plataforma"), tooltip("item"))
	box.SetXAxis(names).AddSeries("Engagement Rate (%)", data)
	return box
}

func audienceConversions(rows []models.AudienceConversions) *charts.Bar {
	names := make([]string, len(rows))
	conversions := make([]float64, len(rows))
	costs := make([]opts.LineData, len(rows))
	for i, r := range rows {
		names[i] = r.Audience
		conversions[i] = r.Conversions
		costs[i] = opts.LineData{Value: chartValue(r.CostPerConversion)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts(8), title("Conversiones y Costo por Conversión por Audiencia"), tooltip("axis"))
	bar.SetXAxis(names).AddSeries("Total Conversiones", barData(conversions, nil), colored(green))

	line := charts.NewLine()
	line.SetXAxis(names).AddSeries("Costo/Conversión", costs, colored(red))
	bar.Overlap(line)
	return bar
}

func weeklyRevenue(weeks []models.DateSum) *charts.Line {
	labels := make([]string, len(weeks))
	data := make([]opts.LineData, len(weeks))
	for i, w := range weeks {
		labels[i] = w.Date.UTC().Format("2006-01-02")
		data[i] = opts.LineData{Value: chartValue(w.Value)}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(initOpts(9), title("Tendencia de Revenue en el Tiempo"), tooltip("axis"))
	line.SetXAxis(labels).AddSeries("Revenue Semanal", data,
		colored(green),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.3)}),
	)
	return line
}

func correlation(r *analysis.Result) *charts.HeatMap {
	m := r.Correlation
	var data []opts.HeatMapData
	for i := range m.Columns {
		for j := range m.Columns {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, chartValue(m.Values[i][j])}})
		}
	}
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		initOpts(10), title("Matriz de Correlación - Variables Numéricas"), tooltip("item"),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: m.Columns}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: []string{"#3b4cc0", "#dddddd", "#b40426"}},
		}),
	)
	hm.SetXAxis(m.Columns).AddSeries("Correlación", data)
	return hm
}

func funnel(stages []models.FunnelStage) *charts.Bar {
	names := make([]string, len(stages))
	impressions := make([]float64, len(stages))
	clicks := make([]float64, len(stages))
	conversions := make([]float64, len(stages))
	for i, s := range stages {
		names[i] = s.CampaignType
		impressions[i] = s.Impressions / 1000
		clicks[i] = s.Clicks / 100
		conversions[i] = s.Conversions
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts(11), title("Embudo de Conversión por Tipo de Campaña"), tooltip("axis"))
	bar.SetXAxis(names).
		AddSeries("Impresiones (÷1000)", barData(impressions, nil), colored(blue)).
		AddSeries("Clicks (÷100)", barData(clicks, nil), colored(orange)).
		AddSeries("Conversiones", barData(conversions, nil), colored(green))
	return bar
}

func platformScores(scores []models.PlatformScore) *charts.Bar {
	names := make([]string, len(scores))
	values := make([]float64, len(scores))
	for i, s := range scores {
		names[i] = s.Platform
		values[i] = s.Score
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts(12), title("Score Integrado de Rendimiento por Plataforma"), tooltip("axis"))
	bar.SetXAxis(names).AddSeries("Score", barData(values, func(i int) string {
		return ratingColor(analysis.RateScore(values[i]))
	}))
	return bar
}

func roiByCampaignType(values []models.RankedValue) *charts.Bar {
	keys, nums := ranked(values)
	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts(13), title("Retorno sobre Inversión por Tipo de Campaña"), tooltip("axis"))
	bar.SetXAxis(keys).AddSeries("ROI (%)", barData(nums, func(i int) string {
		return ratingColor(analysis.RateROI(nums[i]))
	}))
	return bar
}
