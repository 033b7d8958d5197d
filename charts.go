package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pivolan/campaign_analyzer/analysis"
	"github.com/pivolan/campaign_analyzer/dataset"
	"github.com/pivolan/campaign_analyzer/domain/models"
	"github.com/pivolan/campaign_analyzer/notify"
	"github.com/pivolan/campaign_analyzer/plot"
	"github.com/pivolan/campaign_analyzer/report"
	"github.com/pivolan/campaign_analyzer/store"
)

// engagementColors fills the boxes of the engagement panel in platform order.
var engagementColors = []drawing.Color{plot.Blue, plot.Red, plot.Green, plot.Orange}

func ratingColor(r analysis.Rating) drawing.Color {
	switch r {
	case analysis.Good:
		return plot.Green
	case analysis.Fair:
		return plot.Orange
	default:
		return plot.Red
	}
}

func ranked(values []models.RankedValue, rate func(float64) analysis.Rating) ([]string, plot.BarSeries) {
	keys := make([]string, len(values))
	series := plot.BarSeries{Values: make([]float64, len(values)), Colors: make([]drawing.Color, len(values))}
	for i, v := range values {
		keys[i] = v.Key
		series.Values[i] = v.Value
		series.Colors[i] = ratingColor(rate(v.Value))
	}
	return keys, series
}

// campaignPanels are the nine panels of the first image.
func campaignPanels(r *analysis.Result) []plot.Panel {
	platforms := make([]string, len(r.PlatformTotals))
	revenue := make([]float64, len(r.PlatformTotals))
	conversions := make([]float64, len(r.PlatformTotals))
	cost := make([]float64, len(r.PlatformTotals))
	for i, t := range r.PlatformTotals {
		platforms[i] = t.Platform
		revenue[i] = t.Revenue
		conversions[i] = t.Conversions * 100
		cost[i] = t.Cost
	}

	roasKeys, roas := ranked(r.ROASByPlatform, analysis.RateROAS)

	campaignTypes := make([]string, len(r.CampaignRates))
	ctr := make([]float64, len(r.CampaignRates))
	convRate := make([]float64, len(r.CampaignRates))
	for i, c := range r.CampaignRates {
		campaignTypes[i] = c.CampaignType
		ctr[i] = c.CTR
		convRate[i] = c.ConversionRate
	}

	slices := make([]plot.PieSlice, len(r.AudienceDistribution))
	for i, v := range r.AudienceDistribution {
		slices[i] = plot.PieSlice{Label: v.Value, Value: float64(v.Count)}
	}

	boxes := make([]plot.BoxGroup, len(r.EngagementByPlatform))
	for i, d := range r.EngagementByPlatform {
		boxes[i] = plot.BoxGroup{
			Label:        d.Key,
			Q1:           d.Stats.Q1,
			Median:       d.Stats.Median,
			Q3:           d.Stats.Q3,
			LowerWhisker: d.Stats.LowerWhisker,
			UpperWhisker: d.Stats.UpperWhisker,
			Outliers:     d.Stats.Outliers,
			Color:        engagementColors[i%len(engagementColors)],
		}
	}

	audiences := make([]string, len(r.AudienceConversions))
	audienceConv := make([]float64, len(r.AudienceConversions))
	costPerConv := make([]float64, len(r.AudienceConversions))
	for i, a := range r.AudienceConversions {
		audiences[i] = a.Audience
		audienceConv[i] = a.Conversions
		costPerConv[i] = a.CostPerConversion
	}

	weeks := make([]time.Time, len(r.WeeklyRevenue))
	weekly := make([]float64, len(r.WeeklyRevenue))
	for i, w := range r.WeeklyRevenue {
		weeks[i] = w.Date
		weekly[i] = w.Value
	}

	return []plot.Panel{
		plot.BarPanel{
			Title:      "Revenue, Conversiones y Costo por Plataforma",
			XLabel:     "Plataforma",
			YLabel:     "Valor",
			Categories: platforms,
			Series: []plot.BarSeries{
				{Name: "Revenue", Values: revenue, Color: plot.Green},
				{Name: "Conversiones (x100)", Values: conversions, Color: plot.Blue},
				{Name: "Costo Total", Values: cost, Color: plot.Red},
			},
			Legend: true,
		},
		plot.BarPanel{
			Title:      "ROAS Promedio por Plataforma",
			XLabel:     "Plataforma",
			YLabel:     "ROAS",
			Categories: roasKeys,
			Series:     []plot.BarSeries{roas},
			RefLine:    &plot.RefLine{Value: analysis.ROASThreshold, Label: "Umbral Mínimo", Color: plot.Red},
			Legend:     true,
		},
		plot.BarPanel{
			Title:      "CTR y Tasa de Conversión por Tipo de Campaña",
			XLabel:     "Tipo de Campaña",
			YLabel:     "CTR (%)",
			Y2Label:    "Conversion Rate (%)",
			Categories: campaignTypes,
			Series: []plot.BarSeries{
				{Name: "CTR Promedio (%)", Values: ctr, Color: plot.Purple},
				{Name: "Conversion Rate (%)", Values: convRate, Color: plot.Teal, Secondary: true},
			},
			Legend: true,
		},
		plot.PiePanel{Title: "Distribución de Audiencia Objetivo", Slices: slices},
		scatterPanel("Presupuesto vs Revenue (coloreado por ROAS)", "Presupuesto Diario ($)", "Revenue Generado ($)",
			"ROAS", r.BudgetRevenue, plot.RdYlGn),
		scatterPanel("CPC vs CPA (coloreado por Conversion Rate)", "Costo por Click ($)", "Costo por Adquisición ($)",
			"Conversion Rate (%)", r.CPCvsCPA, plot.Viridis),
		plot.BoxPanel{
			Title:  "Distribución de Engagement Rate por Plataforma",
			XLabel: "Plataforma",
			YLabel: "Engagement Rate (%)",
			Groups: boxes,
		},
		plot.BarPanel{
			Title:      "Conversiones y Costo por Conversión por Audiencia",
			XLabel:     "Audiencia Objetivo",
			YLabel:     "Total Conversiones",
			Y2Label:    "Costo por Conversión ($)",
			Categories: audiences,
			Series: []plot.BarSeries{
				{Name: "Total Conversiones", Values: audienceConv, Color: plot.Green},
				{Name: "Costo/Conversión", Values: costPerConv, Color: plot.Red, Secondary: true, Line: true},
			},
			Legend: true,
		},
		plot.TimeSeriesPanel{
			Title:  "Tendencia de Revenue en el Tiempo",
			XLabel: "Fecha",
			YLabel: "Revenue Generado ($)",
			Dates:  weeks,
			Values: weekly,
			Color:  plot.Green,
		},
	}
}

func scatterPanel(title, xLabel, yLabel, colorLabel string, points []models.Point, cmap plot.ColorMap) plot.ScatterPanel {
	p := plot.ScatterPanel{
		Title:      title,
		XLabel:     xLabel,
		YLabel:     yLabel,
		X:          make([]float64, len(points)),
		Y:          make([]float64, len(points)),
		C:          make([]float64, len(points)),
		ColorMap:   cmap,
		ColorLabel: colorLabel,
	}
	for i, pt := range points {
		p.X[i], p.Y[i], p.C[i] = pt.X, pt.Y, pt.Color
	}
	return p
}

// correlationPanels are the four panels of the second image.
func correlationPanels(r *analysis.Result) []plot.Panel {
	types := make([]string, len(r.Funnel))
	impressions := make([]float64, len(r.Funnel))
	clicks := make([]float64, len(r.Funnel))
	conversions := make([]float64, len(r.Funnel))
	for i, f := range r.Funnel {
		types[i] = f.CampaignType
		impressions[i] = f.Impressions / 1000
		clicks[i] = f.Clicks / 100
		conversions[i] = f.Conversions
	}

	scores := make([]models.RankedValue, len(r.PlatformScores))
	for i, s := range r.PlatformScores {
		scores[i] = models.RankedValue{Key: s.Platform, Value: s.Score}
	}
	scoreKeys, scoreSeries := ranked(scores, analysis.RateScore)
	roiKeys, roi := ranked(r.ROIByCampaignType, analysis.RateROI)

	return []plot.Panel{
		plot.HeatmapPanel{
			Title:  "Matriz de Correlación - Variables Numéricas",
			Labels: r.Correlation.Columns,
			Values: r.Correlation.Values,
			Min:    -1,
			Max:    1,
			Legend: "Correlación",
		},
		plot.BarPanel{
			Title:      "Embudo de Conversión por Tipo de Campaña",
			XLabel:     "Tipo de Campaña",
			YLabel:     "Cantidad",
			Categories: types,
			Series: []plot.BarSeries{
				{Name: "Impresiones (÷1000)", Values: impressions, Color: plot.Blue},
				{Name: "Clicks (÷100)", Values: clicks, Color: plot.Orange},
				{Name: "Conversiones", Values: conversions, Color: plot.Green},
			},
			Legend: true,
		},
		plot.BarPanel{
			Title:       "Score Integrado de Rendimiento por Plataforma",
			XLabel:      "Score de Rendimiento (0-100)",
			Categories:  scoreKeys,
			Series:      []plot.BarSeries{scoreSeries},
			Horizontal:  true,
			ValueFormat: "%.1f",
		},
		plot.BarPanel{
			Title:       "Retorno sobre Inversión por Tipo de Campaña",
			XLabel:      "ROI (%)",
			Categories:  roiKeys,
			Series:      []plot.BarSeries{roi},
			Horizontal:  true,
			RefLine:     &plot.RefLine{Value: 0, Color: drawing.ColorBlack, Solid: true},
			ValueFormat: "%.1f%%",
		},
	}
}

// renderImages composes both figures. Each panel is width x height.
func renderImages(r *analysis.Result, width, height int) (campaigns, correlation []byte, err error) {
	if campaigns, err = plot.Compose(campaignPanels(r), 3, width, height); err != nil {
		return nil, nil, fmt.Errorf("render campaigns image: %w", err)
	}
	if correlation, err = plot.Compose(correlationPanels(r), 2, width, height); err != nil {
		return nil, nil, fmt.Errorf("render correlation image: %w", err)
	}
	return campaigns, correlation, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// charts runs the aggregation, writes both images and prints the summary.
func (a *app) charts(ctx context.Context, ds *dataset.Dataset) error {
	an, err := analysis.New(ds)
	if err != nil {
		return err
	}
	result, err := an.Run()
	if err != nil {
		return err
	}
	a.log.Debug().
		Int("platforms", len(result.PlatformTotals)).
		Int("weeks", len(result.WeeklyRevenue)).
		Msg("aggregates computed")

	campaigns, correlation, err := renderImages(result, a.cfg.PanelWidth, a.cfg.PanelHeight)
	if err != nil {
		return err
	}

	if err := writeFile(a.cfg.CampaignsImagePath(), campaigns); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := report.WriteSaved(a.out, "Gráfico", a.cfg.CampaignsImagePath()); err != nil {
		return err
	}
	if err := writeFile(a.cfg.CorrelationImagePath(), correlation); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := report.WriteSaved(a.out, "Gráfico de correlación", a.cfg.CorrelationImagePath()); err != nil {
		return err
	}

	summary := &bytes.Buffer{}
	if err := report.WriteSummary(summary, result.PlatformSummary, result.CampaignSummary, result.AudienceSummary); err != nil {
		return err
	}
	if _, err := a.out.Write(summary.Bytes()); err != nil {
		return err
	}

	if a.cfg.HTMLReport != "" {
		html := &bytes.Buffer{}
		if err := report.WriteDashboard(html, result); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		path := filepath.Join(a.cfg.OutputDir, a.cfg.HTMLReport)
		if err := writeFile(path, html.Bytes()); err != nil {
			return fmt.Errorf("write dashboard: %w", err)
		}
		a.log.Info().Str("path", path).Msg("dashboard written")
	}

	a.persist(ctx, result)
	a.deliver([]notify.Image{
		{Name: a.cfg.CampaignsImage, Caption: "Análisis de campañas", Data: campaigns},
		{Name: a.cfg.CorrelationImage, Caption: "Correlación y rendimiento", Data: correlation},
	}, summary.String())
	return nil
}

// persist stores the summaries when a database is configured. Failures are
// logged only.
func (a *app) persist(ctx context.Context, result *analysis.Result) {
	if !a.cfg.StoreEnabled() {
		return
	}
	db, err := store.Open(a.cfg.DbDsn)
	if err != nil {
		a.log.Error().Err(err).Msg("store unavailable")
		return
	}
	n, err := db.SaveResult(ctx, a.runID, a.cfg.InputFile, result)
	if err != nil {
		a.log.Error().Err(err).Msg("store summaries")
		return
	}
	a.log.Info().Int("rows", n).Msg("summaries stored")
}

func (a *app) deliver(images []notify.Image, summary string) {
	if !a.cfg.NotifyEnabled() {
		return
	}
	n, err := notify.New(a.cfg.TgToken, a.cfg.TgChatID)
	if err != nil {
		a.log.Error().Err(err).Msg("telegram unavailable")
		return
	}
	if err := n.Deliver(images, summary); err != nil {
		a.log.Error().Err(err).Msg("telegram delivery")
		return
	}
	a.log.Info().Int64("chat_id", a.cfg.TgChatID).Msg("results delivered")
}
