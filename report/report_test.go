package report

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/campaign_analyzer/analysis"
	"github.com/pivolan/campaign_analyzer/domain/models"
	"github.com/pivolan/campaign_analyzer/stats"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{1.005, 2, "1.00"},
		{1234.5, 2, "1234.50"},
		{math.NaN(), 2, "NaN"},
		{math.Inf(1), 2, "inf"},
		{math.Inf(-1), 4, "-inf"},
		{math.Copysign(0, -1), 2, "0.00"},
		{0.12345, 4, "0.1235"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.v, tt.decimals))
	}
}

func TestWriteDescription(t *testing.T) {
	d := Description{
		Rows: 2,
		Cols: 2,
		Columns: []models.ColumnInfo{
			{Name: "plataforma", DType: models.DTypeObject},
			{Name: "clicks", DType: models.DTypeInt},
		},
		Stats:   []stats.ColumnStats{{Name: "clicks", NumberStats: stats.Describe([]float64{1, 3})}},
		Missing: []models.ColumnCount{{Name: "plataforma", Count: 0}, {Name: "clicks", Count: 1}},
		Head:    [][]string{{"Facebook", "1"}, {"TikTok", "3"}},
		Correlation: stats.Matrix{
			Columns: []string{"clicks"},
			Values:  [][]float64{{1}},
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteDescription(buf, d))
	out := buf.String()

	sections := []string{
		"=== INFORMACIÓN DEL DATASET ===",
		"=== ESTADÍSTICAS DESCRIPTIVAS ===",
		"=== VALORES FALTANTES ===",
		"=== PRIMERAS FILAS ===",
		"=== COLUMNAS ===",
		"=== CORRELACIÓN ===",
	}
	last := -1
	for _, s := range sections {
		i := strings.Index(out, s)
		require.GreaterOrEqual(t, i, 0, s)
		assert.Greater(t, i, last, "%s out of order", s)
		last = i
	}
	assert.True(t, strings.HasPrefix(out, "=== INFORMACIÓN DEL DATASET ===\n"))
	assert.Contains(t, out, "Dimensiones: (2, 2)")
	assert.Contains(t, out, `["plataforma", "clicks"]`)
	assert.Contains(t, out, "2.0000")
	assert.Contains(t, out, "1.4142")
	assert.Contains(t, out, "TikTok")
}

func TestWriteSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	err := WriteSummary(buf,
		[]models.PlatformSummary{{Platform: "Facebook", Revenue: 120, Cost: 30, Conversions: 4, ROAS: 4, ConversionRate: 2.5}},
		[]models.CampaignSummary{{CampaignType: "Awareness", Revenue: 120, Cost: 30, Conversions: 4, ROI: 300, ROAS: 4}},
		[]models.AudienceSummary{{Audience: "18-24", ConversionRate: 2.5, EngagementRate: 1, CPC: 0.5, Conversions: 4}},
	)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, strings.Repeat("=", 60)+"\nRESUMEN EJECUTIVO DEL ANÁLISIS\n")
	assert.Contains(t, out, "📊 RENDIMIENTO POR PLATAFORMA:")
	assert.Contains(t, out, "📊 RENDIMIENTO POR TIPO DE CAMPAÑA:")
	assert.Contains(t, out, "📊 AUDIENCIA MÁS EFECTIVA:")
	assert.Contains(t, out, "300.00")
	assert.True(t, strings.HasSuffix(out, "✓ Análisis completado exitosamente\n"))
}

func TestWriteSaved(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteSaved(buf, "Gráfico", "analisis_campanas.png"))
	assert.Equal(t, "✓ Gráfico guardado como 'analisis_campanas.png'\n", buf.String())
}

func sampleResult() *analysis.Result {
	return &analysis.Result{
		PlatformTotals:       []models.PlatformTotals{{Platform: "Facebook", Revenue: 100, Conversions: 2, Cost: 25}},
		ROASByPlatform:       []models.RankedValue{{Key: "Facebook", Value: 4}},
		CampaignRates:        []models.CampaignRates{{CampaignType: "Awareness", CTR: 1.5, ConversionRate: 2}},
		AudienceDistribution: []models.ValueCount{{Value: "18-24", Count: 3, Percent: 100}},
		BudgetRevenue:        []models.Point{{X: 10, Y: 100, Color: 4}},
		CPCvsCPA:             []models.Point{{X: 0.5, Y: 12, Color: math.NaN()}},
		EngagementByPlatform: []analysis.Distribution{{Key: "Facebook", Stats: stats.Describe([]float64{1, 2, 3})}},
		AudienceConversions:  []models.AudienceConversions{{Audience: "18-24", Conversions: 0, Cost: 10, CostPerConversion: math.Inf(1)}},
		WeeklyRevenue:        []models.DateSum{{Date: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), Value: 100}},
		Correlation:          stats.Matrix{Columns: []string{"a", "b"}, Values: [][]float64{{1, math.NaN()}, {math.NaN(), 1}}},
		Funnel:               []models.FunnelStage{{CampaignType: "Awareness", Impressions: 1000, Clicks: 100, Conversions: 2}},
		PlatformScores:       []models.PlatformScore{{Platform: "Facebook", Score: 0}},
		ROIByCampaignType:    []models.RankedValue{{Key: "Awareness", Value: 300}},
	}
}

func TestWriteDashboard(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteDashboard(buf, sampleResult()))
	out := buf.String()

	for _, id := range []string{"panel_1", "panel_7", "panel_10", "panel_13"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "Matriz de Correlación - Variables Numéricas")
	assert.Contains(t, out, "2024-01-07")
	assert.NotContains(t, out, "NaN")
}

func TestDashboardIsStable(t *testing.T) {
	first, second := &bytes.Buffer{}, &bytes.Buffer{}
	require.NoError(t, WriteDashboard(first, sampleResult()))
	require.NoError(t, WriteDashboard(second, sampleResult()))
	assert.Equal(t, first.String(), second.String())
}

func TestRatingColor(t *testing.T) {
	assert.Equal(t, green, ratingColor(analysis.Good))
	assert.Equal(t, orange, ratingColor(analysis.Fair))
	assert.Equal(t, red, ratingColor(analysis.Poor))
}
