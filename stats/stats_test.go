package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/campaign_analyzer/dataset"
	"github.com/pivolan/campaign_analyzer/domain/models"
)

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Quantile(sorted, tt.p), 1e-12, "p=%v", tt.p)
	}
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestDescribe(t *testing.T) {
	ns := Describe([]float64{4, math.NaN(), 1, 3, 2})

	assert.Equal(t, 4, ns.Count)
	assert.InDelta(t, 2.5, ns.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), ns.Std, 1e-12)
	assert.Equal(t, 1.0, ns.Min)
	assert.InDelta(t, 1.75, ns.Q1, 1e-12)
	assert.InDelta(t, 2.5, ns.Median, 1e-12)
	assert.InDelta(t, 3.25, ns.Q3, 1e-12)
	assert.Equal(t, 4.0, ns.Max)
	assert.Empty(t, ns.Outliers)
	assert.Equal(t, 1.0, ns.LowerWhisker)
	assert.Equal(t, 4.0, ns.UpperWhisker)
}

func TestDescribeOutliers(t *testing.T) {
	ns := Describe([]float64{1, 2, 3, 4, 100})

	assert.Equal(t, []float64{100}, ns.Outliers)
	assert.Equal(t, 4.0, ns.UpperWhisker)
	assert.Equal(t, 1.0, ns.LowerWhisker)
}

func TestDescribeDegenerate(t *testing.T) {
	empty := Describe([]float64{math.NaN()})
	assert.Equal(t, 0, empty.Count)
	assert.True(t, math.IsNaN(empty.Mean))
	assert.True(t, math.IsNaN(empty.Max))

	single := Describe([]float64{7})
	assert.Equal(t, 1, single.Count)
	assert.Equal(t, 7.0, single.Mean)
	assert.True(t, math.IsNaN(single.Std))
}

func TestPearson(t *testing.T) {
	assert.InDelta(t, 1.0, Pearson([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-12)
	assert.InDelta(t, -1.0, Pearson([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-12)
	assert.InDelta(t, 1.0, Pearson([]float64{1, math.NaN(), 3, 4}, []float64{1, 5, 3, 4}), 1e-12)
	assert.True(t, math.IsNaN(Pearson([]float64{1, 1, 1}, []float64{1, 2, 3})))
	assert.True(t, math.IsNaN(Pearson([]float64{1, math.NaN()}, []float64{1, 2})))
}

const sample = "plataforma,costo_total,clicks,cpa\n" +
	"Facebook,10,1,\n" +
	"TikTok,20,2,\n" +
	",30,4,\n"

func TestDatasetStats(t *testing.T) {
	ds, err := dataset.Read(strings.NewReader(sample))
	require.NoError(t, err)

	missing, err := MissingCounts(ds)
	require.NoError(t, err)
	assert.Equal(t, []models.ColumnCount{
		{Name: "plataforma", Count: 1},
		{Name: "costo_total", Count: 0},
		{Name: "clicks", Count: 0},
		{Name: "cpa", Count: 3},
	}, missing)

	described, err := DescribeColumns(ds)
	require.NoError(t, err)
	require.Len(t, described, 3)
	assert.Equal(t, "costo_total", described[0].Name)
	assert.InDelta(t, 20.0, described[0].Mean, 1e-12)
	assert.Equal(t, 0, described[2].Count)

	m, err := Correlation(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"costo_total", "clicks", "cpa"}, m.Columns)
	assert.True(t, math.IsNaN(m.At("cpa", "cpa")))
	assert.Equal(t, 1.0, m.At("costo_total", "costo_total"))
	assert.InDelta(t, 0.9819805, m.At("costo_total", "clicks"), 1e-6)
	assert.Equal(t, m.At("clicks", "costo_total"), m.At("costo_total", "clicks"))
	assert.True(t, math.IsNaN(m.At("costo_total", "roas")))
}

func TestNumberCorrelationSkipsBools(t *testing.T) {
	ds, err := dataset.Read(strings.NewReader("costo_total,clicks,activa\n10,1,true\n20,2,false\n30,4,true\n"))
	require.NoError(t, err)

	all, err := Correlation(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"costo_total", "clicks", "activa"}, all.Columns)

	numbers, err := NumberCorrelation(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"costo_total", "clicks"}, numbers.Columns)
	assert.Equal(t, all.At("costo_total", "clicks"), numbers.At("costo_total", "clicks"))
	assert.True(t, math.IsNaN(numbers.At("activa", "clicks")))
}
