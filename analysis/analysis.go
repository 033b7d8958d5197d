package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pivolan/campaign_analyzer/dataset"
	"github.com/pivolan/campaign_analyzer/domain/models"
	"github.com/pivolan/campaign_analyzer/stats"
)

var numericColumns = []string{
	models.ColDailyBudget,
	models.ColTotalCost,
	models.ColImpressions,
	models.ColClicks,
	models.ColConversions,
	models.ColRevenue,
	models.ColCTR,
	models.ColConversionRate,
	models.ColCPC,
	models.ColCPA,
	models.ColROAS,
	models.ColEngagementRate,
}

// Distribution is the spread of one metric inside a group.
type Distribution struct {
	Key   string
	Stats stats.NumberStats
}

// Result holds every aggregate the charts and summaries are drawn from.
type Result struct {
	PlatformTotals       []models.PlatformTotals
	ROASByPlatform       []models.RankedValue
	CampaignRates        []models.CampaignRates
	AudienceDistribution []models.ValueCount
	BudgetRevenue        []models.Point
	CPCvsCPA             []models.Point
	EngagementByPlatform []Distribution
	AudienceConversions  []models.AudienceConversions
	WeeklyRevenue        []models.DateSum
	Correlation          stats.Matrix
	Funnel               []models.FunnelStage
	PlatformScores       []models.PlatformScore
	ROIByCampaignType    []models.RankedValue

	PlatformSummary []models.PlatformSummary
	CampaignSummary []models.CampaignSummary
	AudienceSummary []models.AudienceSummary
}

// Analysis is the campaign table split into groups once.
type Analysis struct {
	ds *dataset.Dataset

	platforms     []Group
	platformsSeen []Group
	campaignTypes []Group
	audiences     []Group
	audienceRows  int
	dates         []time.Time
	noDate        []bool
	num           map[string][]float64
}

// New validates ds against the campaign schema and parses its date column.
func New(ds *dataset.Dataset) (*Analysis, error) {
	required := append([]string{models.ColPlatform, models.ColCampaignType, models.ColAudience, models.ColDate}, numericColumns...)
	if err := ds.Require(required...); err != nil {
		return nil, err
	}
	if err := ds.ParseDates(models.ColDate); err != nil {
		return nil, err
	}

	a := &Analysis{ds: ds, num: make(map[string][]float64, len(numericColumns))}
	for _, col := range numericColumns {
		values, err := ds.Float(col)
		if err != nil {
			return nil, err
		}
		a.num[col] = values
	}

	var err error
	if a.dates, a.noDate, err = ds.Dates(models.ColDate); err != nil {
		return nil, err
	}

	keys, missing, err := ds.Strings(models.ColPlatform)
	if err != nil {
		return nil, err
	}
	a.platforms = GroupBy(keys, missing)
	a.platformsSeen = GroupByAppearance(keys, missing)

	if keys, missing, err = ds.Strings(models.ColCampaignType); err != nil {
		return nil, err
	}
	a.campaignTypes = GroupBy(keys, missing)

	if keys, missing, err = ds.Strings(models.ColAudience); err != nil {
		return nil, err
	}
	a.audiences = GroupBy(keys, missing)
	for _, m := range missing {
		if !m {
			a.audienceRows++
		}
	}
	return a, nil
}

// Run evaluates every aggregate and summary.
func (a *Analysis) Run() (*Result, error) {
	corr, err := stats.NumberCorrelation(a.ds)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}
	return &Result{
		PlatformTotals:       a.PlatformTotals(),
		ROASByPlatform:       a.ROASByPlatform(),
		CampaignRates:        a.CampaignRates(),
		AudienceDistribution: a.AudienceDistribution(),
		BudgetRevenue:        a.BudgetRevenue(),
		CPCvsCPA:             a.CPCvsCPA(),
		EngagementByPlatform: a.EngagementByPlatform(),
		AudienceConversions:  a.AudienceConversions(),
		WeeklyRevenue:        a.WeeklyRevenue(),
		Correlation:          corr,
		Funnel:               a.Funnel(),
		PlatformScores:       a.PlatformScores(),
		ROIByCampaignType:    a.ROIByCampaignType(),
		PlatformSummary:      a.PlatformSummary(),
		CampaignSummary:      a.CampaignSummary(),
		AudienceSummary:      a.AudienceSummary(),
	}, nil
}

func (a *Analysis) sum(col string, g Group) float64 {
	return Sum(a.num[col], g.Rows)
}

func (a *Analysis) mean(col string, g Group) float64 {
	return Mean(a.num[col], g.Rows)
}

// descending orders NaN last.
func descending(x, y float64) bool {
	if math.IsNaN(x) {
		return false
	}
	if math.IsNaN(y) {
		return true
	}
	return x > y
}

func (a *Analysis) PlatformTotals() []models.PlatformTotals {
	result := make([]models.PlatformTotals, len(a.platforms))
	for i, g := range a.platforms {
		result[i] = models.PlatformTotals{
			Platform:    g.Key,
			Revenue:     a.sum(models.ColRevenue, g),
			Conversions: a.sum(models.ColConversions, g),
			Cost:        a.sum(models.ColTotalCost, g),
		}
	}
	return result
}

func (a *Analysis) ROASByPlatform() []models.RankedValue {
	result := make([]models.RankedValue, len(a.platforms))
	for i, g := range a.platforms {
		result[i] = models.RankedValue{Key: g.Key, Value: a.mean(models.ColROAS, g)}
	}
	sortRanked(result)
	return result
}

func sortRanked(values []models.RankedValue) {
	sort.SliceStable(values, func(i, j int) bool {
		return descending(values[i].Value, values[j].Value)
	})
}

func (a *Analysis) CampaignRates() []models.CampaignRates {
	result := make([]models.CampaignRates, len(a.campaignTypes))
	for i, g := range a.campaignTypes {
		result[i] = models.CampaignRates{
			CampaignType:   g.Key,
			CTR:            a.mean(models.ColCTR, g),
			ConversionRate: a.mean(models.ColConversionRate, g),
		}
	}
	return result
}

// AudienceDistribution counts rows per audience, most frequent first.
func (a *Analysis) AudienceDistribution() []models.ValueCount {
	result := make([]models.ValueCount, len(a.audiences))
	for i, g := range a.audiences {
		result[i] = models.ValueCount{
			Value:   g.Key,
			Count:   int64(len(g.Rows)),
			Percent: float64(len(g.Rows)) / float64(a.audienceRows) * 100,
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// points pairs x and y per row, coloured by c. Rows missing any of the
// three are dropped.
func (a *Analysis) points(x, y, c string) []models.Point {
	xs, ys, cs := a.num[x], a.num[y], a.num[c]
	var result []models.Point
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) || math.IsNaN(cs[i]) {
			continue
		}
		result = append(result, models.Point{X: xs[i], Y: ys[i], Color: cs[i]})
	}
	return result
}

func (a *Analysis) BudgetRevenue() []models.Point {
	return a.points(models.ColDailyBudget, models.ColRevenue, models.ColROAS)
}

func (a *Analysis) CPCvsCPA() []models.Point {
	return a.points(models.ColCPC, models.ColCPA, models.ColConversionRate)
}

// EngagementByPlatform keeps platforms in order of first appearance.
func (a *Analysis) EngagementByPlatform() []Distribution {
	result := make([]Distribution, len(a.platformsSeen))
	for i, g := range a.platformsSeen {
		result[i] = Distribution{
			Key:   g.Key,
			Stats: stats.Describe(Pick(a.num[models.ColEngagementRate], g.Rows)),
		}
	}
	return result
}

// AudienceConversions sorts by conversions, highest first. Cost per
// conversion follows IEEE division.
func (a *Analysis) AudienceConversions() []models.AudienceConversions {
	result := make([]models.AudienceConversions, len(a.audiences))
	for i, g := range a.audiences {
		conversions := a.sum(models.ColConversions, g)
		cost := a.sum(models.ColTotalCost, g)
		result[i] = models.AudienceConversions{
			Audience:          g.Key,
			Conversions:       conversions,
			Cost:              cost,
			CostPerConversion: cost / conversions,
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return descending(result[i].Conversions, result[j].Conversions)
	})
	return result
}

// WeekEnding returns the Sunday closing the week of t.
func WeekEnding(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, (7-int(day.Weekday()))%7)
}

// WeeklyRevenue sums revenue per week ending Sunday. Weeks without rows
// between the first and last date are reported as 0.
func (a *Analysis) WeeklyRevenue() []models.DateSum {
	revenue := a.num[models.ColRevenue]
	weeks := make(map[time.Time]float64)
	var first, last time.Time
	for i, d := range a.dates {
		if a.noDate[i] {
			continue
		}
		week := WeekEnding(d)
		if len(weeks) == 0 || week.Before(first) {
			first = week
		}
		if len(weeks) == 0 || week.After(last) {
			last = week
		}
		if _, ok := weeks[week]; !ok {
			weeks[week] = 0
		}
		if !math.IsNaN(revenue[i]) {
			weeks[week] += revenue[i]
		}
	}
	if len(weeks) == 0 {
		return nil
	}

	var result []models.DateSum
	for w := first; !w.After(last); w = w.AddDate(0, 0, 7) {
		result = append(result, models.DateSum{Date: w, Value: weeks[w]})
	}
	return result
}

func (a *Analysis) Funnel() []models.FunnelStage {
	result := make([]models.FunnelStage, len(a.campaignTypes))
	for i, g := range a.campaignTypes {
		result[i] = models.FunnelStage{
			CampaignType: g.Key,
			Impressions:  a.sum(models.ColImpressions, g),
			Clicks:       a.sum(models.ColClicks, g),
			Conversions:  a.sum(models.ColConversions, g),
		}
	}
	return result
}

// PlatformScores normalises the mean roas, conversion rate, ctr and
// engagement of each platform to 0-100 and averages them. Best first.
func (a *Analysis) PlatformScores() []models.PlatformScore {
	n := len(a.platforms)
	roas := make([]float64, n)
	conv := make([]float64, n)
	ctr := make([]float64, n)
	eng := make([]float64, n)
	for i, g := range a.platforms {
		roas[i] = a.mean(models.ColROAS, g)
		conv[i] = a.mean(models.ColConversionRate, g)
		ctr[i] = a.mean(models.ColCTR, g)
		eng[i] = a.mean(models.ColEngagementRate, g)
	}
	roasNorm, convNorm, ctrNorm, engNorm := Normalize(roas), Normalize(conv), Normalize(ctr), Normalize(eng)

	result := make([]models.PlatformScore, n)
	for i, g := range a.platforms {
		result[i] = models.PlatformScore{
			Platform:       g.Key,
			ROAS:           roas[i],
			ConversionRate: conv[i],
			CTR:            ctr[i],
			Engagement:     eng[i],
			ROASNorm:       roasNorm[i],
			ConvNorm:       convNorm[i],
			CTRNorm:        ctrNorm[i],
			EngagementNorm: engNorm[i],
			Score:          MeanFinite(roasNorm[i], convNorm[i], ctrNorm[i], engNorm[i]),
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return descending(result[i].Score, result[j].Score)
	})
	return result
}

func (a *Analysis) ROIByCampaignType() []models.RankedValue {
	result := make([]models.RankedValue, len(a.campaignTypes))
	for i, g := range a.campaignTypes {
		result[i] = models.RankedValue{
			Key:   g.Key,
			Value: roiRatio(a.sum(models.ColRevenue, g), a.sum(models.ColTotalCost, g)),
		}
	}
	sortRanked(result)
	return result
}
