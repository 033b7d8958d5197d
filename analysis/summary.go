package analysis

import (
	"sort"

	"github.com/pivolan/campaign_analyzer/domain/models"
)

func (a *Analysis) PlatformSummary() []models.PlatformSummary {
	result := make([]models.PlatformSummary, len(a.platforms))
	for i, g := range a.platforms {
		result[i] = models.PlatformSummary{
			Platform:       g.Key,
			Revenue:        Round2(a.sum(models.ColRevenue, g)),
			Cost:           Round2(a.sum(models.ColTotalCost, g)),
			Conversions:    Round2(a.sum(models.ColConversions, g)),
			ROAS:           Round2(a.mean(models.ColROAS, g)),
			ConversionRate: Round2(a.mean(models.ColConversionRate, g)),
		}
	}
	return result
}

// CampaignSummary computes ROI from the grouped sums. Unlike the chart, a
// type without cost reports 0.
func (a *Analysis) CampaignSummary() []models.CampaignSummary {
	result := make([]models.CampaignSummary, len(a.campaignTypes))
	for i, g := range a.campaignTypes {
		revenue := a.sum(models.ColRevenue, g)
		cost := a.sum(models.ColTotalCost, g)
		result[i] = models.CampaignSummary{
			CampaignType: g.Key,
			Revenue:      Round2(revenue),
			Cost:         Round2(cost),
			Conversions:  Round2(a.sum(models.ColConversions, g)),
			ROI:          Round2(ROI(revenue, cost)),
			ROAS:         Round2(a.mean(models.ColROAS, g)),
		}
	}
	return result
}

// AudienceSummary is ordered by unrounded conversion rate, highest first.
func (a *Analysis) AudienceSummary() []models.AudienceSummary {
	type row struct {
		summary models.AudienceSummary
		rate    float64
	}
	rows := make([]row, len(a.audiences))
	for i, g := range a.audiences {
		rate := a.mean(models.ColConversionRate, g)
		rows[i] = row{
			rate: rate,
			summary: models.AudienceSummary{
				Audience:       g.Key,
				ConversionRate: Round2(rate),
				EngagementRate: Round2(a.mean(models.ColEngagementRate, g)),
				CPC:            Round2(a.mean(models.ColCPC, g)),
				Conversions:    Round2(a.sum(models.ColConversions, g)),
			},
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return descending(rows[i].rate, rows[j].rate)
	})

	result := make([]models.AudienceSummary, len(rows))
	for i, r := range rows {
		result[i] = r.summary
	}
	return result
}
