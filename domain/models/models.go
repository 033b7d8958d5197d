package models

import "time"

// Column names of the campaign dataset after header normalisation.
const (
	ColPlatform       = "plataforma"
	ColCampaignType   = "tipo_campana"
	ColAudience       = "audiencia_objetivo"
	ColDate           = "fecha_campana"
	ColDailyBudget    = "presupuesto_diario"
	ColTotalCost      = "costo_total"
	ColImpressions    = "impresiones"
	ColClicks         = "clicks"
	ColConversions    = "conversiones"
	ColRevenue        = "revenue_generado"
	ColCTR            = "ctr"
	ColConversionRate = "conversion_rate"
	ColCPC            = "cpc"
	ColCPA            = "cpa"
	ColROAS           = "roas"
	ColEngagementRate = "engagement_rate"
)

// DType labels reported for dataset columns.
const (
	DTypeInt      = "int64"
	DTypeFloat    = "float64"
	DTypeBool     = "bool"
	DTypeObject   = "object"
	DTypeDatetime = "datetime64"
)

type ColumnInfo struct {
	Name  string
	DType string
}

type ColumnCount struct {
	Name  string
	Count int
}

// ValueCount is one entry of a frequency table.
type ValueCount struct {
	Value   string
	Count   int64
	Percent float64
}

type DateSum struct {
	Date  time.Time
	Value float64
}

type Point struct {
	X, Y  float64
	Color float64
}

type RankedValue struct {
	Key   string
	Value float64
}

type PlatformTotals struct {
	Platform    string
	Revenue     float64
	Conversions float64
	Cost        float64
}

type CampaignRates struct {
	CampaignType   string
	CTR            float64
	ConversionRate float64
}

type AudienceConversions struct {
	Audience          string
	Conversions       float64
	Cost              float64
	CostPerConversion float64
}

type FunnelStage struct {
	CampaignType string
	Impressions  float64
	Clicks       float64
	Conversions  float64
}

// PlatformScore is the integrated 0-100 performance score of one platform.
type PlatformScore struct {
	Platform       string
	ROAS           float64
	ConversionRate float64
	CTR            float64
	Engagement     float64
	ROASNorm       float64
	ConvNorm       float64
	CTRNorm        float64
	EngagementNorm float64
	Score          float64
}

type PlatformSummary struct {
	Platform       string
	Revenue        float64
	Cost           float64
	Conversions    float64
	ROAS           float64
	ConversionRate float64
}

type CampaignSummary struct {
	CampaignType string
	Revenue      float64
	Cost         float64
	Conversions  float64
	ROI          float64
	ROAS         float64
}

type AudienceSummary struct {
	Audience       string
	ConversionRate float64
	EngagementRate float64
	CPC            float64
	Conversions    float64
}
