package store

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pivolan/campaign_analyzer/analysis"
	"github.com/pivolan/campaign_analyzer/domain/models"
)

// dryRun builds a gorm handle that renders SQL without a server.
func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/campaigns",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func result() *analysis.Result {
	return &analysis.Result{
		PlatformSummary: []models.PlatformSummary{
			{Platform: "Facebook", Revenue: 120, Cost: 30, Conversions: 4, ROAS: 4, ConversionRate: 2.5},
			{Platform: "TikTok", Revenue: 0, Cost: 0, Conversions: 0, ROAS: math.NaN(), ConversionRate: math.NaN()},
		},
		CampaignSummary: []models.CampaignSummary{
			{CampaignType: "Awareness", Revenue: 120, Cost: 30, Conversions: 4, ROI: 300, ROAS: 4},
		},
		AudienceSummary: []models.AudienceSummary{
			{Audience: "18-24", ConversionRate: 2.5, EngagementRate: 1, CPC: 0.5, Conversions: 4},
		},
	}
}

func TestRows(t *testing.T) {
	rows := Rows("run-1", "datos.csv", result())
	require.Len(t, rows, 4)

	kinds := make([]string, len(rows))
	for i, r := range rows {
		kinds[i] = r.Kind
		assert.Equal(t, "run-1", r.RunID)
		assert.Equal(t, "datos.csv", r.Source)
	}
	assert.Equal(t, []string{KindPlatform, KindPlatform, KindCampaign, KindAudience}, kinds)

	facebook := rows[0]
	assert.Equal(t, "Facebook", facebook.GroupKey)
	require.NotNil(t, facebook.ROAS)
	assert.Equal(t, 4.0, *facebook.ROAS)
	assert.Nil(t, facebook.ROI)
	assert.Nil(t, facebook.CPC)

	tiktok := rows[1]
	assert.Nil(t, tiktok.ROAS)
	assert.Nil(t, tiktok.ConversionRate)
	require.NotNil(t, tiktok.Revenue)
	assert.Equal(t, 0.0, *tiktok.Revenue)

	campaign := rows[2]
	require.NotNil(t, campaign.ROI)
	assert.Equal(t, 300.0, *campaign.ROI)
	assert.Nil(t, campaign.EngagementRate)

	audience := rows[3]
	require.NotNil(t, audience.CPC)
	assert.Equal(t, 0.5, *audience.CPC)
	assert.Nil(t, audience.Revenue)
}

func TestInsertSQL(t *testing.T) {
	db := dryRun(t)
	rows := Rows("run-1", "datos.csv", result())

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Create(&rows)
	})
	assert.Contains(t, sql, "INSERT INTO `campaign_summaries`")
	assert.Contains(t, sql, "`run_id`")
	assert.Contains(t, sql, "`roas`")
	assert.Contains(t, sql, "'Facebook'")
	assert.Contains(t, sql, "NULL")
}

func TestSaveDryRun(t *testing.T) {
	s := New(dryRun(t))
	ctx := context.Background()

	assert.NoError(t, s.Save(ctx, Rows("run-1", "datos.csv", result())))
	assert.NoError(t, s.Save(ctx, nil))

	rows, err := s.ByRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "campaign_summaries", Summary{}.TableName())
}
