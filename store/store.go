package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pivolan/campaign_analyzer/analysis"
)

const batchSize = 100

// Summary kinds.
const (
	KindPlatform = "platform"
	KindCampaign = "campaign"
	KindAudience = "audience"
)

// Summary is one row of an executive summary table. Metrics that do not
// apply to the kind, or are not finite, are stored as NULL.
type Summary struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	RunID          string `gorm:"size:36;index"`
	Source         string `gorm:"size:255"`
	Kind           string `gorm:"size:16;index"`
	GroupKey       string `gorm:"size:255"`
	Revenue        *float64
	Cost           *float64
	Conversions    *float64
	ROAS           *float64 `gorm:"column:roas"`
	ROI            *float64 `gorm:"column:roi"`
	ConversionRate *float64
	EngagementRate *float64
	CPC            *float64 `gorm:"column:cpc"`
	CreatedAt      time.Time
}

func (Summary) TableName() string {
	return "campaign_summaries"
}

type Store struct {
	db *gorm.DB
}

// Open connects to a MySQL protocol endpoint. gorm logging is silenced,
// failures surface as returned errors.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return New(db), nil
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&Summary{})
}

// Save inserts rows in batches.
func (s *Store) Save(ctx context.Context, rows []Summary) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("insert summaries: %w", err)
	}
	return nil
}

// ByRun loads the rows written by one run in insertion order.
func (s *Store) ByRun(ctx context.Context, runID string) ([]Summary, error) {
	var rows []Summary
	err := s.db.WithContext(ctx).Where("run_id = ?", runID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	return rows, nil
}

// SaveResult migrates the table and persists the three summaries of r.
func (s *Store) SaveResult(ctx context.Context, runID, source string, r *analysis.Result) (int, error) {
	if err := s.Migrate(ctx); err != nil {
		return 0, fmt.Errorf("migrate: %w", err)
	}
	rows := Rows(runID, source, r)
	if err := s.Save(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Rows flattens the summaries of r, platforms first, then campaign types,
// then audiences.
func Rows(runID, source string, r *analysis.Result) []Summary {
	rows := make([]Summary, 0, len(r.PlatformSummary)+len(r.CampaignSummary)+len(r.AudienceSummary))
	row := func(kind, key string) Summary {
		return Summary{RunID: runID, Source: source, Kind: kind, GroupKey: key}
	}

	for _, p := range r.PlatformSummary {
		s := row(KindPlatform, p.Platform)
		s.Revenue = value(p.Revenue)
		s.Cost = value(p.Cost)
		s.Conversions = value(p.Conversions)
		s.ROAS = value(p.ROAS)
		s.ConversionRate = value(p.ConversionRate)
		rows = append(rows, s)
	}
	for _, c := range r.CampaignSummary {
		s := row(KindCampaign, c.CampaignType)
		s.Revenue = value(c.Revenue)
		s.Cost = value(c.Cost)
		s.Conversions = value(c.Conversions)
		s.ROI = value(c.ROI)
		s.ROAS = value(c.ROAS)
		rows = append(rows, s)
	}
	for _, a := range r.AudienceSummary {
		s := row(KindAudience, a.Audience)
		s.ConversionRate = value(a.ConversionRate)
		s.EngagementRate = value(a.EngagementRate)
		s.CPC = value(a.CPC)
		s.Conversions = value(a.Conversions)
		rows = append(rows, s)
	}
	return rows
}

func value(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
