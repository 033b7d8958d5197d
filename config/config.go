package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	InputFile        string `env:"INPUT_FILE" envDefault:"datos_sinteticos.csv"`
	OutputDir        string `env:"OUTPUT_DIR" envDefault:"."`
	CampaignsImage   string `env:"CAMPAIGNS_IMAGE" envDefault:"analisis_campanas.png"`
	CorrelationImage string `env:"CORRELATION_IMAGE" envDefault:"analisis_correlacion_deep.png"`
	PanelWidth       int    `env:"PANEL_WIDTH" envDefault:"800"`
	PanelHeight      int    `env:"PANEL_HEIGHT" envDefault:"600"`
	PreviewRows      int    `env:"PREVIEW_ROWS" envDefault:"10"`
	HTMLReport       string `env:"HTML_REPORT"`

	Log Logger `envPrefix:"LOG_"`

	DbDsn    string `env:"DB_DSN"`
	TgToken  string `env:"TG_TOKEN"`
	TgChatID int64  `env:"TG_CHAT_ID"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PanelWidth <= 0 || cfg.PanelHeight <= 0 {
		return nil, fmt.Errorf("panel size must be positive, got %dx%d", cfg.PanelWidth, cfg.PanelHeight)
	}
	if cfg.PreviewRows < 0 {
		cfg.PreviewRows = 0
	}
	return cfg, nil
}

func (c *Config) CampaignsImagePath() string {
	return filepath.Join(c.OutputDir, c.CampaignsImage)
}

func (c *Config) CorrelationImagePath() string {
	return filepath.Join(c.OutputDir, c.CorrelationImage)
}

func (c *Config) StoreEnabled() bool {
	return c.DbDsn != ""
}

func (c *Config) NotifyEnabled() bool {
	return c.TgToken != "" && c.TgChatID != 0
}
