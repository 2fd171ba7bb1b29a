package config

import (
	"log"
	"os"
	"time"
	_ "time/tzdata" // containers often ship without zoneinfo

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone     = "UTC"
	defaultOverallGoal  = 1000
	defaultGeneratorRow = 850

	configPathEnv    = "SURVEY_MONITOR_CONFIG"
	sheetIDEnv       = "SHEET_ID"
	sheetNameEnv     = "SHEET_NAME"
	geminiAPIKeyEnv  = "GEMINI_API_KEY"
	legacyAPIKeyEnv  = "API_KEY"
	openAIAPIKeyEnv  = "OPENAI_API_KEY"
	analysisProvEnv  = "ANALYSIS_PROVIDER"
	analysisModelEnv = "ANALYSIS_MODEL"
	logLevelEnv      = "LOG_LEVEL"
	serverAddrEnv    = "SERVER_ADDR"
	refreshCronEnv   = "REFRESH_CRON"
)

// PlaceholderSheetID is the value shipped in sample configs; it disables live fetching.
const PlaceholderSheetID = "YOUR_PUBLIC_GOOGLE_SHEET_ID_HERE"

// Analysis providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Sheet export formats.
const (
	SheetFormatGviz = "gviz"
	SheetFormatHTML = "pubhtml"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Sheet     SheetConfig     `yaml:"sheet"`
	Refresh   RefreshConfig   `yaml:"refresh"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Generator GeneratorConfig `yaml:"generator"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig describes the dashboard HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// SheetConfig points at the published spreadsheet holding submissions.
type SheetConfig struct {
	ID      string        `yaml:"id"`
	Name    string        `yaml:"name"`
	Format  string        `yaml:"format"`
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// Configured reports whether a real sheet id is set.
func (s SheetConfig) Configured() bool {
	return s.ID != "" && s.ID != PlaceholderSheetID
}

// RefreshConfig defines when the dashboard recomputes.
type RefreshConfig struct {
	CronExpression string `yaml:"cronExpression"`
}

// DashboardConfig holds aggregation parameters.
type DashboardConfig struct {
	OverallTarget int            `yaml:"overallTarget"`
	Timezone      string         `yaml:"timezone"`
	location      *time.Location `yaml:"-"`
}

// Location resolves the sheet timezone string to a time.Location.
func (d DashboardConfig) Location() *time.Location {
	if d.location != nil {
		return d.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// AnalysisConfig defines how to contact the language-model API.
type AnalysisConfig struct {
	Provider     string `yaml:"provider"`
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// GeneratorConfig shapes the fallback dataset.
type GeneratorConfig struct {
	Rows int    `yaml:"rows"`
	Seed uint64 `yaml:"seed"`
}

// Load reads .env and YAML configuration (if present) and applies environment overrides.
func Load() Config {
	// Existing environment variables win over .env entries.
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			fileCfg, err := Parse(raw)
			if err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// Parse decodes a YAML document into a Config without defaults applied.
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(sheetIDEnv); v != "" {
		c.Sheet.ID = v
	}

	if v := os.Getenv(sheetNameEnv); v != "" {
		c.Sheet.Name = v
	}

	if v := os.Getenv(refreshCronEnv); v != "" {
		c.Refresh.CronExpression = v
	}

	if v := os.Getenv(analysisProvEnv); v != "" {
		c.Analysis.Provider = v
	}

	if v := os.Getenv(analysisModelEnv); v != "" {
		c.Analysis.Model = v
	}

	switch c.Analysis.Provider {
	case ProviderOpenAI:
		if v := os.Getenv(openAIAPIKeyEnv); v != "" {
			c.Analysis.APIKey = v
		}
	default:
		if v := os.Getenv(legacyAPIKeyEnv); v != "" {
			c.Analysis.APIKey = v
		}
		if v := os.Getenv(geminiAPIKeyEnv); v != "" {
			c.Analysis.APIKey = v
		}
	}
}

func (c *Config) bindTimezone() {
	tz := c.Dashboard.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Dashboard.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}

	if override.Sheet.ID != "" {
		base.Sheet.ID = override.Sheet.ID
	}
	if override.Sheet.Name != "" {
		base.Sheet.Name = override.Sheet.Name
	}
	if override.Sheet.Format != "" {
		base.Sheet.Format = override.Sheet.Format
	}
	if override.Sheet.BaseURL != "" {
		base.Sheet.BaseURL = override.Sheet.BaseURL
	}
	if override.Sheet.Timeout > 0 {
		base.Sheet.Timeout = override.Sheet.Timeout
	}

	if override.Refresh.CronExpression != "" {
		base.Refresh.CronExpression = override.Refresh.CronExpression
	}

	if override.Dashboard.OverallTarget > 0 {
		base.Dashboard.OverallTarget = override.Dashboard.OverallTarget
	}
	if override.Dashboard.Timezone != "" {
		base.Dashboard.Timezone = override.Dashboard.Timezone
	}

	if override.Analysis.Provider != "" {
		base.Analysis.Provider = override.Analysis.Provider
	}
	if override.Analysis.Endpoint != "" {
		base.Analysis.Endpoint = override.Analysis.Endpoint
	}
	if override.Analysis.Model != "" {
		base.Analysis.Model = override.Analysis.Model
	}
	if override.Analysis.APIKey != "" {
		base.Analysis.APIKey = override.Analysis.APIKey
	}
	if override.Analysis.SystemPrompt != "" {
		base.Analysis.SystemPrompt = override.Analysis.SystemPrompt
	}

	if override.Generator.Rows > 0 {
		base.Generator.Rows = override.Generator.Rows
	}
	if override.Generator.Seed != 0 {
		base.Generator.Seed = override.Generator.Seed
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Server:  ServerConfig{Addr: ":8080"},
		Sheet: SheetConfig{
			ID:      PlaceholderSheetID,
			Name:    "Data",
			Format:  SheetFormatGviz,
			BaseURL: "https://docs.google.com/spreadsheets/d",
			Timeout: 20 * time.Second,
		},
		// Matches the five-minute staleness window of the dashboard.
		Refresh:   RefreshConfig{CronExpression: "*/5 * * * *"},
		Dashboard: DashboardConfig{OverallTarget: defaultOverallGoal, Timezone: defaultTimezone, location: tz},
		Analysis: AnalysisConfig{
			Provider:     ProviderGemini,
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			SystemPrompt: "You are an AI data analyst for the OGSTEP Impact Survey.",
		},
		Generator: GeneratorConfig{Rows: defaultGeneratorRow},
	}
}
