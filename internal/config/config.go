// Package config holds all icondex configuration: Gemini credentials,
// the target icon library tag, pipeline pacing, and the Postgres sink.
// Values come from an optional YAML file with environment overrides
// applied on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all icondex configuration.
type Config struct {
	GenAI    GenAIConfig    `yaml:"genai"`
	Library  string         `yaml:"library"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Database DatabaseConfig `yaml:"database"`
}

// GenAIConfig configures the Gemini generation and embedding models.
type GenAIConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	EmbeddingModel string `yaml:"embedding_model"`
	TaskType       string `yaml:"task_type"`
}

// PipelineConfig configures batch pacing and artifact sizes.
type PipelineConfig struct {
	DatasetPath string `yaml:"dataset_path"`
	IconDelay   string `yaml:"icon_delay"`  // pause between icons during generation
	BatchSize   int    `yaml:"batch_size"`  // bulk-load batch size
	BatchDelay  string `yaml:"batch_delay"` // pause between bulk-load batches
	RasterSize  int    `yaml:"raster_size"` // on-disk PNG artifact square
	PreviewSize int    `yaml:"preview_size"`
}

// DatabaseConfig configures the Postgres connection. Host, Name, User and
// Password are required for the load command; Port defaults to 5432.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		GenAI: GenAIConfig{
			Model:          "gemini-2.0-flash",
			EmbeddingModel: "gemini-embedding-001",
			TaskType:       "SEMANTIC_SIMILARITY",
		},
		Pipeline: PipelineConfig{
			DatasetPath: "dataset.json",
			IconDelay:   "1s",
			BatchSize:   50,
			BatchDelay:  "1s",
			RasterSize:  512,
			PreviewSize: 128,
		},
		Database: DatabaseConfig{
			Port:    5432,
			SSLMode: "require",
		},
	}
}

// Load reads configuration from a YAML file (if path is non-empty) and
// applies environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.GenAI.APIKey = key
	}
	if model := os.Getenv("ICONDEX_MODEL"); model != "" {
		c.GenAI.Model = model
	}
	if model := os.Getenv("ICONDEX_EMBEDDING_MODEL"); model != "" {
		c.GenAI.EmbeddingModel = model
	}
	if lib := os.Getenv("ICONDEX_LIBRARY"); lib != "" {
		c.Library = lib
	}
	if path := os.Getenv("ICONDEX_DATASET"); path != "" {
		c.Pipeline.DatasetPath = path
	}
	if v := os.Getenv("ICONDEX_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Pipeline.BatchSize = n
		}
	}
	if v := os.Getenv("ICONDEX_BATCH_DELAY"); v != "" {
		c.Pipeline.BatchDelay = v
	}
	if v := os.Getenv("ICONDEX_ICON_DELAY"); v != "" {
		c.Pipeline.IconDelay = v
	}

	if host := os.Getenv("ICONDEX_DB_HOST"); host != "" {
		c.Database.Host = host
	}
	if v := os.Getenv("ICONDEX_DB_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Database.Port = n
		}
	}
	if name := os.Getenv("ICONDEX_DB_NAME"); name != "" {
		c.Database.Name = name
	}
	if user := os.Getenv("ICONDEX_DB_USER"); user != "" {
		c.Database.User = user
	}
	if pw := os.Getenv("ICONDEX_DB_PASSWORD"); pw != "" {
		c.Database.Password = pw
	}
	if mode := os.Getenv("ICONDEX_DB_SSLMODE"); mode != "" {
		c.Database.SSLMode = mode
	}
}

// ValidateGenerate checks everything the generate pipeline needs.
func (c *Config) ValidateGenerate() error {
	var missing []string
	if c.GenAI.APIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.Library == "" {
		missing = append(missing, "ICONDEX_LIBRARY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateLoad checks everything the bulk loader needs. All four connection
// parameters are required; there is no usable default for any of them.
func (c *Config) ValidateLoad() error {
	var missing []string
	if c.Database.Host == "" {
		missing = append(missing, "ICONDEX_DB_HOST")
	}
	if c.Database.Name == "" {
		missing = append(missing, "ICONDEX_DB_NAME")
	}
	if c.Database.User == "" {
		missing = append(missing, "ICONDEX_DB_USER")
	}
	if c.Database.Password == "" {
		missing = append(missing, "ICONDEX_DB_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DSN builds the Postgres connection string.
func (c *DatabaseConfig) DSN() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "require"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslmode)
}

// IconDelayDuration returns the inter-icon pause as a duration.
func (c *PipelineConfig) IconDelayDuration() time.Duration {
	d, err := time.ParseDuration(c.IconDelay)
	if err != nil {
		return time.Second
	}
	return d
}

// BatchDelayDuration returns the inter-batch pause as a duration.
func (c *PipelineConfig) BatchDelayDuration() time.Duration {
	d, err := time.ParseDuration(c.BatchDelay)
	if err != nil {
		return time.Second
	}
	return d
}
