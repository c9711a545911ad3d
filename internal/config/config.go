package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Upload    UploadConfig    `yaml:"upload"`
	FFmpeg    FFmpegConfig    `yaml:"ffmpeg"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Retention RetentionConfig `yaml:"retention"`
	Paths     PathsConfig     `yaml:"paths"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type UploadConfig struct {
	MaxSizeMB          int64    `yaml:"max_size_mb"`
	MaxDurationSeconds float64  `yaml:"max_duration_seconds"`
	AllowedMIMETypes   []string `yaml:"allowed_mime_types"`
}

type FFmpegConfig struct {
	Binary        string `yaml:"binary"`
	ProbeBinary   string `yaml:"probe_binary"`
	AudioCodec    string `yaml:"audio_codec"`
	ThumbnailSize string `yaml:"thumbnail_size"`
}

type GeminiConfig struct {
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

type OpenAIConfig struct {
	TTSModel string `yaml:"tts_model"`
	Voice    string `yaml:"voice"`
}

type PipelineConfig struct {
	StageTimeoutSeconds int `yaml:"stage_timeout_seconds"`
}

type RetentionConfig struct {
	MaxAgeHours          int `yaml:"max_age_hours"`
	SweepIntervalMinutes int `yaml:"sweep_interval_minutes"`
}

type PathsConfig struct {
	Uploads      string `yaml:"uploads"`
	Thumbnails   string `yaml:"thumbnails"`
	Commentaries string `yaml:"commentaries"`
	Audio        string `yaml:"audio"`
	Results      string `yaml:"results"`
	Tmp          string `yaml:"tmp"`
	IndexDB      string `yaml:"index_db"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and validates configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Paths.Uploads == "" {
		return fmt.Errorf("paths.uploads is required")
	}
	if c.Paths.Results == "" {
		return fmt.Errorf("paths.results is required")
	}

	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Upload.MaxSizeMB == 0 {
		c.Upload.MaxSizeMB = 50
	}
	if c.Upload.MaxDurationSeconds == 0 {
		c.Upload.MaxDurationSeconds = 15.0
	}
	if len(c.Upload.AllowedMIMETypes) == 0 {
		c.Upload.AllowedMIMETypes = []string{
			"video/mp4",
			"video/quicktime",
			"video/x-msvideo",
			"video/x-ms-wmv",
		}
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.ProbeBinary == "" {
		c.FFmpeg.ProbeBinary = "ffprobe"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.ThumbnailSize == "" {
		c.FFmpeg.ThumbnailSize = "320x240"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.7
	}
	if c.OpenAI.TTSModel == "" {
		c.OpenAI.TTSModel = "tts-1"
	}
	if c.OpenAI.Voice == "" {
		c.OpenAI.Voice = "alloy"
	}
	if c.Pipeline.StageTimeoutSeconds == 0 {
		c.Pipeline.StageTimeoutSeconds = 120
	}
	if c.Retention.MaxAgeHours == 0 {
		c.Retention.MaxAgeHours = 24
	}
	if c.Retention.SweepIntervalMinutes == 0 {
		c.Retention.SweepIntervalMinutes = 10
	}
	if c.Paths.Thumbnails == "" {
		c.Paths.Thumbnails = "data/thumbnails"
	}
	if c.Paths.Commentaries == "" {
		c.Paths.Commentaries = "data/commentaries"
	}
	if c.Paths.Audio == "" {
		c.Paths.Audio = "data/audio"
	}
	if c.Paths.Tmp == "" {
		c.Paths.Tmp = "data/tmp"
	}
	if c.Paths.IndexDB == "" {
		c.Paths.IndexDB = "data/index.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// StageTimeout returns the per-stage external call bound.
func (c *Config) StageTimeout() time.Duration {
	return time.Duration(c.Pipeline.StageTimeoutSeconds) * time.Second
}

// RetentionMaxAge returns how long scratch files may live.
func (c *Config) RetentionMaxAge() time.Duration {
	return time.Duration(c.Retention.MaxAgeHours) * time.Hour
}

// RetentionSweepInterval returns how often the sweeper runs.
func (c *Config) RetentionSweepInterval() time.Duration {
	return time.Duration(c.Retention.SweepIntervalMinutes) * time.Minute
}

// MaxSizeBytes returns the upload size cap in bytes.
func (c *Config) MaxSizeBytes() int64 {
	return c.Upload.MaxSizeMB * 1024 * 1024
}

// GeminiAPIKey resolves the Gemini credential from the environment.
func GeminiAPIKey() string {
	return firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY"))
}

// OpenAIAPIKey resolves the OpenAI credential from the environment.
func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func firstNonEmpty(v ...string) string {
	for _, s := range v {
		if s != "" {
			return s
		}
	}
	return ""
}
