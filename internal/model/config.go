package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete claimcheck configuration.
// Field tags serve both viper (mapstructure) and `config show` (yaml).
type Config struct {
	LLM          LLMConfig       `yaml:"llm" mapstructure:"llm"`
	HTTP         HTTPConfig      `yaml:"http" mapstructure:"http"`
	Search       SearchConfig    `yaml:"search" mapstructure:"search"`
	Pipeline     PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Cache        CacheConfig     `yaml:"cache" mapstructure:"cache"`
	RateLimiting RateLimitConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Relay        RelayConfig     `yaml:"relay" mapstructure:"relay"`
	Authority    AuthorityConfig `yaml:"authority" mapstructure:"authority"`
	Logging      LoggingConfig   `yaml:"logging" mapstructure:"logging"`
	Output       OutputConfig    `yaml:"output" mapstructure:"output"`
}

// LLMConfig selects the language model backend
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // ollama, openai, anthropic
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// HTTPConfig applies to every outbound HTTP client
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent  string        `yaml:"user_agent" mapstructure:"user_agent"`
	HTTPProxy  string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// SearchConfig configures the evidence source adapters
type SearchConfig struct {
	Wikipedia WikipediaConfig `yaml:"wikipedia" mapstructure:"wikipedia"`
	Web       WebConfig       `yaml:"web" mapstructure:"web"`
}

// WikipediaConfig configures the encyclopedia adapter
type WikipediaConfig struct {
	Lang        string `yaml:"lang" mapstructure:"lang"`
	BaseURL     string `yaml:"base_url,omitempty" mapstructure:"base_url"` // Overrides https://<lang>.wikipedia.org
	Limit       int    `yaml:"limit" mapstructure:"limit"`
	MaxKeywords int    `yaml:"max_keywords" mapstructure:"max_keywords"`
}

// WebConfig configures the web adapter's strategy chain
type WebConfig struct {
	RelayURL         string        `yaml:"relay_url" mapstructure:"relay_url"`
	RelayTimeout     time.Duration `yaml:"relay_timeout" mapstructure:"relay_timeout"`
	InstantAnswerURL string        `yaml:"instant_answer_url" mapstructure:"instant_answer_url"`
	Limit            int           `yaml:"limit" mapstructure:"limit"`
}

// PipelineConfig tunes the sequential pipeline pacing
type PipelineConfig struct {
	ChunkDelay     time.Duration `yaml:"chunk_delay" mapstructure:"chunk_delay"`
	ClaimPause     time.Duration `yaml:"claim_pause" mapstructure:"claim_pause"`
	PublishWorkers int           `yaml:"publish_workers" mapstructure:"publish_workers"`
	Language       string        `yaml:"language" mapstructure:"language"` // Reconciler marker language: en, ru, all
}

// CacheConfig configures search result caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskDir   string        `yaml:"disk_dir" mapstructure:"disk_dir"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RateLimitConfig configures per-host request pacing
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`

	// Hosts overrides requests_per_second for specific hosts
	Hosts map[string]float64 `yaml:"hosts,omitempty" mapstructure:"hosts"`
}

// RelayConfig configures the web search relay service
type RelayConfig struct {
	Listen        string        `yaml:"listen" mapstructure:"listen"`
	Command       string        `yaml:"command,omitempty" mapstructure:"command"` // External search utility; empty uses the built-in scraper
	Args          []string      `yaml:"args,omitempty" mapstructure:"args"`
	Limit         int           `yaml:"limit" mapstructure:"limit"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	NoCache       bool          `yaml:"no_cache" mapstructure:"no_cache"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	ScraperURL    string        `yaml:"scraper_url" mapstructure:"scraper_url"`
}

// AuthorityConfig holds the domain lists of the source classifier
type AuthorityConfig struct {
	PrimaryDomains   []string `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	PrimarySuffixes  []string `yaml:"primary_suffixes" mapstructure:"primary_suffixes"`
}

// LoggingConfig configures slog
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json" mapstructure:"json"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "ollama",
			Model:     "gemma3n:e4b",
			Timeout:   120,
			MaxTokens: 2048,
		},
		HTTP: HTTPConfig{
			Timeout:   15 * time.Second,
			UserAgent: "claimcheck/0.1 (+https://github.com/ppiankov/claimcheck)",
		},
		Search: SearchConfig{
			Wikipedia: WikipediaConfig{
				Lang:        "en",
				Limit:       3,
				MaxKeywords: 5,
			},
			Web: WebConfig{
				RelayURL:         "http://localhost:3001",
				RelayTimeout:     30 * time.Second,
				InstantAnswerURL: "https://api.duckduckgo.com/",
				Limit:            3,
			},
		},
		Pipeline: PipelineConfig{
			ChunkDelay:     100 * time.Millisecond,
			ClaimPause:     time.Second,
			PublishWorkers: 4,
			Language:       "all",
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskDir:   defaultCacheDir(),
			DiskTTL:   24 * time.Hour,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         2,
		},
		Relay: RelayConfig{
			Listen:        ":3001",
			Limit:         5,
			Timeout:       30 * time.Second,
			RespectRobots: true,
			ScraperURL:    "https://duckduckgo.com",
		},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"legislation.gov.uk", "eur-lex.europa.eu", "congress.gov",
				"who.int", "un.org", "nature.com", "science.org",
			},
			SecondaryDomains: []string{
				"wikipedia.org", "britannica.com", "reuters.com", "apnews.com",
				"bbc.co.uk", "bbc.com", "nytimes.com", "theguardian.com",
			},
			PrimarySuffixes: []string{".gov", ".edu", ".mil", ".int"},
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "claimcheck")
	}
	return filepath.Join(dir, "claimcheck")
}
