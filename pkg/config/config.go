package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Watch struct {
		Entities       []string `yaml:"entities" json:"entities" jsonschema:"required,description=Watched entities (search keywords)"`
		BlockedTerms   []string `yaml:"blocked_terms" json:"blocked_terms" jsonschema:"description=Candidates whose title contains any of these terms are dropped"`
		BlockedOrigins []string `yaml:"blocked_origins" json:"blocked_origins" jsonschema:"description=Candidates whose url contains any of these origins are dropped"`
		PerEntityCap   int      `yaml:"per_entity_cap" json:"per_entity_cap" jsonschema:"default=2,minimum=1,maximum=10,description=Max candidates taken per entity per run"`
	} `yaml:"watch" json:"watch" jsonschema:"description=Watch list configuration"`

	Search SearchConfig `yaml:"search" json:"search" jsonschema:"description=Discovery source configuration"`

	Extract ExtractConfig `yaml:"extract" json:"extract" jsonschema:"description=Content extraction configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for article summarization"`

	Telegram TelegramConfig `yaml:"telegram" json:"telegram" jsonschema:"description=Telegram delivery configuration"`

	Pacing struct {
		SummaryCooldown time.Duration `yaml:"summary_cooldown" json:"summary_cooldown" jsonschema:"default=5s,description=Minimum delay between summarization calls"`
		NotifyCooldown  time.Duration `yaml:"notify_cooldown" json:"notify_cooldown" jsonschema:"default=1s,description=Minimum delay between notification sends"`
	} `yaml:"pacing" json:"pacing" jsonschema:"description=External call pacing"`

	Store StoreConfig `yaml:"store" json:"store" jsonschema:"description=Dedup store configuration"`

	Schedule struct {
		Interval time.Duration `yaml:"interval" json:"interval" jsonschema:"default=30m,description=Pipeline run interval in daemon mode"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Server struct {
		Enabled bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable status HTTP server in daemon mode"`
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Status server configuration"`
}

// SearchConfig holds discovery source settings. The url template and item
// selector are configuration because news-search markup drifts over time.
type SearchConfig struct {
	URLTemplate  string        `yaml:"url_template" json:"url_template" jsonschema:"description=Search url template with %s for the query"`
	ItemSelector string        `yaml:"item_selector" json:"item_selector" jsonschema:"default=a.news_tit,description=CSS selector matching title/link anchors on the result page"`
	RSSTemplate  string        `yaml:"rss_template" json:"rss_template" jsonschema:"description=Optional RSS url template with %s for the query; switches discovery to RSS"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Search request timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=newswatch/1.0,description=User agent for search requests"`
}

// ExtractConfig holds content extraction settings
type ExtractConfig struct {
	CharCap   int           `yaml:"char_cap" json:"char_cap" jsonschema:"default=2500,description=Max characters of extracted text kept for summarization"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Extraction timeout per article"`
	Selectors []string      `yaml:"selectors" json:"selectors" jsonschema:"description=Priority list of article-body container selectors"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=newswatch/1.0,description=User agent for article requests"`
}

// LLMConfig holds LLM configuration for summarization. Missing endpoint and
// api key degrade to placeholder summaries, they never fail the pipeline.
type LLMConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=300,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	MinContent  int           `yaml:"min_content" json:"min_content" jsonschema:"default=100,description=Minimum content length worth a summarization call"`
}

// TelegramConfig holds delivery settings, token and chat id are required
type TelegramConfig struct {
	Token   string        `yaml:"token" json:"token" jsonschema:"required,description=Bot token (can use environment variable)"`
	ChatID  string        `yaml:"chat_id" json:"chat_id" jsonschema:"required,description=Destination chat identifier"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Send request timeout"`
}

// StoreConfig holds dedup store settings
type StoreConfig struct {
	Type string `yaml:"type" json:"type" jsonschema:"default=file,enum=file,enum=sqlite,description=Dedup store backend"`
	Path string `yaml:"path" json:"path" jsonschema:"default=sent_news.csv,description=History file path for the file backend"`
	DSN  string `yaml:"dsn" json:"dsn" jsonschema:"description=SQLite DSN for the sqlite backend"`
}

// default selectors cover article containers observed across Naver-indexed
// outlets, markup churn is expected and handled via configuration
var defaultSelectors = []string{".article_body", ".art_body", ".news_con", ".article_view"}

const defaultSearchURL = "https://search.naver.com/search.naver?where=news&query=%s&sort=1"

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables, used for secrets
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Watch.PerEntityCap == 0 {
		cfg.Watch.PerEntityCap = 2
	}

	if cfg.Search.URLTemplate == "" {
		cfg.Search.URLTemplate = defaultSearchURL
	}
	if cfg.Search.ItemSelector == "" {
		cfg.Search.ItemSelector = "a.news_tit"
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 15 * time.Second
	}
	if cfg.Search.UserAgent == "" {
		cfg.Search.UserAgent = "newswatch/1.0"
	}

	if cfg.Extract.CharCap == 0 {
		cfg.Extract.CharCap = 2500
	}
	if cfg.Extract.Timeout == 0 {
		cfg.Extract.Timeout = 20 * time.Second
	}
	if len(cfg.Extract.Selectors) == 0 {
		cfg.Extract.Selectors = defaultSelectors
	}
	if cfg.Extract.UserAgent == "" {
		cfg.Extract.UserAgent = cfg.Search.UserAgent
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 300
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}
	if cfg.LLM.MinContent == 0 {
		cfg.LLM.MinContent = 100
	}

	if cfg.Telegram.Timeout == 0 {
		cfg.Telegram.Timeout = 10 * time.Second
	}

	if cfg.Pacing.SummaryCooldown == 0 {
		cfg.Pacing.SummaryCooldown = 5 * time.Second
	}
	if cfg.Pacing.NotifyCooldown == 0 {
		cfg.Pacing.NotifyCooldown = time.Second
	}

	if cfg.Store.Type == "" {
		cfg.Store.Type = "file"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "sent_news.csv"
	}

	if cfg.Schedule.Interval == 0 {
		cfg.Schedule.Interval = 30 * time.Minute
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if len(cfg.Watch.Entities) == 0 {
		return fmt.Errorf("watch.entities is required")
	}
	if cfg.Watch.PerEntityCap < 1 || cfg.Watch.PerEntityCap > 10 {
		return fmt.Errorf("watch.per_entity_cap must be between 1 and 10")
	}

	// delivery is the whole point, a missing destination is the only fatal
	// configuration error; missing LLM credentials merely degrade summaries
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}
	if cfg.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.MinContent < 0 {
		return fmt.Errorf("llm.min_content must be non-negative")
	}

	if cfg.Extract.CharCap < 100 {
		return fmt.Errorf("extract.char_cap must be at least 100")
	}

	if cfg.Store.Type != "file" && cfg.Store.Type != "sqlite" {
		return fmt.Errorf("store.type must be file or sqlite")
	}
	if cfg.Store.Type == "sqlite" && cfg.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required for sqlite store")
	}

	if cfg.Server.Enabled && cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// LLMConfigured reports whether a summarization backend is set up
func (c *Config) LLMConfigured() bool {
	return c.LLM.Endpoint != "" || c.LLM.APIKey != ""
}
