package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// TwitterConfig holds the four application secrets plus an optional app-only bearer token.
// Requests use app-only auth: the bearer token, or one exchanged for the consumer
// key and secret. AccessToken and AccessTokenSecret are accepted but unused, since
// user-context (OAuth1) signing is not implemented.
type TwitterConfig struct {
	ConsumerKey       string `toml:"consumer_key"`
	ConsumerSecret    string `toml:"consumer_secret"`
	AccessToken       string `toml:"access_token"`
	AccessTokenSecret string `toml:"access_token_secret"`
	BearerToken       string `toml:"bearer_token"`
	BaseURL           string `toml:"base_url" validate:"omitempty,url"`
	TokenURL          string `toml:"token_url" validate:"omitempty,url"`
}

// FetchConfig controls the retry loop. max_tries = 0 means the default of 5, since
// at least one attempt is always made; cooldown = "0s" disables the pause.
type FetchConfig struct {
	MaxTries    int       `toml:"max_tries" validate:"min=1"`
	Cooldown    *Duration `toml:"cooldown"`
	MinInterval Duration `toml:"min_interval"`
	Timeout     Duration `toml:"timeout"`
	Resource    string   `toml:"resource" validate:"required"`
	PageSize    int      `toml:"page_size" validate:"min=1,max=200"`
	IDField     string   `toml:"id_field" validate:"required"`
}

type CohortConfig struct {
	Label  string `toml:"label" validate:"required"`
	Name   string `toml:"name" validate:"required"`
	Plural string `toml:"plural"`
	Color  string `toml:"color"`
}

type AnalysisConfig struct {
	TopK        int    `toml:"top_k" validate:"min=1"`
	ConsoleTopK int    `toml:"console_top_k" validate:"min=1"`
	BridgeFrom  string `toml:"bridge_from"`
	BridgeTo    string `toml:"bridge_to"`
	Community   string `toml:"community" validate:"oneof=lpa components"`
}

type GraphConfig struct {
	Threshold      *int   `toml:"threshold" validate:"required,min=0"`
	LabelThreshold *int   `toml:"label_threshold" validate:"required,min=0"`
	NeutralColor   string `toml:"neutral_color"`
}

type OutputConfig struct {
	JSONPath string `toml:"json_path" validate:"required"`
	DOTPath  string `toml:"dot_path"`
}

type CacheConfig struct {
	RedisAddr string   `toml:"redis_addr"`
	Password  string   `toml:"password"`
	DB        int      `toml:"db"`
	TTL       Duration `toml:"ttl"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	Format string `toml:"format" validate:"oneof=json console"`
}

type Config struct {
	Twitter  TwitterConfig  `toml:"twitter"`
	Fetch    FetchConfig    `toml:"fetch"`
	Cohorts  []CohortConfig `toml:"cohorts" validate:"min=1,dive"`
	Analysis AnalysisConfig `toml:"analysis"`
	Graph    GraphConfig    `toml:"graph"`
	Output   OutputConfig   `toml:"output"`
	Cache    CacheConfig    `toml:"cache"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// Duration lets TOML carry Go duration strings such as "900s" or "15m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the settings used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a TOML file, fills unset fields with defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyDefaults()
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Fetch.MaxTries == 0 {
		c.Fetch.MaxTries = 5
	}
	if c.Fetch.Cooldown == nil {
		c.Fetch.Cooldown = &Duration{900 * time.Second}
	}
	if c.Fetch.Timeout.Duration == 0 {
		c.Fetch.Timeout.Duration = 30 * time.Second
	}
	if c.Fetch.Resource == "" {
		c.Fetch.Resource = "friends/list"
	}
	if c.Fetch.PageSize == 0 {
		c.Fetch.PageSize = 200
	}
	if c.Fetch.IDField == "" {
		c.Fetch.IDField = "screen_name"
	}

	if len(c.Cohorts) == 0 {
		c.Cohorts = []CohortConfig{
			{Label: "R", Name: "republican", Color: "red"},
			{Label: "D", Name: "democrat", Color: "blue"},
		}
	}
	for i := range c.Cohorts {
		if c.Cohorts[i].Plural == "" {
			c.Cohorts[i].Plural = c.Cohorts[i].Name + "s"
		}
	}

	if c.Analysis.TopK == 0 {
		c.Analysis.TopK = 10
	}
	if c.Analysis.ConsoleTopK == 0 {
		c.Analysis.ConsoleTopK = 5
	}
	// Bridge scores need two cohorts; with one, the pair stays unset unless given.
	if len(c.Cohorts) > 1 {
		if c.Analysis.BridgeFrom == "" {
			c.Analysis.BridgeFrom = c.Cohorts[0].Label
		}
		if c.Analysis.BridgeTo == "" {
			c.Analysis.BridgeTo = c.Cohorts[1].Label
		}
	}
	if c.Analysis.Community == "" {
		c.Analysis.Community = "lpa"
	}

	if c.Graph.Threshold == nil {
		c.Graph.Threshold = intPtr(1)
	}
	if c.Graph.LabelThreshold == nil {
		c.Graph.LabelThreshold = intPtr(3)
	}
	if c.Graph.NeutralColor == "" {
		c.Graph.NeutralColor = "white"
	}

	if c.Output.JSONPath == "" {
		c.Output.JSONPath = "output.txt"
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = 24 * time.Hour
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// ApplyEnv overrides file settings with environment variables when they are set.
func (c *Config) ApplyEnv() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	override(&c.Twitter.ConsumerKey, "TWITTER_CONSUMER_KEY")
	override(&c.Twitter.ConsumerSecret, "TWITTER_CONSUMER_SECRET")
	override(&c.Twitter.AccessToken, "TWITTER_ACCESS_TOKEN")
	override(&c.Twitter.AccessTokenSecret, "TWITTER_ACCESS_TOKEN_SECRET")
	override(&c.Twitter.BearerToken, "TWITTER_BEARER_TOKEN")
	override(&c.Memgraph.URI, "MEMGRAPH_URI")
	override(&c.Memgraph.User, "MEMGRAPH_USER")
	override(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	override(&c.Cache.RedisAddr, "REDIS_ADDR")
	override(&c.Server.Port, "PORT")
	override(&c.Log.Level, "LOG_LEVEL")

	if v := os.Getenv("FETCH_MAX_TRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Fetch.MaxTries = n
		}
	}
	if v := os.Getenv("FETCH_COOLDOWN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Fetch.Cooldown = &Duration{d}
		}
	}
}

func intPtr(v int) *int {
	return &v
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	labels := make(map[string]bool, len(c.Cohorts))
	for _, co := range c.Cohorts {
		if labels[co.Label] {
			return fmt.Errorf("invalid config: duplicate cohort label %q", co.Label)
		}
		labels[co.Label] = true
	}
	if c.Analysis.BridgeFrom == "" && c.Analysis.BridgeTo == "" {
		return nil
	}
	if c.Analysis.BridgeFrom == "" || c.Analysis.BridgeTo == "" {
		return fmt.Errorf("invalid config: bridge_from and bridge_to must be set together")
	}
	if !labels[c.Analysis.BridgeFrom] {
		return fmt.Errorf("invalid config: bridge_from %q is not a configured cohort", c.Analysis.BridgeFrom)
	}
	if !labels[c.Analysis.BridgeTo] {
		return fmt.Errorf("invalid config: bridge_to %q is not a configured cohort", c.Analysis.BridgeTo)
	}
	return nil
}

func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Namespace())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid URL", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
