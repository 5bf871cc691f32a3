package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Loyalty tunes the points conversion and tier threshold bands.
	Loyalty *LoyaltyConfig `json:"loyalty" yaml:"loyalty"`

	// DocStore configures the persistence collaborator.
	DocStore *DocStoreConfig `json:"docstore" yaml:"docstore"`

	// Ranking configures the semantic ranking collaborator.
	Ranking *RankingConfig `json:"ranking" yaml:"ranking"`

	// PubSub configures low-stock signal publishing.
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Submit tunes the per-order pipeline (timeouts, retry budget).
	Submit *SubmitConfig `json:"submit" yaml:"submit"`

	// Simulation tunes the bulk simulation driver.
	Simulation *SimulationConfig `json:"simulation" yaml:"simulation"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoyaltyConfig defines the points conversion rate and tier threshold bands.
// Thresholds are whole currency units of lifetime spend.
type LoyaltyConfig struct {
	// PointsPerUnit is the number of points earned per whole currency unit spent.
	PointsPerUnit int64 `json:"pointsPerUnit" yaml:"pointsPerUnit"`

	// BeeFanThreshold is the lifetime spend at which a customer becomes a BeeFan.
	BeeFanThreshold int64 `json:"beeFanThreshold" yaml:"beeFanThreshold"`

	// BeeEliteThreshold is the lifetime spend at which a customer becomes a BeeElite.
	BeeEliteThreshold int64 `json:"beeEliteThreshold" yaml:"beeEliteThreshold"`
}

// DocStoreConfig defines configuration for the document store collaborator.
type DocStoreConfig struct {
	// Provider type: "memory" for the in-process engine or "http" for a
	// search-store REST endpoint.
	Provider string `json:"provider" yaml:"provider"`

	// Endpoint of the HTTP store (for http provider).
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// APIKey sent as an Authorization header (for http provider).
	APIKey string `json:"apiKey" yaml:"apiKey"`

	// Timeout bounds a single store round trip.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// RankingConfig defines configuration for the ranking collaborator.
type RankingConfig struct {
	// Provider type: "lexical" for the in-process fallback ranker or "http"
	// for an external semantic ranking service.
	Provider string `json:"provider" yaml:"provider"`

	// Endpoint of the ranking service (for http provider).
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Timeout bounds a single ranking round trip.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PubSubConfig defines Pub/Sub configuration for low-stock signal publishing.
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub.
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider).
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider).
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider).
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// SubmitConfig tunes the visibility coordinator.
type SubmitConfig struct {
	// StoreTimeout bounds each persistence step of a submit call.
	StoreTimeout time.Duration `json:"storeTimeout" yaml:"storeTimeout"`

	// RetryInitialInterval is the first backoff interval for transient
	// document-store failures.
	RetryInitialInterval time.Duration `json:"retryInitialInterval" yaml:"retryInitialInterval"`

	// RetryMaxElapsed caps the total time spent retrying one step.
	RetryMaxElapsed time.Duration `json:"retryMaxElapsed" yaml:"retryMaxElapsed"`
}

// SimulationConfig tunes the bulk simulation driver.
type SimulationConfig struct {
	// FanOut is the maximum number of orders dispatched concurrently.
	FanOut int `json:"fanOut" yaml:"fanOut"`

	// RushOrders is the batch size of the built-in lunch-rush scenario.
	RushOrders int `json:"rushOrders" yaml:"rushOrders"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: DOCSTORE_APIKEY -> docstore.apiKey (not docstore.apikey)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	return cfg, nil
}

// ApplyDefaults fills unset policy blocks so components never nil-check config.
func (c *Config) ApplyDefaults() {
	if c.Loyalty == nil {
		c.Loyalty = &LoyaltyConfig{}
	}
	if c.Loyalty.PointsPerUnit <= 0 {
		c.Loyalty.PointsPerUnit = 1
	}
	if c.Loyalty.BeeFanThreshold <= 0 {
		c.Loyalty.BeeFanThreshold = 2000
	}
	if c.Loyalty.BeeEliteThreshold <= 0 {
		c.Loyalty.BeeEliteThreshold = 10000
	}
	if c.DocStore == nil {
		c.DocStore = &DocStoreConfig{Provider: "memory"}
	}
	if c.DocStore.Timeout <= 0 {
		c.DocStore.Timeout = 5 * time.Second
	}
	if c.Ranking == nil {
		c.Ranking = &RankingConfig{Provider: "lexical"}
	}
	if c.Ranking.Timeout <= 0 {
		c.Ranking.Timeout = 3 * time.Second
	}
	if c.Submit == nil {
		c.Submit = &SubmitConfig{}
	}
	if c.Submit.StoreTimeout <= 0 {
		c.Submit.StoreTimeout = 2 * time.Second
	}
	if c.Submit.RetryInitialInterval <= 0 {
		c.Submit.RetryInitialInterval = 50 * time.Millisecond
	}
	if c.Submit.RetryMaxElapsed <= 0 {
		c.Submit.RetryMaxElapsed = 2 * time.Second
	}
	if c.Simulation == nil {
		c.Simulation = &SimulationConfig{}
	}
	if c.Simulation.FanOut <= 0 {
		c.Simulation.FanOut = 8
	}
	if c.Simulation.RushOrders <= 0 {
		c.Simulation.RushOrders = 25
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
