package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultProjectionDays is how far ahead the upcoming view looks unless configured
const DefaultProjectionDays = 30

type Config struct {
	// Currency is the ISO 4217 code used for display. Empty means detect from the system locale.
	Currency string `yaml:"currency,omitempty"`

	// ProjectionDays is the default window of the upcoming view
	ProjectionDays int `yaml:"projection_days,omitempty"`

	// Store is the path of the subscriptions file. Empty means DefaultStorePath.
	Store string `yaml:"store,omitempty"`

	// FrequencyFilter limits the upcoming view to one frequency ("all" or empty for everything)
	FrequencyFilter string `yaml:"frequency_filter,omitempty"`

	// Descriptions maps subscription names to custom descriptions
	Descriptions map[string]string `yaml:"descriptions,omitempty"`

	// Tags maps subscription names to a list of tags (e.g., "entertainment", "utilities")
	Tags map[string][]string `yaml:"tags,omitempty"`

	// Exclude is a list of regex patterns; matching subscriptions are left out of projections
	Exclude []string `yaml:"exclude,omitempty"`

	// compiled exclude patterns (not serialized)
	excludePatterns []*regexp.Regexp `yaml:"-"`
}

// DefaultConfigPath returns the default config file path (~/.subscription-tracker/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".subscription-tracker", "config.yaml")
}

// NewDefaultConfig creates a config for when no config file exists
func NewDefaultConfig() *Config {
	return &Config{ProjectionDays: DefaultProjectionDays}
}

// LoadConfig reads the config at path. A missing file yields NewDefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewDefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.ProjectionDays <= 0 {
		cfg.ProjectionDays = DefaultProjectionDays
	}

	if cfg.FrequencyFilter != "" && cfg.FrequencyFilter != "all" {
		if _, err := ParseFrequency(cfg.FrequencyFilter); err != nil {
			return nil, fmt.Errorf("invalid frequency_filter: %w", err)
		}
	}

	for _, pattern := range cfg.Exclude {
		re, err := regexp.Compile("(?i)" + pattern) // case-insensitive
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		cfg.excludePatterns = append(cfg.excludePatterns, re)
	}

	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// StorePath returns the configured store path, or DefaultStorePath
func (c *Config) StorePath() string {
	if c == nil || c.Store == "" {
		return DefaultStorePath()
	}
	return c.Store
}

// Filter returns the configured frequency filter
func (c *Config) Filter() Filter {
	if c == nil || c.FrequencyFilter == "" || c.FrequencyFilter == "all" {
		return Filter{}
	}
	f, _ := ParseFrequency(c.FrequencyFilter)
	return Filter{Frequency: f}
}

// ShouldExclude returns true if the subscription name matches any exclude pattern
func (c *Config) ShouldExclude(sub Subscription) bool {
	if c == nil {
		return false
	}
	for _, re := range c.excludePatterns {
		if re.MatchString(sub.Name) {
			return true
		}
	}
	return false
}

// GetDescription returns the custom description for a subscription, or empty string
func (c *Config) GetDescription(name string) string {
	if c == nil || c.Descriptions == nil {
		return ""
	}
	return c.Descriptions[name]
}

// GetTags returns the tags for a subscription, or nil if none
func (c *Config) GetTags(name string) []string {
	if c == nil || c.Tags == nil {
		return nil
	}
	return c.Tags[name]
}

// GenerateConfigTemplate creates a config template listing every subscription
func GenerateConfigTemplate(subscriptions []Subscription) *Config {
	cfg := &Config{
		ProjectionDays: DefaultProjectionDays,
		Descriptions:   make(map[string]string),
	}

	for _, sub := range subscriptions {
		cfg.Descriptions[sub.Name] = "" // Empty description as placeholder
	}

	return cfg
}

// FilterByExclusions removes subscriptions matching exclusion rules
func FilterByExclusions(subs []Subscription, cfg *Config) []Subscription {
	if cfg == nil {
		return subs
	}
	var result []Subscription
	for _, sub := range subs {
		if !cfg.ShouldExclude(sub) {
			result = append(result, sub)
		}
	}
	return result
}

// FilterByTags filters subscriptions to only those with matching tags
func FilterByTags(subs []Subscription, tags []string, cfg *Config) []Subscription {
	if cfg == nil || len(tags) == 0 {
		return subs
	}
	var result []Subscription
	for _, sub := range subs {
		if hasAnyTag(cfg.GetTags(sub.Name), tags) {
			result = append(result, sub)
		}
	}
	return result
}

func hasAnyTag(subTags []string, filterTags []string) bool {
	for _, ft := range filterTags {
		for _, st := range subTags {
			if strings.EqualFold(st, ft) {
				return true
			}
		}
	}
	return false
}
