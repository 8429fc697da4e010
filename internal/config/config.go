// Package config defines ladder configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and LADDER_* env vars on top of the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr is the HTTP listen address for `ladder serve`.
	Addr string `koanf:"addr" validate:"required"`

	// RatingsFile is the raw ratings table read by build-index.
	RatingsFile string `koanf:"ratings_file"`

	// SnapshotPath is where the built index lives.
	SnapshotPath string `koanf:"snapshot_path" validate:"required"`

	// Delta is the default maximum rating gap for bridges.
	Delta float64 `koanf:"delta"`

	// Limit is the default number of bridges returned.
	Limit int `koanf:"limit" validate:"min=1"`

	// MaxLimit caps ?limit on the HTTP API.
	MaxLimit int `koanf:"max_limit" validate:"gtefield=Limit"`

	// ExplainerCommand and ExplainerModel select the LLM CLI used by
	// explain/start.
	ExplainerCommand string `koanf:"explainer_command" validate:"required"`
	ExplainerModel   string `koanf:"explainer_model"`

	// PromptsDir holds explain.md, review.md and solve.md.
	PromptsDir string `koanf:"prompts_dir"`

	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace" validate:"required,metricname"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		SnapshotPath:     "data/ratings.json",
		Delta:            150,
		Limit:            3,
		MaxLimit:         50,
		ExplainerCommand: "gemini",
		ExplainerModel:   "gemini-2.5-pro",
		PromptsDir:       "prompts",
		MetricsNamespace: "ladder",
	}
}
