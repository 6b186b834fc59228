// Package config defines tracker configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Strict rejects readings outside the formulas' domain (zero duration,
	// negative step count, non-positive height) instead of printing them.
	Strict bool `koanf:"strict"`

	// MetricsTextfile, when set, receives Prometheus metrics in text
	// exposition format after the run.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// Packages lists the sensor packages to process, in order.
	// When empty, DefaultPackages is used.
	Packages []Package `koanf:"packages"`
}

// Package is one sensor package as written in a config file.
type Package struct {
	ID   string    `koanf:"id"`
	Code string    `koanf:"code"`
	Data []float64 `koanf:"data"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Strict:          false,
		MetricsTextfile: "",
	}
}

// DefaultPackages returns the reference packages processed when none are configured.
func DefaultPackages() []Package {
	return []Package{
		{Code: "SWM", Data: []float64{720, 1, 80, 25, 40}},
		{Code: "RUN", Data: []float64{15000, 1, 75}},
		{Code: "WLK", Data: []float64{9000, 1, 75, 180}},
	}
}
