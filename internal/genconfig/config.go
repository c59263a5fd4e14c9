// Package genconfig holds host-tunable defaults for the generation
// engine — the knobs that are not part of a single call's parameter
// struct (spec §4) but instead configure the library as a whole: default
// seed, default mesher resolution, default venation iteration cap, and
// logging. It mirrors the host application's config package: defaults,
// then an optional YAML file, then CLI flag overrides.
package genconfig

// Config holds engine-wide defaults.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig holds defaults a host reads after Load and passes on to the
// generators itself (as cmd/treegen does); no generator reads it directly.
type EngineConfig struct {
	Seed                  int64 `yaml:"seed"`
	RadialResolution      int   `yaml:"radial_resolution"`
	VenationMaxIterations int   `yaml:"venation_max_iterations"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Seed:                  1,
			RadialResolution:      8,
			VenationMaxIterations: 300,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
