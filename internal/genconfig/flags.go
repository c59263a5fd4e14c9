package genconfig

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagSeed   = flag.Int64("seed", 0, "Override the deterministic RNG seed")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.Engine.Seed = *flagSeed
	}
}
