package config

// Flags holds command-line overrides. Zero values mean "not set".
type Flags struct {
	ConfigPath     string
	Debug          bool
	LogFile        string
	LenientTexture bool
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, flags Flags) {
	if flags.Debug {
		cfg.Logging.Level = "debug"
	}
	if flags.LogFile != "" {
		cfg.Logging.LogFile = flags.LogFile
	}
	if flags.LenientTexture {
		cfg.Model.StrictTexture = false
	}
}
