package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagLeafTris = flag.Int("leaf-triangles", 0, "Leaf cluster triangle threshold (L)")
	flagOutDir   = flag.String("out", "", "Output directory for LOD files")
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
	if *flagLeafTris > 0 {
		cfg.Build.LeafTriangleCount = *flagLeafTris
	}
	if *flagOutDir != "" {
		cfg.Output.Directory = *flagOutDir
	}
}
