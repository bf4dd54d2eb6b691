package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagModel      = flag.String("model", "", "Mesh file to display (.obj, .gltf, .glb)")
	flagTexture    = flag.String("texture", "", "Texture for the mesh")
	flagShadowRes  = flag.Int("shadow-res", 0, "Shadow map resolution")
	flagManual     = flag.Bool("manual", false, "Start with auto-rotation off")
	flagInit       = flag.Bool("init-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// InitRequested reports whether --init-config was given.
func InitRequested() bool {
	return *flagInit
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagModel != "" {
		cfg.Scene.Model.Path = *flagModel
	}
	if *flagTexture != "" {
		cfg.Scene.Model.Texture = *flagTexture
	}
	if *flagShadowRes > 0 {
		cfg.Shadow.Resolution = *flagShadowRes
	}
	if *flagManual {
		cfg.Animation.AutoRotate = false
	}
}
