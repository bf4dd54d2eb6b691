// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Scene     SceneConfig     `yaml:"scene"`
	Light     LightConfig     `yaml:"light"`
	Camera    CameraConfig    `yaml:"camera"`
	Animation AnimationConfig `yaml:"animation"`
	Shadow    ShadowConfig    `yaml:"shadow"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Color is an RGB triple with components in [0, 1].
type Color [3]float32

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width          int   `yaml:"width"`
	Height         int   `yaml:"height"`
	Fullscreen     bool  `yaml:"fullscreen"`
	VSync          bool  `yaml:"vsync"`
	ClearColor     Color `yaml:"clear_color"`
	MaxTextureSize int   `yaml:"max_texture_size"` // 0 = unlimited
}

// SceneConfig describes the drawables.
type SceneConfig struct {
	Model  ModelConfig  `yaml:"model"`
	Ground GroundConfig `yaml:"ground"`
}

// ModelConfig describes the rotating mesh. An empty Path selects the
// built-in cube.
type ModelConfig struct {
	Path    string     `yaml:"path"`
	Offset  [3]float32 `yaml:"offset"`
	Scale   float32    `yaml:"scale"`
	Color   Color      `yaml:"color"`
	Texture string     `yaml:"texture"`
}

// GroundConfig describes the ground plane.
type GroundConfig struct {
	Enabled  bool    `yaml:"enabled"`
	HalfSize float32 `yaml:"half_size"`
	Height   float32 `yaml:"height"`
	Color    Color   `yaml:"color"`
	Texture  string  `yaml:"texture"`
}

// LightConfig holds the shadow-casting light.
type LightConfig struct {
	Direction [3]float32 `yaml:"direction"` // towards the light
	Distance  float32    `yaml:"distance"`
	HalfSize  float32    `yaml:"half_size"`
	Near      float32    `yaml:"near"`
	Far       float32    `yaml:"far"`
	Color     Color      `yaml:"color"`
	Ambient   Color      `yaml:"ambient"`
	FitScene  bool       `yaml:"fit_scene"` // size the frustum from the scene bounds
}

// CameraConfig holds the fixed camera pose and lens.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`
	Pitch    float32    `yaml:"pitch"`
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// AnimationConfig holds the rotation clock settings.
type AnimationConfig struct {
	RatePerSecond float64 `yaml:"rate_per_second"`
	ManualStep    float64 `yaml:"manual_step"`
	AutoRotate    bool    `yaml:"auto_rotate"`
}

// ShadowConfig holds shadow map settings.
type ShadowConfig struct {
	Resolution int `yaml:"resolution"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:          800,
			Height:         600,
			VSync:          true,
			ClearColor:     Color{0.4, 0.7, 1.0},
			MaxTextureSize: 4096,
		},
		Scene: SceneConfig{
			Model: ModelConfig{
				Offset: [3]float32{0, -1.5, 0},
				Scale:  0.1,
				Color:  Color{0.7, 0.4, 0.2},
			},
			Ground: GroundConfig{
				Enabled:  true,
				HalfSize: 15,
				Height:   -1.5,
				Color:    Color{0.1, 0.5, 0.1},
			},
		},
		Light: LightConfig{
			Direction: [3]float32{0.5, 1.0, 0.3},
			Distance:  25,
			HalfSize:  22,
			Near:      0.1,
			Far:       60,
			Color:     Color{1, 1, 1},
			Ambient:   Color{0.2, 0.2, 0.25},
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 3, 40},
			FOV:      60,
			Near:     0.1,
			Far:      200,
		},
		Animation: AnimationConfig{
			RatePerSecond: 15,
			ManualStep:    5,
			AutoRotate:    true,
		},
		Shadow: ShadowConfig{
			Resolution: 2048,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
