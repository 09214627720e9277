// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window" toml:"window"`
	Scene    SceneConfig    `yaml:"scene" toml:"scene"`
	Controls ControlsConfig `yaml:"controls" toml:"controls"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`

	// ScreenshotDir receives F12 captures. It may start with ~.
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

// SceneConfig holds scene source settings.
type SceneConfig struct {
	// ConfigPath is the scene configuration text file.
	ConfigPath string `yaml:"config_path" toml:"config_path"`
	// DefaultModels are loaded into the built-in scene when ConfigPath
	// cannot be read.
	DefaultModels []string `yaml:"default_models" toml:"default_models"`
	// AssetRoots are extra directories searched for relative asset paths.
	AssetRoots []string `yaml:"asset_roots" toml:"asset_roots"`
	// Watch reloads the scene when ConfigPath changes on disk.
	Watch bool `yaml:"watch" toml:"watch"`
}

// ControlsConfig holds input rates and steps.
type ControlsConfig struct {
	CameraSpeed      float32 `yaml:"camera_speed" toml:"camera_speed"`           // units/s
	MouseSensitivity float32 `yaml:"mouse_sensitivity" toml:"mouse_sensitivity"` // degrees/pixel
	MoveSpeed        float32 `yaml:"move_speed" toml:"move_speed"`               // units/s
	ScaleSpeed       float32 `yaml:"scale_speed" toml:"scale_speed"`             // per second
	MinScale         float32 `yaml:"min_scale" toml:"min_scale"`
	RotateStep       float32 `yaml:"rotate_step" toml:"rotate_step"` // degrees per key press
	SpeedStep        float32 `yaml:"speed_step" toml:"speed_step"`
	MinSpeed         float32 `yaml:"min_speed" toml:"min_speed"`
	PointDistance    float32 `yaml:"point_distance" toml:"point_distance"` // in front of the camera

	// KeyBindings rebinds keys, e.g. {"K": "add_point"}. Keys use SDL key
	// names; values are action names.
	KeyBindings map[string]string `yaml:"key_bindings,omitempty" toml:"key_bindings,omitempty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with the demo defaults.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "Scene Viewer",
			Width:         1200,
			Height:        900,
			VSync:         true,
			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			ConfigPath: "scene_config.txt",
			DefaultModels: []string{
				"assets/Modelos3D/Suzanne.obj",
				"assets/Modelos3D/SuzanneSubdiv1.obj",
				"assets/Modelos3D/cube.obj",
			},
		},
		Controls: ControlsConfig{
			CameraSpeed:      2.5,
			MouseSensitivity: 0.1,
			MoveSpeed:        2.0,
			ScaleSpeed:       1.0,
			MinScale:         0.1,
			RotateStep:       15,
			SpeedStep:        0.5,
			MinSpeed:         0.5,
			PointDistance:    2.0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
