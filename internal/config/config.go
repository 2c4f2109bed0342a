package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/annel0/woodland/internal/input"
	"github.com/annel0/woodland/internal/logging"
	"github.com/annel0/woodland/internal/vec"
	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	World     WorldConfig     `yaml:"world"`
	Keys      input.Bindings  `yaml:"keys"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Replay    ReplayConfig    `yaml:"replay"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
}

type WorldConfig struct {
	GroundTexture string        `yaml:"ground_texture"`
	PlayerSpeed   float64       `yaml:"player_speed"`
	BreakRadius   float64       `yaml:"break_radius"`
	CameraOffset  vec.Vec3Float `yaml:"camera_offset"`
	Forest        ForestConfig  `yaml:"forest"`
}

// ForestConfig - дополнительные деревья, рассаженные по шуму Перлина
type ForestConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Seed      int64   `yaml:"seed"`
	Extent    float64 `yaml:"extent"`    // Половина стороны квадрата рассадки
	Spacing   float64 `yaml:"spacing"`   // Шаг сетки кандидатов
	Threshold float64 `yaml:"threshold"` // Порог шума 0..1, выше - дерево
	Clearing  float64 `yaml:"clearing"`  // Радиус поляны вокруг точки появления
}

type LoggingConfig struct {
	Dir          string `yaml:"dir"`
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`
	DisableFile  bool   `yaml:"disable_file"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // Пусто - /metrics не поднимается
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type ReplayConfig struct {
	RecordPath string `yaml:"record_path"` // Пусто - журнал не пишется
}

// ErrInvalidConfig сообщает о недопустимом значении в конфигурации
var ErrInvalidConfig = errors.New("invalid config")

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Woodland",
			Width:  1280,
			Height: 720,
			FPS:    60,
		},
		World: WorldConfig{
			GroundTexture: "assets/ground_texture.jpg",
			PlayerSpeed:   0.2,
			BreakRadius:   3.0,
			CameraOffset:  vec.Vec3Float{X: 0, Y: 1.5, Z: 5},
			Forest: ForestConfig{
				Seed:      1,
				Extent:    90,
				Spacing:   6,
				Threshold: 0.62,
				Clearing:  12,
			},
		},
		Keys: input.DefaultBindings(),
		Logging: LoggingConfig{
			Dir:          "logs",
			ConsoleLevel: "info",
			FileLevel:    "debug",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "woodland",
		},
	}
}

// GetMetricsAddr возвращает адрес /metrics с поддержкой fallback значений
func (m *MetricsConfig) GetMetricsAddr() string {
	return getStringWithEnvFallback(m.Addr, "WOODLAND_METRICS_ADDR", "")
}

// GetFPS возвращает частоту кадров с поддержкой fallback значений
func (w *WindowConfig) GetFPS() int {
	return getIntWithEnvFallback(w.FPS, "WOODLAND_FPS", 60)
}

// getStringWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getStringWithEnvFallback(configVal, envVar, defaultVal string) string {
	if configVal != "" {
		return configVal
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultVal
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configVal int, envVar string, defaultVal int) int {
	if configVal > 0 {
		return configVal
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}
	return defaultVal
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV WOODLAND_CONFIG; если и он пуст,
// возвращает конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("WOODLAND_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if err := ValidateWorld(c.World, c.Keys); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.Logging.ConsoleLevel); err != nil {
		return fmt.Errorf("%w: console_level: %v", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.Logging.FileLevel); err != nil {
		return fmt.Errorf("%w: file_level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ValidateWorld проверяет настройки мира и раскладку. Используется и для
// конфигурации, и для настроек, сохраненных в журнале воспроизведения.
func ValidateWorld(w WorldConfig, keys input.Bindings) error {
	if w.PlayerSpeed < 0 {
		return fmt.Errorf("%w: player_speed must not be negative", ErrInvalidConfig)
	}
	if w.BreakRadius <= 0 {
		return fmt.Errorf("%w: break_radius must be positive", ErrInvalidConfig)
	}
	if w.Forest.Enabled && w.Forest.Spacing <= 0 {
		return fmt.Errorf("%w: forest spacing must be positive", ErrInvalidConfig)
	}
	if err := keys.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoggingOptions переводит секцию logging в параметры пакета logging
func (c *Config) LoggingOptions() logging.Options {
	console, _ := logging.ParseLevel(c.Logging.ConsoleLevel)
	file, _ := logging.ParseLevel(c.Logging.FileLevel)
	return logging.Options{
		Dir:          c.Logging.Dir,
		ConsoleLevel: console,
		FileLevel:    file,
		DisableFile:  c.Logging.DisableFile,
	}
}
