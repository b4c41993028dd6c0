package config

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"shotbot/internal/capture"
	"shotbot/internal/classifier"
	"shotbot/internal/input"
	"shotbot/internal/planner"
	"shotbot/internal/tracker"
)

// Структура окна игры
type Game struct {
	X            int  `mapstructure:"x"`
	Y            int  `mapstructure:"y"`
	Width        int  `mapstructure:"width"`
	Height       int  `mapstructure:"height"`
	TargetRadius int  `mapstructure:"target_radius"`
	GoalX        int  `mapstructure:"goal_x"`
	GoalY        int  `mapstructure:"goal_y"`
	AutoDetect   bool `mapstructure:"auto_detect"`
	TopOffset    int  `mapstructure:"top_offset"` // пропускаемые при поиске окна пиксели сверху экрана
}

// Структура отслеживания попадания
type Tracking struct {
	ColorRule    string        `mapstructure:"color_rule"` // relative | absolute
	Policy       string        `mapstructure:"policy"`     // delta | saturation
	Baseline     string        `mapstructure:"baseline"`   // first_nonzero | first
	Delta        int           `mapstructure:"delta"`
	Saturation   int           `mapstructure:"saturation"`
	Paced        bool          `mapstructure:"paced"`
	Period       time.Duration `mapstructure:"period"`
	SettleFrames int           `mapstructure:"settle_frames"`
	MaxSamples   int           `mapstructure:"max_samples"`
}

// Структура поиска мяча
type Locator struct {
	TemplatePath string  `mapstructure:"template_path"` // пусто = встроенный шаблон
	Stride       int     `mapstructure:"stride"`        // 1 = каждый байт, 4 = по пикселям
	AimLength    float64 `mapstructure:"aim_length"`
}

// Структура Arduino
type Arduino struct {
	Port        string        `mapstructure:"port"`
	BaudRate    int           `mapstructure:"baud_rate"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

// Структура базы данных
type Database struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// Основная структура конфигурации
type Config struct {
	Ready         bool          `mapstructure:"ready"`
	Game          Game          `mapstructure:"game"`
	Tracking      Tracking      `mapstructure:"tracking"`
	Locator       Locator       `mapstructure:"locator"`
	Capture       string        `mapstructure:"capture"` // x11 | screenshot
	Input         string        `mapstructure:"input"`   // x11 | arduino
	Arduino       Arduino       `mapstructure:"arduino"`
	Database      Database      `mapstructure:"database"`
	SaveToDB      int           `mapstructure:"save_to_db"`
	SaveSnapshots int           `mapstructure:"save_snapshots"`
	SnapshotDir   string        `mapstructure:"snapshot_dir"`
	FocusDelay    time.Duration `mapstructure:"focus_delay"`
	LogFilePath   string        `mapstructure:"log_file_path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ready", false)
	v.SetDefault("game.x", 550)
	v.SetDefault("game.y", 609)
	v.SetDefault("game.width", 400)
	v.SetDefault("game.height", 720)
	v.SetDefault("game.target_radius", 80)
	v.SetDefault("game.goal_x", 200)
	v.SetDefault("game.goal_y", 120)
	v.SetDefault("game.auto_detect", false)
	v.SetDefault("game.top_offset", 0)

	v.SetDefault("tracking.color_rule", "relative")
	v.SetDefault("tracking.policy", "delta")
	v.SetDefault("tracking.baseline", "first_nonzero")
	v.SetDefault("tracking.delta", 300)
	v.SetDefault("tracking.saturation", 0) // 0 = по правилу цвета
	v.SetDefault("tracking.paced", true)
	v.SetDefault("tracking.period", 16*time.Millisecond)
	v.SetDefault("tracking.settle_frames", 10)
	v.SetDefault("tracking.max_samples", 60)

	v.SetDefault("locator.template_path", "")
	v.SetDefault("locator.stride", 1)
	v.SetDefault("locator.aim_length", planner.DefaultAimLength)

	v.SetDefault("capture", string(capture.BackendX11))
	v.SetDefault("input", string(input.BackendX11))
	v.SetDefault("arduino.port", "/dev/ttyACM0")
	v.SetDefault("arduino.baud_rate", 9600)
	v.SetDefault("arduino.read_timeout", 2*time.Second)

	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "shotbot")

	v.SetDefault("save_to_db", 0)
	v.SetDefault("save_snapshots", 0)
	v.SetDefault("snapshot_dir", "target")
	v.SetDefault("focus_delay", 50*time.Millisecond)
	v.SetDefault("log_file_path", "logs/shotbot.log")
}

// Flags флаги командной строки, перекрывающие файл конфигурации
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to config file (default ./config.yaml)")
	fs.Int("game-x", 550, "x coordinate of the game window")
	fs.Int("game-y", 609, "y coordinate of the game window")
	fs.Bool("ready", false, "start the shot loop instead of inspecting the screen")
	return fs
}

// Load читает конфигурацию: значения по умолчанию, config.yaml, переменные SHOTBOT_*, флаги
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("shotbot")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for key, flag := range map[string]string{"game.x": "game-x", "game.y": "game-y", "ready": "ready"} {
			if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	path := ""
	if fs != nil {
		path, _ = fs.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config") // Имя конфигурационного файла без расширения
		v.AddConfigPath(".")      // Путь к файлу конфигурации
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate проверяет значения, которые иначе всплыли бы посреди удара
func (c *Config) Validate() error {
	if c.Game.Width <= 0 || c.Game.Height <= 0 {
		return fmt.Errorf("invalid game size %dx%d", c.Game.Width, c.Game.Height)
	}
	if c.Game.TargetRadius <= 0 {
		return fmt.Errorf("invalid target radius %d", c.Game.TargetRadius)
	}
	if _, err := c.TrackerConfig(); err != nil {
		return err
	}
	if c.Tracking.MaxSamples <= 0 {
		return fmt.Errorf("max_samples must be positive, got %d", c.Tracking.MaxSamples)
	}
	if c.Tracking.Paced && c.Tracking.Period <= 0 {
		return fmt.Errorf("paced tracking needs a positive period, got %v", c.Tracking.Period)
	}
	if c.Locator.Stride <= 0 {
		return fmt.Errorf("locator stride must be positive, got %d", c.Locator.Stride)
	}
	if c.Locator.AimLength <= 0 {
		return fmt.Errorf("aim length must be positive, got %v", c.Locator.AimLength)
	}
	if _, err := input.ParseBackend(c.Input); err != nil {
		return err
	}
	switch capture.Backend(strings.ToLower(c.Capture)) {
	case capture.BackendX11, capture.BackendScreenshot, "":
	default:
		return fmt.Errorf("unknown capture backend %q", c.Capture)
	}
	return nil
}

// TrackerConfig параметры трекера из секции tracking
func (c *Config) TrackerConfig() (tracker.Config, error) {
	rule, err := classifier.ParseRule(c.Tracking.ColorRule)
	if err != nil {
		return tracker.Config{}, err
	}
	policy, err := tracker.ParsePolicy(c.Tracking.Policy)
	if err != nil {
		return tracker.Config{}, err
	}
	baseline, err := tracker.ParseBaselineMode(c.Tracking.Baseline)
	if err != nil {
		return tracker.Config{}, err
	}
	saturation := c.Tracking.Saturation
	if saturation <= 0 {
		saturation = tracker.DefaultSaturation(rule)
	}
	return tracker.Config{
		Rule:         rule,
		Policy:       policy,
		Baseline:     baseline,
		Delta:        c.Tracking.Delta,
		Saturation:   saturation,
		Paced:        c.Tracking.Paced,
		Period:       c.Tracking.Period,
		SettleFrames: c.Tracking.SettleFrames,
		MaxSamples:   c.Tracking.MaxSamples,
	}, nil
}

// Geometry геометрия окна игры
func (c *Config) Geometry() planner.Geometry {
	return planner.Geometry{
		Origin:       image.Pt(c.Game.X, c.Game.Y),
		Width:        c.Game.Width,
		Height:       c.Game.Height,
		TargetRadius: c.Game.TargetRadius,
		Goal:         image.Pt(c.Game.GoalX, c.Game.GoalY),
	}
}

// GameRect прямоугольник окна игры для захвата
func (c *Config) GameRect() image.Rectangle {
	return c.Geometry().Bounds()
}
