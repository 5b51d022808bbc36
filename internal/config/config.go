package config

import (
	"Tabata/internal/domain"
	"Tabata/internal/service/tts"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// ErrUsage — некорректный пользовательский ввод; тренировка не запускается.
var ErrUsage = errors.New("usage error")

type Config struct {
	DebugMode bool `env:"DEBUG_MODE"` // Подробный лог каждой фразы

	// Тренировка
	Rounds          int `env:"TABATA_ROUNDS"`           // Количество раундов активность/отдых
	WaitSeconds     int `env:"TABATA_WAIT"`             // Разминка перед первым раундом; <= 0 — без разминки
	ActivitySeconds int `env:"TABATA_ACTIVITY_SECONDS"` // Длительность активной фазы
	RestSeconds     int `env:"TABATA_REST_SECONDS"`     // Длительность отдыха
	NotifySeconds   int `env:"TABATA_NOTIFY_SECONDS"`   // Окно обратного отсчёта в конце фазы

	Speech SpeechConfig
}

// SpeechConfig — внешняя утилита озвучки и необязательный звуковой сигнал начала фазы.
type SpeechConfig struct {
	Command   string `env:"SAY_COMMAND"` // Команда синтеза, по умолчанию say
	Voice     string `env:"SAY_VOICE"`   // Голос (флаг -v), пусто — голос системы
	ChimePath string `env:"CHIME_PATH"`  // mp3|wav; пусто — без сигнала

	ChimeRestPath string `env:"CHIME_REST_PATH"` // Отдельный сигнал для отдыха; пусто — общий

	ChimeVolumeDB float64 `env:"CHIME_VOLUME_DB"` // Громкость сигнала в dB, отрицательные — тише
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:       false,
		Rounds:          8,
		WaitSeconds:     0,
		ActivitySeconds: 20,
		RestSeconds:     10,
		NotifySeconds:   5,
		Speech: SpeechConfig{
			Command: tts.DefaultCommand,
			Voice:   tts.DefaultVoice,
		},
	}
}

// Load собирает конфигурацию: дефолты, затем .env, затем окружение.
// Флаги CLI накладываются поверх через BindFlags.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return cfg, nil
}

// BindFlags регистрирует флаги поверх уже загруженных значений.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.DebugMode, "debug", "d", c.DebugMode, "log every announcement")
	fs.IntVarP(&c.WaitSeconds, "wait", "w", c.WaitSeconds, "wait n seconds (warm up) before the start of the Tabata session")
	fs.IntVar(&c.ActivitySeconds, "activity", c.ActivitySeconds, "activity phase length, seconds")
	fs.IntVar(&c.RestSeconds, "rest", c.RestSeconds, "rest phase length, seconds")
	fs.IntVar(&c.NotifySeconds, "notify", c.NotifySeconds, "countdown window at the end of activity and rest, seconds")
	fs.StringVar(&c.Speech.Command, "say-command", c.Speech.Command, "speech command invoked as <command> -v <voice> <text>")
	fs.StringVar(&c.Speech.Voice, "voice", c.Speech.Voice, "voice name; empty uses the system default")
	fs.StringVar(&c.Speech.ChimePath, "chime", c.Speech.ChimePath, "mp3 or wav file played at the start of every phase")
	fs.StringVar(&c.Speech.ChimeRestPath, "chime-rest", c.Speech.ChimeRestPath, "mp3 or wav file played at the start of rest instead of --chime")
	fs.Float64Var(&c.Speech.ChimeVolumeDB, "chime-volume-db", c.Speech.ChimeVolumeDB, "chime volume gain in dB, negative is quieter")
}

// ApplyArgs разбирает позиционный аргумент rounds.
func (c *Config) ApplyArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: expected at most one positional argument (rounds), got %d", ErrUsage, len(args))
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("%w: rounds must be an integer, got %q", ErrUsage, args[0])
	}
	c.Rounds = n
	return nil
}

// LeadIn возвращает длительность разминки; отрицательное значение флага трактуется как "без разминки".
func (c *Config) LeadIn() int { return max(c.WaitSeconds, 0) }

// Session строит и валидирует описание тренировки.
func (c *Config) Session() (domain.Session, error) {
	s, err := domain.NewSession(c.Rounds, c.LeadIn(), c.ActivitySeconds, c.RestSeconds, c.NotifySeconds)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return s, nil
}
