package config

import (
	"os"
	"time"

	"go.uber.org/zap"
)

// Config хранит основные настройки приложения.
type Config struct {
	TelegramToken  string
	DatabaseURL    string
	HTTPAddr       string
	SubmitDelay    time.Duration
	NotifyInterval time.Duration
	RemindBefore   time.Duration
}

const (
	defaultDatabaseURL    = "user=myuser password=mypass dbname=parcelbot host=localhost port=5432 sslmode=disable"
	defaultHTTPAddr       = ":8080"
	defaultSubmitDelay    = 900 * time.Millisecond
	defaultNotifyInterval = time.Minute
	defaultRemindBefore   = 30 * time.Minute
)

// LoadConfig читает настройки из окружения. Незаданные значения
// заменяются значениями по умолчанию с предупреждением в лог.
func LoadConfig(log *zap.Logger) *Config {
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
	}

	if cfg.TelegramToken == "" {
		log.Warn("TELEGRAM_BOT_TOKEN не задан в окружении")
		cfg.TelegramToken = "CHANGE_ME"
	}
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL не задан в окружении, используем дефолтную строку подключения")
		cfg.DatabaseURL = defaultDatabaseURL
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}

	cfg.SubmitDelay = durationEnv(log, "SUBMIT_DELAY", defaultSubmitDelay)
	cfg.NotifyInterval = durationEnv(log, "NOTIFY_INTERVAL", defaultNotifyInterval)
	cfg.RemindBefore = durationEnv(log, "REMIND_BEFORE", defaultRemindBefore)

	return cfg
}

func durationEnv(log *zap.Logger, key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Warn("некорректная длительность, используем значение по умолчанию",
			zap.String("key", key),
			zap.String("value", raw),
			zap.Duration("default", def))
		return def
	}
	return d
}
