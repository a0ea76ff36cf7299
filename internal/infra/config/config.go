// Пакет config отвечает за сбор и предоставление конфигурации мини-аппа. Он:
//  1. читает переменные окружения из .env (через godotenv),
//  2. нормализует и валидирует входные значения,
//  3. накапливает предупреждения о подставленных значениях по умолчанию,
//  4. фиксирует результат в потокобезопасном singleton.
//
// Бизнес-контекст: приложение — клиентская прослойка VPN-сервиса. Конфиг
// описывает адрес REST-бэкенда, ссылку на бота (вход вне Telegram), адрес
// локального веб-сервера, файл состояния с токеном сессии и логирование.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"chillguy-miniapp/internal/infra/timeutil"

	"github.com/joho/godotenv"
)

// EnvConfig описывает параметры, приходящие из окружения (.env).
// Значения уже прошли минимальную валидацию в loadConfig; в рантайме
// предполагается, что EnvConfig последователен.
type EnvConfig struct {
	APIBaseURL    string // базовый URL REST API (включая /api/v1)
	AuthBaseURL   string // базовый URL эндпоинтов обмена учётных данных
	BotLink       string // deep link на Telegram-бота для входа вне Telegram
	ListenAddress string // адрес локального веб-сервера
	StateFile     string // bbolt-файл с токеном сессии и настройками
	LogLevel      string
	APIRPS        int // лимит запросов к бэкенду (token bucket)
	AppTimezone   string
	// Файловое логирование
	LogFile           string
	LogFileLevel      string
	LogFileMaxSize    int
	LogFileMaxBackups int
	LogFileMaxAge     int
	LogFileCompress   bool
}

// Config хранит конфигурацию среды. Публичные геттеры берут RLock.
type Config struct {
	Env      EnvConfig
	warnings []string
	mu       sync.RWMutex
}

// Значения по умолчанию для параметров окружения.
const (
	defaultAPIBaseURL    = "https://api.chillguyvpn.com/api/v1"
	defaultBotLink       = "https://t.me/chillguy_vpn_bot"
	defaultListenAddress = "127.0.0.1:8080"
	defaultStateFile     = "data/miniapp.bbolt"
	defaultLogLevel      = "info"
	defaultAPIRPS        = 10
	defaultAppTimezone   = "Europe/Moscow"
	// Файловое логирование (LOG_FILE без дефолта — активируется явно)
	defaultLogFileLevel      = "debug"
	defaultLogFileMaxSize    = 50
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 7
	defaultLogFileCompress   = true
)

var (
	cfgInstance *Config
	cfgDone     bool
)

// AppLocation — таймзона приложения, выставляется при загрузке конфига.
var AppLocation *time.Location

// Load — точка входа для инициализации глобальной конфигурации.
// Повторный вызов запрещён, чтобы избежать гонок конфигурации на старте.
func Load(envPath string) error {
	if cfgDone {
		return errors.New("config already loaded")
	}
	newCfg, err := loadConfig(envPath)
	if err != nil {
		return err
	}
	cfgInstance = newCfg
	cfgDone = true
	return nil
}

// loadConfig выполняет фактическую загрузку/валидацию без установки глобального
// состояния. Удобно для тестов: можно собрать временный Config и проверить его.
func loadConfig(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	var warnings []string

	apiBase := sanitizeBaseURL("API_BASE_URL", os.Getenv("API_BASE_URL"), defaultAPIBaseURL, &warnings)
	// Эндпоинты авторизации живут на том же хосте; отдельная переменная нужна
	// только для тестовых стендов.
	authBase := sanitizeBaseURL("AUTH_BASE_URL", os.Getenv("AUTH_BASE_URL"), apiBase, nil)
	botLink := sanitizeString("BOT_LINK", os.Getenv("BOT_LINK"), defaultBotLink, &warnings)
	listenAddr := sanitizeString("LISTEN_ADDRESS", os.Getenv("LISTEN_ADDRESS"), defaultListenAddress, &warnings)
	stateFile := sanitizeString("STATE_FILE", os.Getenv("STATE_FILE"), defaultStateFile, &warnings)
	logLevel := sanitizeLogLevel(os.Getenv("LOG_LEVEL"), defaultLogLevel, &warnings)
	apiRPS := parseIntDefault("API_RPS", defaultAPIRPS, greaterThanZero, &warnings)
	appTimezone := sanitizeTimezone(os.Getenv("APP_TIMEZONE"), defaultAppTimezone, &warnings)
	logFile := strings.TrimSpace(os.Getenv("LOG_FILE"))
	logFileLevel := sanitizeLogLevel(os.Getenv("LOG_FILE_LEVEL"), defaultLogFileLevel, &warnings)
	logFileMaxSize := parseIntDefault("LOG_FILE_MAX_SIZE_MB", defaultLogFileMaxSize, greaterThanZero, &warnings)
	logFileMaxBackups := parseIntDefault("LOG_FILE_MAX_BACKUPS", defaultLogFileMaxBackups, nonNegative, &warnings)
	logFileMaxAge := parseIntDefault("LOG_FILE_MAX_AGE_DAYS", defaultLogFileMaxAge, nonNegative, &warnings)
	logFileCompress := parseBoolDefault("LOG_FILE_COMPRESS", defaultLogFileCompress, &warnings)

	loc, err := timeutil.ParseLocation(appTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", appTimezone, err)
	}
	AppLocation = loc

	env := EnvConfig{
		APIBaseURL:        apiBase,
		AuthBaseURL:       authBase,
		BotLink:           botLink,
		ListenAddress:     listenAddr,
		StateFile:         stateFile,
		LogLevel:          logLevel,
		APIRPS:            apiRPS,
		AppTimezone:       appTimezone,
		LogFile:           logFile,
		LogFileLevel:      logFileLevel,
		LogFileMaxSize:    logFileMaxSize,
		LogFileMaxBackups: logFileMaxBackups,
		LogFileMaxAge:     logFileMaxAge,
		LogFileCompress:   logFileCompress,
	}

	return &Config{Env: env, warnings: warnings}, nil
}

// Warnings возвращает накопленные предупреждения загрузки .env. Возвращается копия.
func Warnings() []string {
	cfgInstance.mu.RLock()
	defer cfgInstance.mu.RUnlock()
	result := make([]string, len(cfgInstance.warnings))
	copy(result, cfgInstance.warnings)
	return result
}

// Env возвращает EnvConfig из глобального singleton — неизменяемый снимок
// на момент загрузки.
func Env() EnvConfig {
	return cfgInstance.Env
}

// parseIntDefault читает name как int. Если пусто/некорректно/не проходит
// validator — возвращает defaultVal и пишет предупреждение.
func parseIntDefault(name string, defaultVal int, validator func(int) bool, warnings *[]string) int {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		appendWarningf(warnings, "env %s is not set; using default %d", name, defaultVal)
		return defaultVal
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		appendWarningf(warnings, "env %s value %q is not a valid integer; using default %d", name, value, defaultVal)
		return defaultVal
	}
	if validator != nil && !validator(v) {
		appendWarningf(warnings, "env %s value %d does not satisfy constraints; using default %d", name, v, defaultVal)
		return defaultVal
	}
	return v
}

// parseBoolDefault читает name как bool с подстановкой defaultVal.
func parseBoolDefault(name string, defaultVal bool, warnings *[]string) bool {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		appendWarningf(warnings, "env %s is not set; using default %v", name, defaultVal)
		return defaultVal
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		appendWarningf(warnings, "env %s value %q is not a valid boolean; using default %v", name, value, defaultVal)
		return defaultVal
	}
	return v
}

// appendWarningf накапливает предупреждения о некорректных переменных окружения.
func appendWarningf(warnings *[]string, format string, args ...any) {
	if warnings == nil {
		return
	}
	*warnings = append(*warnings, fmt.Sprintf(format, args...))
}

func greaterThanZero(v int) bool { return v > 0 }
func nonNegative(v int) bool     { return v >= 0 }

// sanitizeLogLevel ограничивает уровень набором {debug, info, warn, error}.
func sanitizeLogLevel(level, defaultVal string, warnings *[]string) string {
	lvl := strings.ToLower(strings.TrimSpace(level))
	if lvl == "" {
		appendWarningf(warnings, "env LOG_LEVEL is not set; using default %q", defaultVal)
		return defaultVal
	}
	switch lvl {
	case "debug", "info", "warn", "error":
		return lvl
	default:
		appendWarningf(warnings, "env LOG_LEVEL value %q is invalid; using default %q", level, defaultVal)
		return defaultVal
	}
}

// sanitizeString подставляет fallback вместо пустого значения.
func sanitizeString(name, value, fallback string, warnings *[]string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		appendWarningf(warnings, "env %s is not set; using default %q", name, fallback)
		return fallback
	}
	return v
}

// sanitizeBaseURL нормализует базовый URL: убирает завершающий слэш, проверяет схему.
func sanitizeBaseURL(name, value, fallback string, warnings *[]string) string {
	v := strings.TrimRight(strings.TrimSpace(value), "/")
	if v == "" {
		appendWarningf(warnings, "env %s is not set; using default %q", name, fallback)
		return fallback
	}
	if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
		appendWarningf(warnings, "env %s value %q has no scheme; using default %q", name, value, fallback)
		return fallback
	}
	return v
}

// sanitizeTimezone проверяет, что значение — корректная IANA-зона или UTC-смещение.
func sanitizeTimezone(value, fallback string, warnings *[]string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		appendWarningf(warnings, "env APP_TIMEZONE is not set; using default %q", fallback)
		return fallback
	}
	if _, err := timeutil.ParseLocation(v); err != nil {
		appendWarningf(warnings, "timezone %q is invalid; using default %q", v, fallback)
		return fallback
	}
	return v
}
