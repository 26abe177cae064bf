package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервера
type Config struct {
	Port               int
	DBPath             string
	MaxPrincipal       float64
	MaxTermMonths      int
	MaxRate            float64
	MaxEarlyPayments   int
	CalculationTimeout time.Duration
	CORSOrigins        []string
	OTELEndpoint       string
	OTELServiceName    string
	LogLevel           string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvInt("PORT", 8000),
		DBPath:             getEnvString("DB_PATH", "credit.db"),
		MaxPrincipal:       getEnvFloat("MAX_PRINCIPAL", 1e9),
		MaxTermMonths:      getEnvInt("MAX_TERM_MONTHS", 600),
		MaxRate:            getEnvFloat("MAX_RATE", 200),
		MaxEarlyPayments:   getEnvInt("MAX_EARLY_PAYMENTS", 1000),
		CalculationTimeout: getEnvDuration("CALCULATION_TIMEOUT", 10*time.Second),
		CORSOrigins:        getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		OTELEndpoint:       getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:    getEnvString("OTEL_SERVICE_NAME", "credit-calc"),
		LogLevel:           getEnvString("LOG_LEVEL", "INFO"),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var res []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			res = append(res, item)
		}
	}
	return res
}

// TermMonthsLimit возвращает максимальный срок кредита в месяцах
func (c *Config) TermMonthsLimit() int {
	return c.MaxTermMonths
}
