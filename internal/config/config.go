package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Telegram
	BotToken string
	AdminIDs []int64

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Application
	AppEnv   string
	AppPort  string
	LogLevel string

	// Card payment requisites shown to the buyer
	CardNumber string
	CardHolder string
	Bank       string

	// Withdrawals
	MinWithdrawal  float64
	GameCommission float64

	// Telegram Stars
	StarsToRub       float64
	MinStarsPurchase int

	// Reviews
	ReviewChannel string

	// Free-Kassa webhook
	FKMerchantID string
	FKSecretKey  string

	// Fulfillment
	PaymentTolerance float64

	// Rate Limiting
	RateLimitPerUser int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		BotToken:   getEnv("BOT_TOKEN", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "caseshop"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "caseshop_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AppEnv:   getEnv("APP_ENV", "development"),
		AppPort:  getEnv("APP_PORT", "10000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CardNumber: getEnv("CARD_NUMBER", ""),
		CardHolder: getEnv("CARD_HOLDER", ""),
		Bank:       getEnv("BANK", ""),

		MinWithdrawal:  getEnvFloat("MIN_WITHDRAWAL", 20.0),
		GameCommission: getEnvFloat("GAME_COMMISSION", 0.20),

		StarsToRub:       getEnvFloat("STARS_TO_RUB", 1.67),
		MinStarsPurchase: getEnvInt("MIN_STARS_PURCHASE", 10),

		ReviewChannel: getEnv("REVIEW_CHANNEL_ID", ""),

		FKMerchantID: getEnv("FK_MERCHANT_ID", ""),
		FKSecretKey:  getEnv("FK_SECRET_KEY", ""),

		PaymentTolerance: getEnvFloat("PAYMENT_TOLERANCE", 5.0),

		RateLimitPerUser: getEnvInt("RATE_LIMIT_PER_USER", 20),
	}

	adminIDs, err := parseAdminIDs(getEnv("ADMIN_IDS", ""))
	if err != nil {
		return nil, err
	}
	cfg.AdminIDs = adminIDs

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if len(c.AdminIDs) == 0 {
		return fmt.Errorf("ADMIN_IDS is required")
	}
	if c.MinWithdrawal <= 0 {
		return fmt.Errorf("MIN_WITHDRAWAL must be positive")
	}
	if c.GameCommission < 0 || c.GameCommission >= 1 {
		return fmt.Errorf("GAME_COMMISSION must be in [0, 1)")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}
	if c.FKSecretKey == "" {
		return fmt.Errorf("FK_SECRET_KEY must be set in production")
	}

	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// IsAdmin reports whether the Telegram ID belongs to an administrator.
func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func parseAdminIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
