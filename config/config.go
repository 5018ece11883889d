// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// Scraping
	RaceBaseURL    string
	HorseDBBaseURL string
	Headless       bool
	WaitSec        int
	HistoryLimit   int
	FetchDelay     time.Duration
	ScreenshotDir  string

	// Export
	ExportDir string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "keiba")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "keibadata")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":8000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("DEBUG", false)
	v.SetDefault("RACE_BASE_URL", "https://race.netkeiba.com")
	v.SetDefault("HORSE_DB_BASE_URL", "https://db.netkeiba.com")
	v.SetDefault("SCRAPE_HEADLESS", true)
	v.SetDefault("SCRAPE_WAIT_SEC", 10)
	v.SetDefault("SCRAPE_HISTORY_LIMIT", 10)
	v.SetDefault("SCRAPE_DELAY_MS", 1000)
	v.SetDefault("SCREENSHOT_DIR", "screenshots")
	v.SetDefault("EXPORT_DIR", "race_data")

	cfg := &Config{
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBUser:         v.GetString("DB_USER"),
		DBPass:         v.GetString("DB_PASS"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		Debug:          v.GetBool("DEBUG"),
		Port:           v.GetString("PORT"),
		TLSDomains:     splitTrimmed(v.GetString("TLS_DOMAINS")),
		RaceBaseURL:    strings.TrimRight(v.GetString("RACE_BASE_URL"), "/"),
		HorseDBBaseURL: strings.TrimRight(v.GetString("HORSE_DB_BASE_URL"), "/"),
		Headless:       v.GetBool("SCRAPE_HEADLESS"),
		WaitSec:        v.GetInt("SCRAPE_WAIT_SEC"),
		HistoryLimit:   v.GetInt("SCRAPE_HISTORY_LIMIT"),
		FetchDelay:     time.Duration(v.GetInt("SCRAPE_DELAY_MS")) * time.Millisecond,
		ScreenshotDir:  v.GetString("SCREENSHOT_DIR"),
		ExportDir:      v.GetString("EXPORT_DIR"),
	}

	cfg.validate()
	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// ShutubaURL returns the race card page URL for a race id.
func (c *Config) ShutubaURL(raceID string) string {
	return fmt.Sprintf("%s/race/shutuba.html?race_id=%s", c.RaceBaseURL, raceID)
}

// HorseURL returns the profile/history page URL for a horse id.
func (c *Config) HorseURL(horseID string) string {
	return fmt.Sprintf("%s/horse/%s/", c.HorseDBBaseURL, horseID)
}

func (c *Config) validate() {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
	if c.HistoryLimit < 0 {
		log.Fatal("config: SCRAPE_HISTORY_LIMIT must not be negative")
	}
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
