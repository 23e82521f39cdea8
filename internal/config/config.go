package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	CatalogDir string
	DBPath     string
	OutputDir  string

	TopN int

	FastTurnoverPct     float64
	MediumTurnoverPct   float64
	OverstockUnits      float64
	OverstockTurnover   float64
	LowStockDemandUnits float64
	LowStockDemandPct   float64

	HTTPAddr string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		CatalogDir: getEnv("CATALOG_DIR", filepath.Join(cwd, "catalog")),
		DBPath:     getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir:  getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		TopN: getEnvInt("TOP_N", 10),

		FastTurnoverPct:     getEnvFloat("FAST_TURNOVER_PCT", 70),
		MediumTurnoverPct:   getEnvFloat("MEDIUM_TURNOVER_PCT", 40),
		OverstockUnits:      getEnvFloat("OVERSTOCK_UNITS", 100),
		OverstockTurnover:   getEnvFloat("OVERSTOCK_TURNOVER_PCT", 30),
		LowStockDemandUnits: getEnvFloat("LOW_STOCK_DEMAND_UNITS", 10),
		LowStockDemandPct:   getEnvFloat("LOW_STOCK_DEMAND_PCT", 50),

		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
