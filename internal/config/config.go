package config

import (
	"os"
	"strconv"

	"healthlens/internal/errors"
)

// Config is the complete application configuration.
type Config struct {
	Data   DataConfig
	Server ServerConfig
	Tuning TuningConfig
}

// DataConfig locates the record tree.
type DataConfig struct {
	Dir string
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port    string
	GinMode string
}

// TuningConfig carries the calibration knobs for trend and anomaly
// detection. All have sensible defaults; override via environment only when
// recalibrating.
type TuningConfig struct {
	TrendAlertPct   float64 // half-period change alert threshold (percent)
	TrendSlopeRatio float64 // relative-slope cutoff for up/down vs flat
	AnomalyZ        float64 // |z-score| cutoff for per-day anomalies
	MinAbsR         float64 // |r| floor for reported correlations
	TopCorrelations int     // scan mode keeps this many correlations
	DefaultPeriod   int     // default range length in days
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			Dir: os.Getenv("DATA_DIR"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Tuning: TuningConfig{
			TrendAlertPct:   getEnvFloatOrDefault("TREND_ALERT_PCT", 15.0),
			TrendSlopeRatio: getEnvFloatOrDefault("TREND_SLOPE_RATIO", 0.05),
			AnomalyZ:        getEnvFloatOrDefault("ANOMALY_Z", 2.0),
			MinAbsR:         getEnvFloatOrDefault("MIN_ABS_R", 0.2),
			TopCorrelations: getEnvIntOrDefault("TOP_CORRELATIONS", 10),
			DefaultPeriod:   getEnvIntOrDefault("DEFAULT_PERIOD_DAYS", 30),
		},
	}

	if config.Data.Dir == "" {
		return nil, errors.ConfigInvalid("DATA_DIR is required")
	}
	info, err := os.Stat(config.Data.Dir)
	if err != nil || !info.IsDir() {
		return nil, errors.ConfigInvalid("DATA_DIR is not a readable directory: " + config.Data.Dir)
	}
	return config, nil
}

// Helper functions for environment variable parsing.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
