package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the engine tuning parameters.
// 各閾値は外部契約。テスト互換性を壊すため、既定値の変更には注意
type Config struct {
	Environment              string
	AnomalyZScoreThreshold   float64 // 異常判定のZスコア閾値
	CorrelationScanThreshold float64 // 相関スキャンの |r| 閾値
	SeasonalityCVThreshold   float64 // 季節性判定の変動係数閾値
	ForecastHorizon          int     // 予測期間（ピリオド数）
	MaxSamplePoints          int     // チャート描画の最大点数
	ChunkSize                int     // チャンク処理のバッチサイズ
	DefaultPageSize          int     // ページングの既定サイズ
}

// LoadConfig loads configuration from environment variables.
// .env ファイルがあれば先に読み込む（なくてもエラーにしない）
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment:              getEnv("ENVIRONMENT", "development"),
		AnomalyZScoreThreshold:   getEnvFloat("ANOMALY_ZSCORE_THRESHOLD", 2.5),
		CorrelationScanThreshold: getEnvFloat("CORRELATION_SCAN_THRESHOLD", 0.5),
		SeasonalityCVThreshold:   getEnvFloat("SEASONALITY_CV_THRESHOLD", 0.1),
		ForecastHorizon:          getEnvInt("FORECAST_HORIZON", 6),
		MaxSamplePoints:          getEnvInt("MAX_SAMPLE_POINTS", 1000),
		ChunkSize:                getEnvInt("CHUNK_SIZE", 500),
		DefaultPageSize:          getEnvInt("DEFAULT_PAGE_SIZE", 25),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
