package config

import (
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.AnomalyZScoreThreshold != 2.5 {
		t.Errorf("AnomalyZScoreThreshold = %v, want 2.5", cfg.AnomalyZScoreThreshold)
	}
	if cfg.CorrelationScanThreshold != 0.5 {
		t.Errorf("CorrelationScanThreshold = %v, want 0.5", cfg.CorrelationScanThreshold)
	}
	if cfg.SeasonalityCVThreshold != 0.1 {
		t.Errorf("SeasonalityCVThreshold = %v, want 0.1", cfg.SeasonalityCVThreshold)
	}
	if cfg.ForecastHorizon != 6 {
		t.Errorf("ForecastHorizon = %v, want 6", cfg.ForecastHorizon)
	}
	if cfg.MaxSamplePoints != 1000 {
		t.Errorf("MaxSamplePoints = %v, want 1000", cfg.MaxSamplePoints)
	}
	if cfg.ChunkSize != 500 {
		t.Errorf("ChunkSize = %v, want 500", cfg.ChunkSize)
	}
	if cfg.DefaultPageSize != 25 {
		t.Errorf("DefaultPageSize = %v, want 25", cfg.DefaultPageSize)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("ANOMALY_ZSCORE_THRESHOLD", "3.0")
	t.Setenv("FORECAST_HORIZON", "12")
	t.Setenv("ENVIRONMENT", "production")

	cfg := LoadConfig()

	if cfg.AnomalyZScoreThreshold != 3.0 {
		t.Errorf("AnomalyZScoreThreshold = %v, want 3.0", cfg.AnomalyZScoreThreshold)
	}
	if cfg.ForecastHorizon != 12 {
		t.Errorf("ForecastHorizon = %v, want 12", cfg.ForecastHorizon)
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %v, want production", cfg.Environment)
	}
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	t.Setenv("ANOMALY_ZSCORE_THRESHOLD", "not-a-number")
	t.Setenv("CHUNK_SIZE", "abc")

	cfg := LoadConfig()

	if cfg.AnomalyZScoreThreshold != 2.5 {
		t.Errorf("AnomalyZScoreThreshold = %v, want 2.5", cfg.AnomalyZScoreThreshold)
	}
	if cfg.ChunkSize != 500 {
		t.Errorf("ChunkSize = %v, want 500", cfg.ChunkSize)
	}
}
