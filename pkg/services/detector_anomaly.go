package services

import (
	"math"

	"dashlens-engine/pkg/models"
)

// DetectAnomalies Zスコア法で異常値を検知する。
// threshold に 0 を指定すると設定のデフォルト値（2.5）を使用。
// 標準偏差が 0 の場合は全値を非異常（Zスコア 0）として返す
func (s *AnalyticsService) DetectAnomalies(values []float64, threshold float64) []models.AnomalyPoint {
	if threshold == 0 {
		threshold = s.cfg.AnomalyZScoreThreshold
	}

	points := make([]models.AnomalyPoint, 0, len(values))
	if len(values) == 0 {
		return points
	}

	mean := Mean(values)
	stdDev := StdDev(values)

	for i, v := range values {
		var zScore float64
		if stdDev > 0 {
			zScore = (v - mean) / stdDev
		}
		points = append(points, models.AnomalyPoint{
			Index:     i,
			Value:     v,
			ZScore:    zScore,
			IsAnomaly: stdDev > 0 && math.Abs(zScore) > threshold,
		})
	}
	return points
}

// filterAnomalies 異常と判定された点のみを抽出
func filterAnomalies(points []models.AnomalyPoint) []models.AnomalyPoint {
	var anomalies []models.AnomalyPoint
	for _, p := range points {
		if p.IsAnomaly {
			anomalies = append(anomalies, p)
		}
	}
	return anomalies
}

// mostExtremeAnomaly |Zスコア| が最大の異常点を返す
func mostExtremeAnomaly(anomalies []models.AnomalyPoint) models.AnomalyPoint {
	var extreme models.AnomalyPoint
	for _, a := range anomalies {
		if math.Abs(a.ZScore) > math.Abs(extreme.ZScore) {
			extreme = a
		}
	}
	return extreme
}
