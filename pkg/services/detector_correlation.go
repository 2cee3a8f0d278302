package services

import (
	"math"
	"sort"

	"dashlens-engine/pkg/models"
)

// ScanCorrelations 数値列の全ペアについてピアソン相関を計算し、
// |r| が閾値以上のペアを降順で返す。threshold に 0 を指定すると
// 設定のデフォルト値（0.5）を使用
func (s *AnalyticsService) ScanCorrelations(data models.Dataset, schema models.Schema, threshold float64) []models.CorrelationPair {
	if threshold == 0 {
		threshold = s.cfg.CorrelationScanThreshold
	}

	numericCols := schema.NumericColumns()
	var pairs []models.CorrelationPair

	for i := 0; i < len(numericCols); i++ {
		for j := i + 1; j < len(numericCols); j++ {
			nameX := numericCols[i].Name
			nameY := numericCols[j].Name

			// 両方の値が数値としてパースできた行のみを使用
			var xs, ys []float64
			for _, row := range data {
				x, okX := models.AsNumber(row[nameX])
				y, okY := models.AsNumber(row[nameY])
				if okX && okY {
					xs = append(xs, x)
					ys = append(ys, y)
				}
			}

			r := Correlation(xs, ys)
			if math.Abs(r) < threshold {
				continue
			}

			pairs = append(pairs, models.CorrelationPair{
				FieldX:      nameX,
				FieldY:      nameY,
				Coefficient: r,
				Strength:    correlationStrength(r),
				Direction:   correlationDirection(r),
				SampleSize:  len(xs),
			})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].Coefficient) > math.Abs(pairs[j].Coefficient)
	})
	return pairs
}

// correlationStrength 相関係数の絶対値から強さのラベルを決定
func correlationStrength(r float64) string {
	absR := math.Abs(r)
	if absR >= 0.7 {
		return "strong"
	}
	if absR >= 0.5 {
		return "moderate"
	}
	return "weak"
}

// correlationDirection 相関の向きのラベルを決定
func correlationDirection(r float64) string {
	if r < 0 {
		return "negative"
	}
	return "positive"
}
