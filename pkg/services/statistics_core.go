package services

import (
	"math"
	"sort"

	"dashlens-engine/pkg/models"
)

// 統計カーネル。全関数がトータル（例外を投げない）であることを保証する。
// 空配列・長さ不一致・分散ゼロはゼロ値で返し、呼び出し側で「データ不足」として扱う。

// Mean 平均値を計算
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev 母標準偏差を計算（N で割る。N-1 ではない）
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	sumSquaredDiff := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}
	return math.Sqrt(sumSquaredDiff / float64(len(values)))
}

// Percentile 線形補間によるパーセンタイルを計算（p は 0〜100）
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}

// Median 中央値を計算（偶数個の場合は中央2値の平均）
func Median(values []float64) float64 {
	return Percentile(values, 50)
}

// Correlation 2つのデータ系列のピアソン相関係数を計算。
// 長さ不一致・空・分散ゼロの場合はエラーではなく 0 を返す
func Correlation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}

	n := float64(len(x))
	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := 0; i < len(x); i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// LinearRegression 最小二乗法による単回帰を実行。
// R² は生の値を返す。残差分散が全分散を超える退化したフィットでは負になるが、
// クランプは利用側（予測エンジン）の責務とし、ここでは行わない
func LinearRegression(x, y []float64) models.RegressionResult {
	if len(x) != len(y) || len(x) == 0 {
		return models.RegressionResult{}
	}

	n := float64(len(x))
	var sumX, sumY, sumXY, sumX2 float64
	for i := 0; i < len(x); i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return models.RegressionResult{}
	}

	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssTotal, ssResidual float64
	for i := 0; i < len(x); i++ {
		predicted := slope*x[i] + intercept
		ssTotal += (y[i] - meanY) * (y[i] - meanY)
		ssResidual += (y[i] - predicted) * (y[i] - predicted)
	}

	rSquared := 0.0
	if ssTotal > 0 {
		rSquared = 1 - (ssResidual / ssTotal)
	}

	return models.RegressionResult{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  rSquared,
	}
}

// clamp01 R² などを信頼度として使う直前に [0,1] へ丸める
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
