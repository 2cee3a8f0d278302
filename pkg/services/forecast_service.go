package services

import (
	"math"
	"time"

	"go.uber.org/zap"

	"dashlens-engine/pkg/models"
)

// forecastFallbackInterval 履歴から間隔を推定できない場合のサンプリング間隔（30日）
const forecastFallbackInterval = 30 * 24 * time.Hour

// GenerateForecast 回帰ベースの時系列予測を実行する。
// horizon に 0 を指定すると設定のデフォルト期間（6）を使用。
// 履歴が3点未満の場合はエラーではなく「空の予測」を返す
func (s *AnalyticsService) GenerateForecast(data models.Dataset, dateField, valueField string, horizon int) models.Forecast {
	if horizon <= 0 {
		horizon = s.cfg.ForecastHorizon
	}

	series := extractDatedValues(data, dateField, valueField)

	historical := make([]models.DataPoint, 0, len(series))
	for _, dv := range series {
		historical = append(historical, models.DataPoint{
			Date:  dv.date.Format("2006-01-02"),
			Value: dv.value,
		})
	}

	// データ不足時の終端状態。例外ではなく定義済みの空予測を返す
	if len(series) < 3 {
		s.logger.Info("⚠️ 予測に必要な履歴が不足しています",
			zap.Int("points", len(series)),
			zap.String("value_field", valueField))
		return models.Forecast{
			Historical: historical,
			Predicted:  []models.DataPoint{},
			Confidence: models.ConfidenceBand{Upper: []float64{}, Lower: []float64{}},
			Metrics:    models.ForecastMetrics{Trend: "stable"},
		}
	}

	n := len(series)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, dv := range series {
		xs[i] = float64(i)
		ys[i] = dv.value
	}

	reg := LinearRegression(xs, ys)

	// 残差の標準偏差（予測の不確実性）
	residuals := make([]float64, n)
	for i := range xs {
		predicted := reg.Slope*xs[i] + reg.Intercept
		residuals[i] = ys[i] - predicted
	}
	residualStdDev := StdDev(residuals)

	// サンプリング間隔は先頭2点の間隔から推定（取れない場合は30日）
	interval := series[1].date.Sub(series[0].date)
	if interval <= 0 {
		interval = forecastFallbackInterval
	}

	// OLS 予測区間の形状: 履歴の中心から離れるほど幅が広がる
	meanX := Mean(xs)
	var sxx float64
	for _, x := range xs {
		dx := x - meanX
		sxx += dx * dx
	}

	predicted := make([]models.DataPoint, 0, horizon)
	upper := make([]float64, 0, horizon)
	lower := make([]float64, 0, horizon)
	lastDate := series[n-1].date

	for i := 1; i <= horizon; i++ {
		x := float64(n - 1 + i)
		value := math.Max(0, reg.Slope*x+reg.Intercept)

		shape := 1.0
		if sxx > 0 {
			dx := x - meanX
			shape = math.Sqrt(1 + 1/float64(n) + dx*dx/sxx)
		}
		margin := 1.96 * residualStdDev * shape * (1 + float64(i)*0.1)

		predicted = append(predicted, models.DataPoint{
			Date:  lastDate.Add(interval * time.Duration(i)).Format("2006-01-02"),
			Value: value,
		})
		upper = append(upper, math.Max(0, value+margin))
		lower = append(lower, math.Max(0, value-margin))
	}

	trend := "stable"
	if reg.Slope > 0.01 {
		trend = "increasing"
	} else if reg.Slope < -0.01 {
		trend = "decreasing"
	}

	// 初期値から最終値までの期間あたり平均変化率（%）
	growthRate := 0.0
	first := series[0].value
	last := series[n-1].value
	if first != 0 && n > 1 {
		growthRate = (last - first) / first * 100 / float64(n-1)
	}

	return models.Forecast{
		Historical: historical,
		Predicted:  predicted,
		Confidence: models.ConfidenceBand{Upper: upper, Lower: lower},
		Metrics: models.ForecastMetrics{
			Trend:      trend,
			GrowthRate: growthRate,
			Accuracy:   clamp01(reg.RSquared),
		},
	}
}
