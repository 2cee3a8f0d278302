package services

import (
	"sort"
	"time"

	"dashlens-engine/pkg/models"
)

// slopeThreshold 傾きがこの値を超えたらトレンドありと判定する
const slopeThreshold = 0.05

// datedValue 日付でソート可能な1観測値
type datedValue struct {
	date  time.Time
	value float64
}

// extractDatedValues 日付と数値の両方がパースできた行のみを抽出し、日付昇順に整列
func extractDatedValues(data models.Dataset, dateField, valueField string) []datedValue {
	series := make([]datedValue, 0, len(data))
	for _, row := range data {
		t, okDate := models.AsTime(row[dateField])
		v, okValue := models.AsNumber(row[valueField])
		if okDate && okValue {
			series = append(series, datedValue{date: t, value: v})
		}
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].date.Before(series[j].date)
	})
	return series
}

// DetectTrend 日付順に整列した系列に対して回帰ベースのトレンド検出を実行。
// 行インデックス（0..n-1）を説明変数として回帰し、傾きの符号と大きさで分類する
func (s *AnalyticsService) DetectTrend(data models.Dataset, dateField, valueField string) models.TrendResult {
	series := extractDatedValues(data, dateField, valueField)
	if len(series) < 2 {
		return models.TrendResult{Direction: "stable"}
	}

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, dv := range series {
		xs[i] = float64(i)
		ys[i] = dv.value
	}

	reg := LinearRegression(xs, ys)

	direction := "stable"
	if reg.Slope > slopeThreshold {
		direction = "increasing"
	} else if reg.Slope < -slopeThreshold {
		direction = "decreasing"
	}

	first := series[0].value
	last := series[len(series)-1].value
	changePercent := 0.0
	if first != 0 {
		changePercent = (last - first) / first * 100
	}

	return models.TrendResult{
		Direction:     direction,
		Slope:         reg.Slope,
		ChangePercent: changePercent,
		Strength:      reg.RSquared,
	}
}

// DetectSeasonality 月次の変動係数による季節性検出。
// 12行以上かつ6ヶ月以上のデータがない場合は「季節性なし・信頼度0」を返す
func (s *AnalyticsService) DetectSeasonality(data models.Dataset, dateField, valueField string) models.SeasonalityResult {
	series := extractDatedValues(data, dateField, valueField)
	if len(series) < 12 {
		return models.SeasonalityResult{}
	}

	monthValues := make(map[time.Month][]float64)
	var all []float64
	for _, dv := range series {
		month := dv.date.Month()
		monthValues[month] = append(monthValues[month], dv.value)
		all = append(all, dv.value)
	}

	if len(monthValues) < 6 {
		return models.SeasonalityResult{}
	}

	monthlyMeans := make(map[string]float64, len(monthValues))
	means := make([]float64, 0, len(monthValues))
	for month, values := range monthValues {
		m := Mean(values)
		monthlyMeans[month.String()] = m
		means = append(means, m)
	}

	overallMean := Mean(all)
	if overallMean == 0 {
		return models.SeasonalityResult{MonthlyMeans: monthlyMeans}
	}

	// 月平均のばらつきを全体平均で正規化（変動係数）
	cv := StdDev(means) / overallMean

	return models.SeasonalityResult{
		HasSeasonality: cv > s.cfg.SeasonalityCVThreshold,
		Confidence:     clamp01(cv),
		MonthlyMeans:   monthlyMeans,
	}
}
