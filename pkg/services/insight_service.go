package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dashlens-engine/pkg/models"
)

// 洞察パイプラインの外部契約となる閾値。テスト互換性のため変更してはならない
const (
	insightSummaryColumns    = 5   // サマリー対象の数値列数
	insightAnomalyColumns    = 3   // 異常検知対象の数値列数
	insightTrendColumns      = 3   // トレンド検出対象の数値列数
	insightTrendMinStrength  = 0.3 // トレンド洞察を出す最小 R²
	insightCorrelationLimit  = 3   // 相関洞察の最大件数
	insightCorrelationCutoff = 0.6 // 相関洞察の閾値
	insightPatternColumns    = 2   // トップパフォーマー検出対象の数値列数
	insightPatternMeanFactor = 2.0 // 平均の何倍で「突出」とみなすか
	insightAnomalyWarnCount  = 3   // 異常件数がこれを超えたら warning
	confidenceAnomalyInsight = 0.85
	confidencePatternInsight = 0.8
)

// severityRank 深刻度の表示順（小さいほど先頭）
var severityRank = map[models.InsightSeverity]int{
	models.SeverityCritical: 0,
	models.SeverityWarning:  1,
	models.SeveritySuccess:  2,
	models.SeverityInfo:     3,
}

// GenerateInsights データセットとスキーマから洞察リストを生成する決定的パイプライン。
// 洞察は毎回全件を再生成する（増分更新はしない）
func (s *AnalyticsService) GenerateInsights(data models.Dataset, schema models.Schema) []models.Insight {
	var insights []models.Insight

	numericCols := schema.NumericColumns()

	// 1. 数値列のサマリー（先頭5列まで）
	insights = append(insights, s.summaryInsights(data, numericCols)...)

	// 2. 異常検知（先頭3列まで）
	insights = append(insights, s.anomalyInsights(data, numericCols)...)

	// 3. 日付列がある場合のみトレンド検出（先頭3列まで）
	if dateCol := findDateColumn(schema); dateCol != "" {
		insights = append(insights, s.trendInsights(data, dateCol, numericCols)...)
	}

	// 4. 数値列が2つ以上ある場合は相関スキャン（上位3ペアまで）
	if len(numericCols) >= 2 {
		insights = append(insights, s.correlationInsights(data, schema)...)
	}

	// 5. トップパフォーマーの検出（先頭2列まで）
	insights = append(insights, s.patternInsights(data, schema, numericCols)...)

	// 6. 深刻度 → 信頼度の順で整列
	sort.SliceStable(insights, func(i, j int) bool {
		ri, rj := severityRank[insights[i].Severity], severityRank[insights[j].Severity]
		if ri != rj {
			return ri < rj
		}
		return insights[i].Confidence > insights[j].Confidence
	})

	s.logger.Info("✅ 洞察生成完了",
		zap.Int("insights", len(insights)),
		zap.Int("rows", len(data)),
		zap.Int("numeric_columns", len(numericCols)))

	return insights
}

// findDateColumn datetime 型、または名前に date / 日付 を含む列を探す
func findDateColumn(schema models.Schema) string {
	for _, col := range schema {
		if col.Type == models.ColumnDatetime {
			return col.Name
		}
	}
	for _, col := range schema {
		lower := strings.ToLower(col.Name)
		if strings.Contains(lower, "date") || strings.Contains(col.Name, "日付") {
			return col.Name
		}
	}
	return ""
}

func (s *AnalyticsService) summaryInsights(data models.Dataset, numericCols []models.Column) []models.Insight {
	var insights []models.Insight
	for i, col := range numericCols {
		if i >= insightSummaryColumns {
			break
		}
		values := data.NumericColumn(col.Name)
		if len(values) == 0 {
			continue
		}

		sum := 0.0
		min := values[0]
		max := values[0]
		for _, v := range values {
			sum += v
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		mean := sum / float64(len(values))

		insights = append(insights, models.Insight{
			ID:       uuid.New().String(),
			Type:     models.InsightSummary,
			Severity: models.SeverityInfo,
			Title:    fmt.Sprintf("「%s」の概況", col.Name),
			Description: fmt.Sprintf("合計 %.2f、平均 %.2f、最小 %.2f、最大 %.2f（%d件）",
				sum, mean, min, max, len(values)),
			Metric:        col.Name,
			Value:         sum,
			RelatedFields: []string{col.Name},
			Confidence:    1,
		})
	}
	return insights
}

func (s *AnalyticsService) anomalyInsights(data models.Dataset, numericCols []models.Column) []models.Insight {
	var insights []models.Insight
	for i, col := range numericCols {
		if i >= insightAnomalyColumns {
			break
		}
		values := data.NumericColumn(col.Name)
		anomalies := filterAnomalies(s.DetectAnomalies(values, 0))
		if len(anomalies) == 0 {
			continue
		}

		severity := models.SeverityInfo
		if len(anomalies) > insightAnomalyWarnCount {
			severity = models.SeverityWarning
		}

		extreme := mostExtremeAnomaly(anomalies)
		insights = append(insights, models.Insight{
			ID:       uuid.New().String(),
			Type:     models.InsightAnomaly,
			Severity: severity,
			Title:    fmt.Sprintf("「%s」に外れ値を検出", col.Name),
			Description: fmt.Sprintf("%d件の外れ値を検出しました。最も顕著な値は %.2f（Zスコア %.2f）です",
				len(anomalies), extreme.Value, extreme.ZScore),
			Metric:        col.Name,
			Value:         extreme.Value,
			RelatedFields: []string{col.Name},
			Confidence:    confidenceAnomalyInsight,
		})
	}
	return insights
}

func (s *AnalyticsService) trendInsights(data models.Dataset, dateCol string, numericCols []models.Column) []models.Insight {
	var insights []models.Insight
	for i, col := range numericCols {
		if i >= insightTrendColumns {
			break
		}
		trend := s.DetectTrend(data, dateCol, col.Name)
		if trend.Strength <= insightTrendMinStrength {
			continue
		}

		var severity models.InsightSeverity
		var label string
		switch trend.Direction {
		case "increasing":
			severity = models.SeveritySuccess
			label = "増加"
		case "decreasing":
			severity = models.SeverityWarning
			label = "減少"
		default:
			severity = models.SeverityInfo
			label = "横ばい"
		}

		insights = append(insights, models.Insight{
			ID:       uuid.New().String(),
			Type:     models.InsightTrend,
			Severity: severity,
			Title:    fmt.Sprintf("「%s」は%s傾向", col.Name, label),
			Description: fmt.Sprintf("期間全体で %.1f%% の変化（傾き %.4f、R² %.2f）",
				trend.ChangePercent, trend.Slope, trend.Strength),
			Metric:        col.Name,
			ChangePercent: trend.ChangePercent,
			RelatedFields: []string{dateCol, col.Name},
			Confidence:    clamp01(trend.Strength),
		})
	}
	return insights
}

func (s *AnalyticsService) correlationInsights(data models.Dataset, schema models.Schema) []models.Insight {
	pairs := s.ScanCorrelations(data, schema, insightCorrelationCutoff)
	var insights []models.Insight
	for i, pair := range pairs {
		if i >= insightCorrelationLimit {
			break
		}

		label := "正の"
		if pair.Direction == "negative" {
			label = "負の"
		}
		strengthLabel := "中程度の"
		if pair.Strength == "strong" {
			strengthLabel = "強い"
		}

		insights = append(insights, models.Insight{
			ID:       uuid.New().String(),
			Type:     models.InsightCorrelation,
			Severity: models.SeverityInfo,
			Title:    fmt.Sprintf("「%s」と「%s」に相関", pair.FieldX, pair.FieldY),
			Description: fmt.Sprintf("%s%s相関が見られます（相関係数 %.2f、%d件）",
				strengthLabel, label, pair.Coefficient, pair.SampleSize),
			Value:         pair.Coefficient,
			RelatedFields: []string{pair.FieldX, pair.FieldY},
			Confidence:    clamp01(absFloat(pair.Coefficient)),
		})
	}
	return insights
}

func (s *AnalyticsService) patternInsights(data models.Dataset, schema models.Schema, numericCols []models.Column) []models.Insight {
	labelCol := firstLabelColumn(schema)

	var insights []models.Insight
	for i, col := range numericCols {
		if i >= insightPatternColumns {
			break
		}

		// 最大値とその行を特定（パースできた値のみが対象）
		maxValue := 0.0
		maxRow := -1
		var values []float64
		for rowIdx, row := range data {
			v, ok := models.AsNumber(row[col.Name])
			if !ok {
				continue
			}
			values = append(values, v)
			if maxRow == -1 || v > maxValue {
				maxValue = v
				maxRow = rowIdx
			}
		}
		if maxRow == -1 {
			continue
		}

		mean := Mean(values)
		if mean <= 0 || maxValue <= insightPatternMeanFactor*mean {
			continue
		}

		abovePercent := (maxValue - mean) / mean * 100
		performer := ""
		if labelCol != "" {
			performer = models.AsString(data[maxRow][labelCol])
		}

		description := fmt.Sprintf("最大値 %.2f は平均を %.1f%% 上回っています", maxValue, abovePercent)
		if performer != "" {
			description = fmt.Sprintf("「%s」が最大値 %.2f を記録し、平均を %.1f%% 上回っています",
				performer, maxValue, abovePercent)
		}

		insights = append(insights, models.Insight{
			ID:            uuid.New().String(),
			Type:          models.InsightPattern,
			Severity:      models.SeveritySuccess,
			Title:         fmt.Sprintf("「%s」に突出した値", col.Name),
			Description:   description,
			Metric:        col.Name,
			Value:         maxValue,
			ChangePercent: abovePercent,
			RelatedFields: []string{col.Name},
			Confidence:    confidencePatternInsight,
		})
	}
	return insights
}

// firstLabelColumn トップパフォーマーの帰属先となる最初のテキスト/カテゴリ列
func firstLabelColumn(schema models.Schema) string {
	for _, col := range schema {
		if col.Type == models.ColumnText || col.Type == models.ColumnCategorical {
			return col.Name
		}
	}
	return ""
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
