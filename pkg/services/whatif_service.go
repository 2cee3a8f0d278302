package services

import (
	"fmt"

	"go.uber.org/zap"

	"dashlens-engine/pkg/models"
)

// defaultElasticity 弾力性が未指定（nil）の場合の既定値。
// 乱数ではなく 1.0 の固定値を使う（呼び出し側で上書き可能）
const defaultElasticity = 1.0

// SimulateScenario 弾力性モデルによる What-If シナリオを実行する。
// 対象フィールドの平均値を基準に percentChange を適用し、
// 各影響フィールドへ「変化率 × 弾力性」を線形に伝播させる。
// 対象フィールドがデータに存在しない場合は空のシナリオを返す
func (s *AnalyticsService) SimulateScenario(data models.Dataset, targetField string, percentChange float64, impacts []models.ElasticityInput) models.WhatIfScenario {
	baseline := Mean(data.NumericColumn(targetField))
	modified := baseline * (1 + percentChange/100)

	scenario := models.WhatIfScenario{
		Name: fmt.Sprintf("%s %+.1f%%", targetField, percentChange),
		Description: fmt.Sprintf("「%s」を %.1f%% 変化させた場合の影響シミュレーション",
			targetField, percentChange),
		BaselineValue: baseline,
		ModifiedValue: modified,
		PercentChange: percentChange,
	}

	if baseline == 0 {
		s.logger.Info("⚠️ 対象フィールドの基準値が取得できませんでした",
			zap.String("target_field", targetField))
		return scenario
	}

	for _, impact := range impacts {
		if impact.Field == targetField {
			continue
		}

		elasticity := defaultElasticity
		if impact.Elasticity != nil {
			elasticity = *impact.Elasticity
		}

		fieldBaseline := Mean(data.NumericColumn(impact.Field))
		fieldChangePercent := percentChange * elasticity
		projected := fieldBaseline * (1 + fieldChangePercent/100)

		scenario.ImpactedMetrics = append(scenario.ImpactedMetrics, models.ImpactedMetric{
			Metric:        impact.Field,
			Baseline:      fieldBaseline,
			Projected:     projected,
			Change:        projected - fieldBaseline,
			ChangePercent: fieldChangePercent,
		})
	}

	return scenario
}
