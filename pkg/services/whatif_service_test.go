package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashlens-engine/pkg/models"
)

func elasticity(v float64) *float64 {
	return &v
}

func TestSimulateScenario(t *testing.T) {
	svc := newTestService()

	data := models.Dataset{
		{"price": 100.0, "demand": 50.0, "revenue": 5000.0},
		{"price": 200.0, "demand": 30.0, "revenue": 6000.0},
		{"price": 300.0, "demand": 10.0, "revenue": 3000.0},
	}

	scenario := svc.SimulateScenario(data, "price", 10, []models.ElasticityInput{
		{Field: "demand", Elasticity: elasticity(-0.5)},
		{Field: "revenue"}, // 弾力性未指定 → 既定値 1.0
	})

	assert.InDelta(t, 200.0, scenario.BaselineValue, 1e-9)
	assert.InDelta(t, 220.0, scenario.ModifiedValue, 1e-9)
	assert.Equal(t, 10.0, scenario.PercentChange)
	require.Len(t, scenario.ImpactedMetrics, 2)

	// demand: 10% × 弾力性 -0.5 = -5%
	demand := scenario.ImpactedMetrics[0]
	assert.Equal(t, "demand", demand.Metric)
	assert.InDelta(t, 30.0, demand.Baseline, 1e-9)
	assert.InDelta(t, -5.0, demand.ChangePercent, 1e-9)
	assert.InDelta(t, 28.5, demand.Projected, 1e-9)
	assert.InDelta(t, -1.5, demand.Change, 1e-9)

	// revenue: 10% × 既定弾力性 1.0 = +10%
	revenue := scenario.ImpactedMetrics[1]
	assert.InDelta(t, 10.0, revenue.ChangePercent, 1e-9)
	assert.InDelta(t, 5133.333333, revenue.Projected, 1e-6)
}

func TestSimulateScenarioZeroElasticity(t *testing.T) {
	svc := newTestService()

	data := models.Dataset{
		{"price": 100.0, "rent": 800.0},
		{"price": 200.0, "rent": 1200.0},
	}

	// 明示的な 0 は既定値に化けず「影響なし」として扱われる
	scenario := svc.SimulateScenario(data, "price", 10, []models.ElasticityInput{
		{Field: "rent", Elasticity: elasticity(0)},
	})
	require.Len(t, scenario.ImpactedMetrics, 1)

	rent := scenario.ImpactedMetrics[0]
	assert.InDelta(t, 1000.0, rent.Baseline, 1e-9)
	assert.InDelta(t, 1000.0, rent.Projected, 1e-9)
	assert.Equal(t, 0.0, rent.ChangePercent)
	assert.Equal(t, 0.0, rent.Change)
}

func TestSimulateScenarioSkipsTargetField(t *testing.T) {
	svc := newTestService()

	data := models.Dataset{
		{"price": 100.0},
		{"price": 200.0},
	}

	// 対象フィールド自身は影響リストから除外される
	scenario := svc.SimulateScenario(data, "price", 20, []models.ElasticityInput{
		{Field: "price", Elasticity: elasticity(2)},
	})
	assert.Empty(t, scenario.ImpactedMetrics)
	assert.InDelta(t, 180.0, scenario.ModifiedValue, 1e-9)
}

func TestSimulateScenarioMissingTarget(t *testing.T) {
	svc := newTestService()

	data := models.Dataset{
		{"price": 100.0},
	}

	// 存在しないフィールドは基準値 0 の空シナリオに退化する
	scenario := svc.SimulateScenario(data, "missing", 10, []models.ElasticityInput{
		{Field: "price"},
	})
	assert.Equal(t, 0.0, scenario.BaselineValue)
	assert.Equal(t, 0.0, scenario.ModifiedValue)
	assert.Empty(t, scenario.ImpactedMetrics)
}
