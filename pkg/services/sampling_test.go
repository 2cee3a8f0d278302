package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashlens-engine/pkg/models"
)

func flatSeries(n int) []models.DataPoint {
	points := make([]models.DataPoint, n)
	for i := range points {
		points[i] = models.DataPoint{Date: fmt.Sprintf("p%03d", i), Value: float64(i)}
	}
	return points
}

func TestSampleSeriesIdentity(t *testing.T) {
	points := flatSeries(100)

	// 上限以下の入力はどの戦略でもそのまま返す
	for _, strategy := range []string{StrategyUniform, StrategyRandom, StrategyLTTB} {
		sampled := SampleSeries(points, 100, strategy)
		assert.Len(t, sampled, 100, strategy)
		assert.Equal(t, points, sampled, strategy)
	}
}

func TestSampleSeriesUniform(t *testing.T) {
	points := flatSeries(100)
	sampled := SampleSeries(points, 10, StrategyUniform)

	require.Len(t, sampled, 10)
	// 先頭と末尾は必ず残る
	assert.Equal(t, points[0], sampled[0])
	assert.Equal(t, points[99], sampled[9])
}

func TestSampleSeriesRandom(t *testing.T) {
	points := flatSeries(100)
	sampled := SampleSeries(points, 10, StrategyRandom)

	require.Len(t, sampled, 10)
	// サンプルは元系列の点のみで構成される
	original := make(map[string]bool, len(points))
	for _, p := range points {
		original[p.Date] = true
	}
	for _, p := range sampled {
		assert.True(t, original[p.Date])
	}
}

func TestSampleSeriesLTTB(t *testing.T) {
	// フラットな系列の中央にスパイクを1点だけ置く
	points := flatSeries(100)
	for i := range points {
		points[i].Value = 0
	}
	points[50].Value = 100

	sampled := SampleSeries(points, 12, StrategyLTTB)

	require.Len(t, sampled, 12)
	assert.Equal(t, points[0], sampled[0])
	assert.Equal(t, points[99], sampled[11])

	// 形状保存：スパイクは間引き後も残る
	found := false
	for _, p := range sampled {
		if p.Value == 100 {
			found = true
		}
	}
	assert.True(t, found, "スパイクが失われている")
}

func TestSampleSeriesLTTBTinyBudget(t *testing.T) {
	points := flatSeries(100)

	// 上限を超える点数は返さない（上限 1・2 の境界でも）
	one := SampleSeries(points, 1, StrategyLTTB)
	require.Len(t, one, 1)
	assert.Equal(t, points[0], one[0])

	two := SampleSeries(points, 2, StrategyLTTB)
	require.Len(t, two, 2)
	assert.Equal(t, points[0], two[0])
	assert.Equal(t, points[99], two[1])
}

func TestSampleSeriesUnknownStrategy(t *testing.T) {
	// 未知の戦略は uniform にフォールバック
	sampled := SampleSeries(flatSeries(100), 10, "something-else")
	assert.Len(t, sampled, 10)
	assert.Equal(t, 99.0, sampled[9].Value)
}
