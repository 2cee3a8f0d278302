package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashlens-engine/pkg/models"
)

func TestAggregateForChartSum(t *testing.T) {
	data := models.Dataset{
		{"region": "east", "sales": 100.0},
		{"region": "west", "sales": 300.0},
		{"region": "east", "sales": 50.0},
		{"region": "north", "sales": 200.0},
	}

	groups := AggregateForChart(data, "region", "sales", AggSum, 10)
	require.Len(t, groups, 3)

	// 値の降順で並ぶ
	assert.Equal(t, "west", groups[0].Label)
	assert.Equal(t, 300.0, groups[0].Value)
	assert.Equal(t, "north", groups[1].Label)
	assert.Equal(t, "east", groups[2].Label)
	assert.Equal(t, 150.0, groups[2].Value)
	assert.Equal(t, 2, groups[2].Count)

	// 構成比の合計は 1
	var shareTotal float64
	for _, g := range groups {
		shareTotal += g.Share
	}
	assert.InDelta(t, 1.0, shareTotal, 1e-9)
}

func TestAggregateForChartOthersBucket(t *testing.T) {
	// 12 カテゴリを maxGroups=5 に畳み込む
	var data models.Dataset
	var total float64
	for i := 1; i <= 12; i++ {
		v := float64(i * 10)
		total += v
		data = append(data, models.Record{
			"category": fmt.Sprintf("c%02d", i),
			"amount":   v,
		})
	}

	groups := AggregateForChart(data, "category", "amount", AggSum, 5)
	require.Len(t, groups, 5)

	// 上位 4 件＋Others
	assert.Equal(t, "c12", groups[0].Label)
	assert.Equal(t, 120.0, groups[0].Value)
	assert.Equal(t, othersLabel, groups[4].Label)
	assert.Equal(t, 8, groups[4].Count)

	// Others は溢れ分の合計なので全体の和は保存される
	var sum float64
	for _, g := range groups {
		sum += g.Value
	}
	assert.InDelta(t, total, sum, 1e-9)
}

func TestAggregateForChartAvgAndCount(t *testing.T) {
	data := models.Dataset{
		{"region": "east", "sales": 10.0},
		{"region": "east", "sales": 20.0},
		{"region": "west", "sales": 30.0},
	}

	avg := AggregateForChart(data, "region", "sales", AggAvg, 10)
	require.Len(t, avg, 2)
	assert.Equal(t, "west", avg[0].Label)
	assert.Equal(t, 30.0, avg[0].Value)
	assert.Equal(t, 15.0, avg[1].Value)

	count := AggregateForChart(data, "region", "sales", AggCount, 10)
	assert.Equal(t, "east", count[0].Label)
	assert.Equal(t, 2.0, count[0].Value)
}

func TestAggregateForChartSkipsEmptyLabels(t *testing.T) {
	data := models.Dataset{
		{"region": "east", "sales": 10.0},
		{"region": nil, "sales": 999.0},
		{"sales": 999.0},
	}

	groups := AggregateForChart(data, "region", "sales", AggSum, 10)
	require.Len(t, groups, 1)
	assert.Equal(t, "east", groups[0].Label)
}

func TestAggregateForChartEmpty(t *testing.T) {
	groups := AggregateForChart(models.Dataset{}, "region", "sales", AggSum, 10)
	assert.Empty(t, groups)
}
