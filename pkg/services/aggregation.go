package services

import (
	"sort"

	"dashlens-engine/pkg/models"
)

const (
	defaultMaxGroups = 10
	othersLabel      = "Others"
)

// 集計方法
const (
	AggSum   = "sum"
	AggAvg   = "avg"
	AggCount = "count"
	AggMin   = "min"
	AggMax   = "max"
)

// AggregateForChart カテゴリ列でグルーピングして数値列を集計する。
// 結果は値の降順で、maxGroups-1 を超えるグループは "Others" に畳み込む。
// Others の値は溢れたグループの値の合計。未知の集計方法は sum として扱う
func AggregateForChart(data models.Dataset, categoryField, valueField, aggregation string, maxGroups int) []models.ChartGroup {
	if maxGroups <= 0 {
		maxGroups = defaultMaxGroups
	}

	groupValues := make(map[string][]float64)
	groupCounts := make(map[string]int)
	order := make([]string, 0)

	for _, row := range data {
		label := models.AsString(row[categoryField])
		if label == "" {
			continue
		}
		if _, exists := groupCounts[label]; !exists {
			order = append(order, label)
		}
		groupCounts[label]++
		if v, ok := models.AsNumber(row[valueField]); ok {
			groupValues[label] = append(groupValues[label], v)
		}
	}

	groups := make([]models.ChartGroup, 0, len(order))
	for _, label := range order {
		groups = append(groups, models.ChartGroup{
			Label: label,
			Value: reduceValues(groupValues[label], groupCounts[label], aggregation),
			Count: groupCounts[label],
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Value > groups[j].Value
	})

	// 上位 maxGroups-1 件を残し、残りを Others に集約
	if len(groups) > maxGroups {
		var overflowValue float64
		var overflowCount int
		for _, g := range groups[maxGroups-1:] {
			overflowValue += g.Value
			overflowCount += g.Count
		}
		groups = append(groups[:maxGroups-1], models.ChartGroup{
			Label: othersLabel,
			Value: overflowValue,
			Count: overflowCount,
		})
	}

	var total float64
	for _, g := range groups {
		total += g.Value
	}
	if total != 0 {
		for i := range groups {
			groups[i].Share = groups[i].Value / total
		}
	}

	return groups
}

// reduceValues 集計方法に応じて値リストを1値に縮約
func reduceValues(values []float64, count int, aggregation string) float64 {
	switch aggregation {
	case AggCount:
		return float64(count)
	case AggAvg:
		return Mean(values)
	case AggMin:
		if len(values) == 0 {
			return 0
		}
		min := values[0]
		for _, v := range values {
			if v < min {
				min = v
			}
		}
		return min
	case AggMax:
		if len(values) == 0 {
			return 0
		}
		max := values[0]
		for _, v := range values {
			if v > max {
				max = v
			}
		}
		return max
	default:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum
	}
}
