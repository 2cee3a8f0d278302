package services

import (
	"dashlens-engine/pkg/models"
)

// スキーマ推定。結合結果のスキーマ再推定と、ファイル取り込み時の初期推定で共用する。
// 列の役割（metric / dimension）はここで一度だけ分類し、各検出器は再推定しない。

const (
	schemaSampleLimit     = 5   // スキーマに保持するサンプル値の数
	schemaTypeRatio       = 0.8 // 型判定に必要なパース成功率
	schemaCategoricalMax  = 20  // これ以下のユニーク数はカテゴリとみなす
	schemaCategoricalFrac = 0.5 // またはユニーク率がこれ以下
)

// BuildSchema 列順を保ったままデータセットからスキーマを推定する
func BuildSchema(data models.Dataset, columnOrder []string) models.Schema {
	schema := make(models.Schema, 0, len(columnOrder))
	for _, name := range columnOrder {
		schema = append(schema, inferColumn(data, name))
	}
	return schema
}

// inferColumn 1列分の型・ユニーク数・サンプルを推定
func inferColumn(data models.Dataset, name string) models.Column {
	var numericCount, dateCount, nonNullCount int
	seen := make(map[string]struct{})
	var sample []interface{}

	for _, row := range data {
		v, ok := row[name]
		if !ok || v == nil {
			continue
		}
		nonNullCount++

		key := models.AsString(v)
		if _, exists := seen[key]; !exists {
			seen[key] = struct{}{}
			if len(sample) < schemaSampleLimit {
				sample = append(sample, v)
			}
		}

		if _, isNum := models.AsNumber(v); isNum {
			numericCount++
		} else if _, isDate := models.AsTime(v); isDate {
			dateCount++
		}
	}

	colType := models.ColumnText
	if nonNullCount > 0 {
		numericRatio := float64(numericCount) / float64(nonNullCount)
		dateRatio := float64(dateCount) / float64(nonNullCount)
		uniqueFrac := float64(len(seen)) / float64(nonNullCount)

		switch {
		case numericRatio >= schemaTypeRatio:
			colType = models.ColumnNumeric
		case dateRatio >= schemaTypeRatio:
			colType = models.ColumnDatetime
		case len(seen) <= schemaCategoricalMax || uniqueFrac <= schemaCategoricalFrac:
			colType = models.ColumnCategorical
		}
	}

	return models.Column{
		Name:        name,
		Type:        colType,
		IsMetric:    colType == models.ColumnNumeric,
		IsDimension: colType == models.ColumnCategorical || colType == models.ColumnDatetime,
		UniqueCount: len(seen),
		Sample:      sample,
	}
}

// distinctCount 指定列のユニーク値数を実データから数える。
// カーディナリティ分類はスキーマの値を信用せず、毎回ここで再計算する
func distinctCount(data models.Dataset, column string) int {
	seen := make(map[string]struct{}, len(data))
	for _, row := range data {
		if v, ok := row[column]; ok && v != nil {
			seen[models.AsString(v)] = struct{}{}
		}
	}
	return len(seen)
}
