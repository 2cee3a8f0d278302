package models

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts covers the date formats the engine accepts.
// ファイル由来のデータは書式が揺れるため、複数フォーマットを順に試す
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// AsNumber reports whether a cell value is numeric and returns it as float64.
// 数値判定はここに一元化する。各検出器で個別にパースしてはならない
func AsNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(n, ",", ""))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsTime reports whether a cell value parses as a date.
func AsTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// AsString renders a cell value as a string for grouping and join keys.
func AsString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case time.Time:
		return s.Format("2006-01-02")
	default:
		return ""
	}
}

// NumericColumn extracts the numeric values of one column, skipping
// cells that do not parse. 欠損・不正値は例外ではなく除外で扱う
func (d Dataset) NumericColumn(field string) []float64 {
	values := make([]float64, 0, len(d))
	for _, row := range d {
		if f, ok := AsNumber(row[field]); ok {
			values = append(values, f)
		}
	}
	return values
}
