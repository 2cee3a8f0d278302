package models

// Record represents a single flat row of tabular data.
// 値は number / string / date / null のいずれか（緩い型付け）
type Record map[string]interface{}

// Dataset is an ordered sequence of records.
// 並び順は挿入順。分析には無関係だが、予測では呼び出し側が日付順に整列させる
type Dataset []Record

// ColumnType classifies a column's inferred data type.
type ColumnType string

const (
	ColumnNumeric     ColumnType = "numeric"
	ColumnCategorical ColumnType = "categorical"
	ColumnDatetime    ColumnType = "datetime"
	ColumnText        ColumnType = "text"
)

// Column describes a single column of a dataset.
type Column struct {
	Name        string        `json:"name"`
	Type        ColumnType    `json:"type"`
	IsMetric    bool          `json:"is_metric"`    // 集計対象となる数値列
	IsDimension bool          `json:"is_dimension"` // グルーピングに使える列
	UniqueCount int           `json:"unique_count"`
	Sample      []interface{} `json:"sample,omitempty"`
}

// Schema is an ordered list of columns, unique by name.
type Schema []Column

// Column returns the column with the given name, or nil if absent.
func (s Schema) Column(name string) *Column {
	for i := range s {
		if s[i].Name == name {
			return &s[i]
		}
	}
	return nil
}

// NumericColumns returns the columns typed numeric, in schema order.
func (s Schema) NumericColumns() []Column {
	var cols []Column
	for _, c := range s {
		if c.Type == ColumnNumeric {
			cols = append(cols, c)
		}
	}
	return cols
}

// DataSource bundles a dataset with its schema.
// エンジンは DataSource を変更しない。結合結果は新しい DataSource として返す
type DataSource struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Data   Dataset `json:"data"`
	Schema Schema  `json:"schema"`
}

// DataPoint is a single dated observation used by forecasting and sampling.
type DataPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// InsightType classifies a generated insight.
type InsightType string

const (
	InsightAnomaly        InsightType = "anomaly"
	InsightTrend          InsightType = "trend"
	InsightCorrelation    InsightType = "correlation"
	InsightPattern        InsightType = "pattern"
	InsightSummary        InsightType = "summary"
	InsightRecommendation InsightType = "recommendation"
)

// InsightSeverity ranks how urgent an insight is.
type InsightSeverity string

const (
	SeverityInfo     InsightSeverity = "info"
	SeverityWarning  InsightSeverity = "warning"
	SeverityCritical InsightSeverity = "critical"
	SeveritySuccess  InsightSeverity = "success"
)

// Insight is a single human-readable finding produced by the insight pipeline.
// 生成後は不変。更新時は全件を再生成する（差分更新の契約は持たない）
type Insight struct {
	ID            string          `json:"id"`
	Type          InsightType     `json:"type"`
	Severity      InsightSeverity `json:"severity"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Metric        string          `json:"metric,omitempty"`
	Value         float64         `json:"value,omitempty"`
	Change        float64         `json:"change,omitempty"`
	ChangePercent float64         `json:"change_percent,omitempty"`
	RelatedFields []string        `json:"related_fields"`
	Confidence    float64         `json:"confidence"` // 0〜1
}

// ConfidenceBand carries the upper/lower prediction interval per period.
type ConfidenceBand struct {
	Upper []float64 `json:"upper"`
	Lower []float64 `json:"lower"`
}

// ForecastMetrics summarizes the quality of a forecast.
type ForecastMetrics struct {
	Trend      string  `json:"trend"`       // "increasing" / "decreasing" / "stable"
	GrowthRate float64 `json:"growth_rate"` // 期間あたりの平均変化率（%）
	Accuracy   float64 `json:"accuracy"`    // R² を [0,1] にクランプした値
}

// Forecast is the result of a regression-based time projection.
type Forecast struct {
	Historical []DataPoint     `json:"historical"`
	Predicted  []DataPoint     `json:"predicted"`
	Confidence ConfidenceBand  `json:"confidence"`
	Metrics    ForecastMetrics `json:"metrics"`
}

// ImpactedMetric is one field's projected response in a what-if scenario.
type ImpactedMetric struct {
	Metric        string  `json:"metric"`
	Baseline      float64 `json:"baseline"`
	Projected     float64 `json:"projected"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// WhatIfScenario is the result of an elasticity-propagation simulation.
type WhatIfScenario struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	BaselineValue   float64          `json:"baseline_value"`
	ModifiedValue   float64          `json:"modified_value"`
	PercentChange   float64          `json:"percent_change"`
	ImpactedMetrics []ImpactedMetric `json:"impacted_metrics"`
}

// ElasticityInput names an impacted field and its assumed elasticity.
// Elasticity が nil の場合はデフォルト値（1.0）が適用される。
// 0 を明示すると「影響なし」として扱われる
type ElasticityInput struct {
	Field      string   `json:"field"`
	Elasticity *float64 `json:"elasticity,omitempty"`
}

// Cardinality describes the multiplicity between two joined columns.
type Cardinality string

const (
	OneToOne   Cardinality = "one-to-one"
	OneToMany  Cardinality = "one-to-many"
	ManyToOne  Cardinality = "many-to-one"
	ManyToMany Cardinality = "many-to-many"
)

// DataRelation links a column of one data source to a column of another.
// 意味的には対称だが、発見順（または手動接続の向き）で方向付きに保存される
type DataRelation struct {
	ID            string      `json:"id"`
	SourceID      string      `json:"source_id"`
	TargetID      string      `json:"target_id"`
	SourceColumn  string      `json:"source_column"`
	TargetColumn  string      `json:"target_column"`
	Cardinality   Cardinality `json:"cardinality"`
	IsManualMatch bool        `json:"is_manual_match"`
}

// RegressionResult represents the result of an OLS regression.
type RegressionResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"` // 生の値。退化したフィットでは負になり得る
}

// AnomalyPoint is a single value flagged (or not) by anomaly detection.
type AnomalyPoint struct {
	Index     int     `json:"index"`
	Value     float64 `json:"value"`
	ZScore    float64 `json:"z_score"`
	IsAnomaly bool    `json:"is_anomaly"`
}

// TrendResult is the outcome of trend detection over a dated series.
type TrendResult struct {
	Direction     string  `json:"direction"` // "increasing" / "decreasing" / "stable"
	Slope         float64 `json:"slope"`
	ChangePercent float64 `json:"change_percent"`
	Strength      float64 `json:"strength"` // R²
}

// SeasonalityResult is the outcome of monthly seasonality detection.
type SeasonalityResult struct {
	HasSeasonality bool               `json:"has_seasonality"`
	Confidence     float64            `json:"confidence"`
	MonthlyMeans   map[string]float64 `json:"monthly_means,omitempty"`
}

// CorrelationPair is one column pair reported by the correlation scan.
type CorrelationPair struct {
	FieldX      string  `json:"field_x"`
	FieldY      string  `json:"field_y"`
	Coefficient float64 `json:"coefficient"`
	Strength    string  `json:"strength"`  // "strong" / "moderate" / "weak"
	Direction   string  `json:"direction"` // "positive" / "negative"
	SampleSize  int     `json:"sample_size"`
}
