package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dashlens-engine/pkg/models"
)

// ColumnMatcher テーブル間の列対応を判定する戦略。
// 既定はヒューリスティックな名前照合だが、より厳密な実装に差し替えられる
type ColumnMatcher interface {
	Match(sourceColumn, targetColumn string) bool
}

// NameMatcher 正規化した列名による既定のマッチャー
type NameMatcher struct{}

// normalizeName 小文字化してアンダースコア・空白・ハイフンを除去
func normalizeName(name string) string {
	n := strings.ToLower(name)
	n = strings.ReplaceAll(n, "_", "")
	n = strings.ReplaceAll(n, " ", "")
	n = strings.ReplaceAll(n, "-", "")
	return n
}

// Match 以下のいずれかで一致とみなす:
//  1. 正規化後の完全一致
//  2. 両方が "id" を含み、"id" を除いた残りが一致
//  3. 正規化後に一方が他方の接尾辞
func (m NameMatcher) Match(sourceColumn, targetColumn string) bool {
	a := normalizeName(sourceColumn)
	b := normalizeName(targetColumn)
	if a == "" || b == "" {
		return false
	}

	if a == b {
		return true
	}

	if strings.Contains(a, "id") && strings.Contains(b, "id") {
		if strings.ReplaceAll(a, "id", "") == strings.ReplaceAll(b, "id", "") {
			return true
		}
	}

	return strings.HasSuffix(a, b) || strings.HasSuffix(b, a)
}

// RelationService テーブル間のリレーション推定と結合を提供するサービス
type RelationService struct {
	matcher ColumnMatcher
	logger  *zap.Logger
}

// NewRelationService 新しいリレーションサービスを作成。
// matcher が nil の場合は NameMatcher を使用
func NewRelationService(matcher ColumnMatcher, logger *zap.Logger) *RelationService {
	if matcher == nil {
		matcher = NameMatcher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RelationService{
		matcher: matcher,
		logger:  logger,
	}
}

// DetectRelations 全テーブルペア×全列ペアを走査し、新規リレーションを返す。
// 既存リレーション（向きが逆のものを含む）と重複するペアはスキップする。
// テーブル追加時に2テーブル以上あれば呼び出し側が再実行する想定
func (rs *RelationService) DetectRelations(sources []models.DataSource, existing []models.DataRelation) []models.DataRelation {
	if len(sources) < 2 {
		return nil
	}

	known := append([]models.DataRelation{}, existing...)
	var detected []models.DataRelation

	for i := 0; i < len(sources); i++ {
		for j := i + 1; j < len(sources); j++ {
			src := sources[i]
			tgt := sources[j]

			for _, srcCol := range src.Schema {
				for _, tgtCol := range tgt.Schema {
					if !rs.matcher.Match(srcCol.Name, tgtCol.Name) {
						continue
					}
					if hasEquivalentRelation(known, src.ID, tgt.ID, srcCol.Name, tgtCol.Name) {
						continue
					}

					relation := models.DataRelation{
						ID:           uuid.New().String(),
						SourceID:     src.ID,
						TargetID:     tgt.ID,
						SourceColumn: srcCol.Name,
						TargetColumn: tgtCol.Name,
						Cardinality:  classifyCardinality(src.Data, tgt.Data, srcCol.Name, tgtCol.Name),
					}
					detected = append(detected, relation)
					known = append(known, relation)
				}
			}
		}
	}

	rs.logger.Info("🔗 リレーション推定完了",
		zap.Int("tables", len(sources)),
		zap.Int("detected", len(detected)))

	return detected
}

// CreateManualRelation 手動接続によるリレーションを作成する。
// 名前照合は行わず、ユーザー確認待ちとして one-to-many を仮設定する
func (rs *RelationService) CreateManualRelation(source, target models.DataSource, sourceColumn, targetColumn string) (models.DataRelation, error) {
	if source.Schema.Column(sourceColumn) == nil {
		return models.DataRelation{}, fmt.Errorf("列 %s がテーブル %s に存在しません", sourceColumn, source.Name)
	}
	if target.Schema.Column(targetColumn) == nil {
		return models.DataRelation{}, fmt.Errorf("列 %s がテーブル %s に存在しません", targetColumn, target.Name)
	}

	return models.DataRelation{
		ID:            uuid.New().String(),
		SourceID:      source.ID,
		TargetID:      target.ID,
		SourceColumn:  sourceColumn,
		TargetColumn:  targetColumn,
		Cardinality:   models.OneToMany,
		IsManualMatch: true,
	}, nil
}

// RecomputeCardinality ユニーク数の変化後にカーディナリティを再分類する。
// スキーマの unique_count は信用せず、実データから数え直す
func (rs *RelationService) RecomputeCardinality(source, target models.DataSource, relation models.DataRelation) models.Cardinality {
	return classifyCardinality(source.Data, target.Data, relation.SourceColumn, relation.TargetColumn)
}

// hasEquivalentRelation 同一の列ペアが（向きを問わず）既に登録済みか
func hasEquivalentRelation(relations []models.DataRelation, sourceID, targetID, sourceColumn, targetColumn string) bool {
	for _, r := range relations {
		if r.SourceID == sourceID && r.TargetID == targetID &&
			r.SourceColumn == sourceColumn && r.TargetColumn == targetColumn {
			return true
		}
		if r.SourceID == targetID && r.TargetID == sourceID &&
			r.SourceColumn == targetColumn && r.TargetColumn == sourceColumn {
			return true
		}
	}
	return false
}

// classifyCardinality 両列のユニーク性からカーディナリティを分類
func classifyCardinality(sourceData, targetData models.Dataset, sourceColumn, targetColumn string) models.Cardinality {
	sourceUnique := len(sourceData) > 0 && distinctCount(sourceData, sourceColumn) == len(sourceData)
	targetUnique := len(targetData) > 0 && distinctCount(targetData, targetColumn) == len(targetData)

	switch {
	case sourceUnique && targetUnique:
		return models.OneToOne
	case !sourceUnique && !targetUnique:
		return models.ManyToMany
	case sourceUnique:
		return models.OneToMany
	default:
		return models.ManyToOne
	}
}

// MergeDataSources リレーションに沿って左外部結合した新しい DataSource を返す。
// 入力は変更しない。マッチしないソース行はそのまま残し、ターゲット側の列は付与しない。
// ソース側と衝突するターゲット列は「正規化したテーブル名_列名」にリネームする
func (rs *RelationService) MergeDataSources(source, target models.DataSource, relation models.DataRelation) (models.DataSource, error) {
	if source.Schema.Column(relation.SourceColumn) == nil {
		return models.DataSource{}, fmt.Errorf("結合列 %s がテーブル %s に存在しません", relation.SourceColumn, source.Name)
	}
	if target.Schema.Column(relation.TargetColumn) == nil {
		return models.DataSource{}, fmt.Errorf("結合列 %s がテーブル %s に存在しません", relation.TargetColumn, target.Name)
	}

	// ソース列名の集合（衝突検出用）
	sourceColumns := make(map[string]struct{}, len(source.Schema))
	columnOrder := make([]string, 0, len(source.Schema)+len(target.Schema))
	for _, col := range source.Schema {
		sourceColumns[col.Name] = struct{}{}
		columnOrder = append(columnOrder, col.Name)
	}

	// ターゲット列の出力名を決定
	prefix := normalizeName(target.Name)
	targetRename := make(map[string]string, len(target.Schema))
	for _, col := range target.Schema {
		outName := col.Name
		if _, collides := sourceColumns[col.Name]; collides {
			outName = prefix + "_" + col.Name
		}
		targetRename[col.Name] = outName
		columnOrder = append(columnOrder, outName)
	}

	// ターゲット行を結合キーで索引化
	lookup := make(map[string][]models.Record, len(target.Data))
	for _, row := range target.Data {
		key := models.AsString(row[relation.TargetColumn])
		lookup[key] = append(lookup[key], row)
	}

	merged := make(models.Dataset, 0, len(source.Data))
	for _, srcRow := range source.Data {
		key := models.AsString(srcRow[relation.SourceColumn])
		matches := lookup[key]

		if len(matches) == 0 {
			// 左外部結合: マッチしなくてもソース行は保持する
			merged = append(merged, copyRecord(srcRow))
			continue
		}

		// 複数マッチは直積で展開
		for _, tgtRow := range matches {
			row := copyRecord(srcRow)
			for name, value := range tgtRow {
				outName, ok := targetRename[name]
				if !ok {
					outName = name
				}
				row[outName] = value
			}
			merged = append(merged, row)
		}
	}

	result := models.DataSource{
		ID:     uuid.New().String(),
		Name:   fmt.Sprintf("%s_%s", source.Name, target.Name),
		Data:   merged,
		Schema: BuildSchema(merged, columnOrder),
	}

	rs.logger.Info("✅ テーブル結合完了",
		zap.String("source", source.Name),
		zap.String("target", target.Name),
		zap.Int("rows", len(merged)))

	return result, nil
}

// copyRecord 入力を変更しないためのシャローコピー
func copyRecord(row models.Record) models.Record {
	out := make(models.Record, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
