// Package loader はアップロードされた表形式ファイル（xlsx / csv）を
// 分析エンジンが扱う DataSource に変換する取り込みアダプター。
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"dashlens-engine/pkg/models"
	"dashlens-engine/pkg/services"
)

// FromReader ファイル名の拡張子に応じて xlsx または csv を読み込み、
// スキーマを推定した DataSource を返す
func FromReader(r io.Reader, fileName string) (*models.DataSource, error) {
	var rows [][]string
	var err error

	lower := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		rows, err = readXLSX(r)
	case strings.HasSuffix(lower, ".csv"):
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("サポートされていないファイル形式です: %s（.xlsx または .csv を指定してください）", fileName)
	}
	if err != nil {
		return nil, err
	}

	return FromRows(tableName(fileName), rows)
}

// FromRows ヘッダー行＋データ行から DataSource を構築する
func FromRows(name string, rows [][]string) (*models.DataSource, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("ヘッダー行と少なくとも1行のデータが必要です")
	}

	header := rows[0]
	data := make(models.Dataset, 0, len(rows)-1)

	for _, row := range rows[1:] {
		record := make(models.Record, len(header))
		for i, colName := range header {
			if i < len(row) && strings.TrimSpace(row[i]) != "" {
				record[colName] = row[i]
			}
		}
		data = append(data, record)
	}

	return &models.DataSource{
		ID:     uuid.New().String(),
		Name:   name,
		Data:   data,
		Schema: services.BuildSchema(data, header),
	}, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excelファイルの読み込みに失敗しました: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("excelシートの行取得に失敗しました: %w", err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csvファイルの解析に失敗しました: %w", err)
	}
	return rows, nil
}

// tableName 拡張子を除いたファイル名をテーブル名として使う
func tableName(fileName string) string {
	name := fileName
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}
