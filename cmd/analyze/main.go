package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	config "dashlens-engine/configs"
	"dashlens-engine/pkg/loader"
	"dashlens-engine/pkg/services"

	"go.uber.org/zap"
)

// 表形式ファイル（xlsx / csv）を読み込み、洞察と予測をJSONで出力する
func main() {
	filePath := flag.String("file", "", "分析対象のファイル（.xlsx または .csv）")
	dateField := flag.String("date", "", "予測に使う日付列（省略時は予測をスキップ）")
	valueField := flag.String("value", "", "予測に使う数値列")
	horizon := flag.Int("horizon", 0, "予測期間（0 で設定値を使用）")
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -file data.csv [-date 日付列 -value 数値列]")
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 設定の読み込み
	cfg := config.LoadConfig()

	f, err := os.Open(*filePath)
	if err != nil {
		logger.Fatal("ファイルを開けませんでした", zap.Error(err))
	}
	defer f.Close()

	source, err := loader.FromReader(f, filepath.Base(*filePath))
	if err != nil {
		logger.Fatal("ファイルの取り込みに失敗しました", zap.Error(err))
	}
	logger.Info("📊 データソースを読み込みました",
		zap.String("name", source.Name),
		zap.Int("rows", len(source.Data)),
		zap.Int("columns", len(source.Schema)))

	svc := services.NewAnalyticsService(cfg, logger)

	output := map[string]interface{}{
		"source":   source.Name,
		"schema":   source.Schema,
		"insights": svc.GenerateInsights(source.Data, source.Schema),
	}

	if *dateField != "" && *valueField != "" {
		output["forecast"] = svc.GenerateForecast(source.Data, *dateField, *valueField, *horizon)
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		logger.Fatal("結果のJSON変換に失敗しました", zap.Error(err))
	}
	fmt.Println(string(encoded))
}
