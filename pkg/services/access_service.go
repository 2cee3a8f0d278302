package services

import (
	"dashlens-engine/pkg/models"
)

// 設定済みの既定値で大規模データアクセス層を使うための薄いラッパー

// SampleForChart 設定の上限点数でチャート用サンプリングを実行
func (s *AnalyticsService) SampleForChart(points []models.DataPoint, strategy string) []models.DataPoint {
	return SampleSeries(points, s.cfg.MaxSamplePoints, strategy)
}

// PageOf 設定のページサイズで指定ページのデータとページング状態を返す
func (s *AnalyticsService) PageOf(data models.Dataset, page int) (models.Dataset, models.Pagination) {
	p := CalculatePagination(len(data), s.cfg.DefaultPageSize, page)
	return Paginate(data, p), p
}

// ChunkReader 設定のバッチサイズでチャンクローダーを作成
func (s *AnalyticsService) ChunkReader(data models.Dataset) *ChunkLoader {
	return NewChunkLoader(data, s.cfg.ChunkSize)
}
