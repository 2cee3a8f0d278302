package services

import (
	"go.uber.org/zap"

	config "dashlens-engine/configs"
)

// AnalyticsService データセットに対する検出・洞察生成・予測を提供する分析サービス
type AnalyticsService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAnalyticsService 新しい分析サービスを作成
func NewAnalyticsService(cfg *config.Config, logger *zap.Logger) *AnalyticsService {
	if cfg == nil {
		cfg = config.LoadConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{
		cfg:    cfg,
		logger: logger,
	}
}
