package services

import (
	"dashlens-engine/pkg/models"
)

// defaultOverscan 画面外に余分に描画する行数
const defaultOverscan = 5

// CalculateVirtualWindow 仮想スクロールの可視行レンジを計算する。
// overscan に 0 以下を指定すると既定値（5行）を使用
func CalculateVirtualWindow(scrollTop, containerHeight, rowHeight, totalRows, overscan int) models.VirtualWindow {
	if rowHeight <= 0 || totalRows <= 0 {
		return models.VirtualWindow{}
	}
	if overscan <= 0 {
		overscan = defaultOverscan
	}
	if scrollTop < 0 {
		scrollTop = 0
	}

	visibleStart := scrollTop / rowHeight
	visibleCount := (containerHeight + rowHeight - 1) / rowHeight

	startIndex := visibleStart - overscan
	if startIndex < 0 {
		startIndex = 0
	}
	endIndex := visibleStart + visibleCount + overscan
	if endIndex > totalRows {
		endIndex = totalRows
	}

	return models.VirtualWindow{
		StartIndex:  startIndex,
		EndIndex:    endIndex,
		OffsetY:     startIndex * rowHeight,
		TotalHeight: totalRows * rowHeight,
	}
}
