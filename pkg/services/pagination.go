package services

import (
	"dashlens-engine/pkg/models"
)

const (
	defaultPageSize     = 25
	pageWindowThreshold = 7 // 総ページ数がこれ以下なら省略記号なしで全ページを列挙
)

// CalculatePagination ページングの状態を計算する。
// 範囲外のページ番号は [1, totalPages] にクランプする
func CalculatePagination(totalRows, pageSize, currentPage int) models.Pagination {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	totalPages := (totalRows + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	startIndex := (currentPage - 1) * pageSize
	endIndex := startIndex + pageSize
	if endIndex > totalRows {
		endIndex = totalRows
	}
	if startIndex > totalRows {
		startIndex = totalRows
	}

	return models.Pagination{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalRows:   totalRows,
		TotalPages:  totalPages,
		StartIndex:  startIndex,
		EndIndex:    endIndex,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
		PageNumbers: pageNumberWindow(currentPage, totalPages),
	}
}

// Paginate ページング状態に従ってデータセットをスライスする
func Paginate(data models.Dataset, p models.Pagination) models.Dataset {
	if p.StartIndex >= len(data) {
		return models.Dataset{}
	}
	end := p.EndIndex
	if end > len(data) {
		end = len(data)
	}
	return data[p.StartIndex:end]
}

// pageNumberWindow 表示用のページ番号リストを生成する。
// ページ数が多い場合は先頭・末尾と現在ページ周辺のみを残し、
// 省略部分は -1（UI側で「…」として描画）に畳み込む
func pageNumberWindow(current, totalPages int) []int {
	if totalPages <= pageWindowThreshold {
		pages := make([]int, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			pages = append(pages, p)
		}
		return pages
	}

	windowStart := current - 1
	windowEnd := current + 1
	if windowStart < 2 {
		windowStart = 2
	}
	if windowEnd > totalPages-1 {
		windowEnd = totalPages - 1
	}

	pages := []int{1}
	if windowStart > 2 {
		pages = append(pages, -1)
	}
	for p := windowStart; p <= windowEnd; p++ {
		pages = append(pages, p)
	}
	if windowEnd < totalPages-1 {
		pages = append(pages, -1)
	}
	pages = append(pages, totalPages)
	return pages
}
