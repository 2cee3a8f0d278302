package models

// Pagination carries the clamped paging state for a large result set.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalRows   int   `json:"total_rows"`
	TotalPages  int   `json:"total_pages"`
	StartIndex  int   `json:"start_index"` // 0始まり・両端含む
	EndIndex    int   `json:"end_index"`   // 0始まり・排他的
	HasPrev     bool  `json:"has_prev"`
	HasNext     bool  `json:"has_next"`
	PageNumbers []int `json:"page_numbers"` // -1 は省略記号（…）を表す
}

// VirtualWindow is the visible row range for a virtual-scroll container.
type VirtualWindow struct {
	StartIndex  int `json:"start_index"` // オーバースキャンを含む開始行
	EndIndex    int `json:"end_index"`   // オーバースキャンを含む終了行（排他的）
	OffsetY     int `json:"offset_y"`    // 開始行までのピクセルオフセット
	TotalHeight int `json:"total_height"`
}

// ChartGroup is one aggregated group for chart rendering.
type ChartGroup struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
	Share float64 `json:"share"` // 合計に対する比率（0〜1）
}
