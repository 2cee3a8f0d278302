package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashlens-engine/pkg/models"
)

func TestCalculatePaginationClampsPage(t *testing.T) {
	// 範囲外のページ番号は最終ページにクランプされる
	p := CalculatePagination(101, 25, 10)

	assert.Equal(t, 5, p.TotalPages)
	assert.Equal(t, 5, p.CurrentPage)
	assert.Equal(t, 100, p.StartIndex)
	assert.Equal(t, 101, p.EndIndex)
	assert.True(t, p.HasPrev)
	assert.False(t, p.HasNext)

	// 0 以下のページは先頭にクランプ
	first := CalculatePagination(101, 25, 0)
	assert.Equal(t, 1, first.CurrentPage)
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)
}

func TestCalculatePaginationEmpty(t *testing.T) {
	p := CalculatePagination(0, 25, 1)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 0, p.StartIndex)
	assert.Equal(t, 0, p.EndIndex)
	assert.Equal(t, []int{1}, p.PageNumbers)
}

func TestPageNumberWindow(t *testing.T) {
	// 少ないページ数は全ページを列挙
	p := CalculatePagination(100, 20, 3)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, p.PageNumbers)

	// 多いページ数は先頭・末尾＋現在ページ周辺のみ（-1 は省略記号）
	p = CalculatePagination(400, 20, 10)
	assert.Equal(t, []int{1, -1, 9, 10, 11, -1, 20}, p.PageNumbers)

	// 先頭付近では前方の省略記号が消える
	p = CalculatePagination(400, 20, 2)
	assert.Equal(t, []int{1, 2, 3, -1, 20}, p.PageNumbers)

	// 末尾付近では後方の省略記号が消える
	p = CalculatePagination(400, 20, 19)
	assert.Equal(t, []int{1, -1, 18, 19, 20}, p.PageNumbers)
}

func TestPaginate(t *testing.T) {
	var data models.Dataset
	for i := 0; i < 10; i++ {
		data = append(data, models.Record{"n": float64(i)})
	}

	p := CalculatePagination(len(data), 3, 2)
	page := Paginate(data, p)
	require.Len(t, page, 3)
	assert.Equal(t, 3.0, page[0]["n"])
}

func TestCalculateVirtualWindow(t *testing.T) {
	// 500px スクロール済み、400px のコンテナ、行高 20px、1000行
	w := CalculateVirtualWindow(500, 400, 20, 1000, 0)

	// 可視開始は 25 行目、オーバースキャン 5 行で 20 行目から
	assert.Equal(t, 20, w.StartIndex)
	// 可視 20 行＋オーバースキャン 5 行で 50 行目まで
	assert.Equal(t, 50, w.EndIndex)
	assert.Equal(t, 400, w.OffsetY)
	assert.Equal(t, 20000, w.TotalHeight)
}

func TestCalculateVirtualWindowBounds(t *testing.T) {
	// 先頭付近では開始行が 0 にクランプされる
	w := CalculateVirtualWindow(0, 400, 20, 1000, 5)
	assert.Equal(t, 0, w.StartIndex)
	assert.Equal(t, 0, w.OffsetY)

	// 末尾付近では終了行が総行数にクランプされる
	w = CalculateVirtualWindow(19900, 400, 20, 1000, 5)
	assert.Equal(t, 1000, w.EndIndex)

	// 不正な入力はゼロ値
	assert.Equal(t, models.VirtualWindow{}, CalculateVirtualWindow(0, 400, 0, 1000, 5))
}
