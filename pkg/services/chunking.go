package services

import (
	"context"
	"runtime"

	"dashlens-engine/pkg/models"
)

// defaultChunkSize チャンク処理の既定バッチサイズ
const defaultChunkSize = 500

// ChunkLoader データセットを固定サイズのバッチで順に読むためのカーソル。
// カーソルは呼び出し側が所有し、Reset で先頭に戻せる。
// 複数のゴルーチンで共有してはならない（ロードごとに新しいローダーを作る）
type ChunkLoader struct {
	data      models.Dataset
	chunkSize int
	cursor    int
}

// NewChunkLoader 新しいチャンクローダーを作成。
// chunkSize に 0 以下を指定すると既定値（500）を使用
func NewChunkLoader(data models.Dataset, chunkSize int) *ChunkLoader {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &ChunkLoader{
		data:      data,
		chunkSize: chunkSize,
	}
}

// Next 次のバッチを返す。読み切った後は (nil, false)
func (l *ChunkLoader) Next() (models.Dataset, bool) {
	if l.cursor >= len(l.data) {
		return nil, false
	}
	end := l.cursor + l.chunkSize
	if end > len(l.data) {
		end = len(l.data)
	}
	chunk := l.data[l.cursor:end]
	l.cursor = end
	return chunk, true
}

// Reset カーソルを先頭に戻す
func (l *ChunkLoader) Reset() {
	l.cursor = 0
}

// Progress 処理済み割合を 0〜1 で返す
func (l *ChunkLoader) Progress() float64 {
	if len(l.data) == 0 {
		return 1
	}
	return float64(l.cursor) / float64(len(l.data))
}

// ProcessInChunks データセットをバッチ単位で処理する。
// バッチ間で他のゴルーチンへ実行を譲り、長時間の処理でも
// 呼び出し側をブロックし続けない。onProgress は各バッチ後に
// 処理済み割合（0〜1）で呼ばれる（nil 可）
func ProcessInChunks(ctx context.Context, data models.Dataset, chunkSize int, fn func(batch models.Dataset) error, onProgress func(progress float64)) error {
	loader := NewChunkLoader(data, chunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch, ok := loader.Next()
		if !ok {
			return nil
		}

		if err := fn(batch); err != nil {
			return err
		}
		if onProgress != nil {
			onProgress(loader.Progress())
		}

		// 協調的な譲歩。正確性要件ではなく応答性のため
		runtime.Gosched()
	}
}
