package services

import (
	"math"
	"math/rand"

	"dashlens-engine/pkg/models"
)

// defaultSampleCap チャート描画用サンプリングの既定上限点数
const defaultSampleCap = 1000

// サンプリング戦略
const (
	StrategyUniform = "uniform"
	StrategyRandom  = "random"
	StrategyLTTB    = "lttb"
)

// SampleSeries 系列を maxPoints 以下に間引く。
// 入力が上限以下ならそのまま返す（恒等則）。maxPoints に 0 以下を
// 指定すると既定値（1000）を使用。未知の戦略は uniform にフォールバック
func SampleSeries(points []models.DataPoint, maxPoints int, strategy string) []models.DataPoint {
	if maxPoints <= 0 {
		maxPoints = defaultSampleCap
	}
	if len(points) <= maxPoints {
		return points
	}

	switch strategy {
	case StrategyRandom:
		return sampleRandom(points, maxPoints)
	case StrategyLTTB:
		return sampleLTTB(points, maxPoints)
	default:
		return sampleUniform(points, maxPoints)
	}
}

// sampleUniform 固定ストライドで間引く。末尾の点は必ず含める
func sampleUniform(points []models.DataPoint, maxPoints int) []models.DataPoint {
	stride := float64(len(points)) / float64(maxPoints)
	sampled := make([]models.DataPoint, 0, maxPoints)
	for i := 0; i < maxPoints; i++ {
		idx := int(float64(i) * stride)
		if idx >= len(points) {
			idx = len(points) - 1
		}
		sampled = append(sampled, points[idx])
	}
	sampled[len(sampled)-1] = points[len(points)-1]
	return sampled
}

// sampleRandom シャッフルして切り詰めるだけの簡易サンプリング。
// 非決定的なのでプレビュー用途に限る
func sampleRandom(points []models.DataPoint, maxPoints int) []models.DataPoint {
	shuffled := make([]models.DataPoint, len(points))
	copy(shuffled, points)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:maxPoints]
}

// sampleLTTB Largest-Triangle-Three-Buckets による形状保存ダウンサンプリング。
// 先頭・末尾を固定し、各バケットでは「直前の採用点」と「次バケットの平均点」
// との三角形の面積が最大になる点を選ぶ
func sampleLTTB(points []models.DataPoint, maxPoints int) []models.DataPoint {
	if maxPoints == 1 {
		return []models.DataPoint{points[0]}
	}
	if maxPoints == 2 {
		return []models.DataPoint{points[0], points[len(points)-1]}
	}

	sampled := make([]models.DataPoint, 0, maxPoints)
	sampled = append(sampled, points[0])

	bucketSize := float64(len(points)-2) / float64(maxPoints-2)
	prevIdx := 0

	for bucket := 0; bucket < maxPoints-2; bucket++ {
		bucketStart := int(math.Floor(float64(bucket)*bucketSize)) + 1
		bucketEnd := int(math.Floor(float64(bucket+1)*bucketSize)) + 1
		if bucketEnd > len(points)-1 {
			bucketEnd = len(points) - 1
		}

		// 次バケットの平均点
		nextStart := bucketEnd
		nextEnd := int(math.Floor(float64(bucket+2)*bucketSize)) + 1
		if nextEnd > len(points) {
			nextEnd = len(points)
		}
		var avgX, avgY float64
		nextCount := nextEnd - nextStart
		if nextCount < 1 {
			nextCount = 1
			nextStart = len(points) - 1
			nextEnd = len(points)
		}
		for i := nextStart; i < nextEnd; i++ {
			avgX += float64(i)
			avgY += points[i].Value
		}
		avgX /= float64(nextCount)
		avgY /= float64(nextCount)

		// 三角形の面積が最大になる点を採用
		prevX := float64(prevIdx)
		prevY := points[prevIdx].Value
		maxArea := -1.0
		bestIdx := bucketStart
		for i := bucketStart; i < bucketEnd; i++ {
			area := math.Abs((prevX-avgX)*(points[i].Value-prevY)-(prevX-float64(i))*(avgY-prevY)) / 2
			if area > maxArea {
				maxArea = area
				bestIdx = i
			}
		}

		sampled = append(sampled, points[bestIdx])
		prevIdx = bestIdx
	}

	sampled = append(sampled, points[len(points)-1])
	return sampled
}
