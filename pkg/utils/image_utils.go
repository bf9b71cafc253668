package utils

import (
	"hash/fnv"
	"image"
	"image/color"
)

// PlaceholderColor 根据资源键生成稳定的半透明颜色
// 同一个键每次运行得到同一种颜色，方便在没有美术资源时区分服饰
func PlaceholderColor(key string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(key))
	sum := h.Sum32()

	// 避免过暗，便于在深色背景上辨认
	return color.RGBA{
		R: uint8(sum>>16)%160 + 80,
		G: uint8(sum>>8)%160 + 80,
		B: uint8(sum)%160 + 80,
		A: 0xff,
	}
}

// PlaceholderImage 生成指定尺寸的占位图：填充色加 1 像素深色边框
// 返回标准库 image，可以在任意 goroutine 中生成，再交给 Ebitengine
func PlaceholderImage(key string, width, height int) *image.RGBA {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill := PlaceholderColor(key)
	border := color.RGBA{R: fill.R / 2, G: fill.G / 2, B: fill.B / 2, A: 0xff}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				img.SetRGBA(x, y, border)
			} else {
				img.SetRGBA(x, y, fill)
			}
		}
	}
	return img
}
