package game

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/decker502/dressup/pkg/embedded"
	"github.com/decker502/dressup/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

// ResourceManager 集中管理贴图和音乐
//
// 贴图来源有两种：
//   - AddDecoded：AssetBundle 在后台解码好的 image.Image，在主线程转换后缓存
//   - LoadImage：按路径同步加载（embedded 文件系统）
//
// 缺失的贴图由 ImageOrPlaceholder 生成占位图并按 "路径+尺寸" 缓存，
// 同一路径总是返回同一个 *ebiten.Image。
//
// 非线程安全：只在 Ebitengine 的主循环中使用。
type ResourceManager struct {
	imageCache       map[string]*ebiten.Image
	placeholderCache map[string]*ebiten.Image
	audioContext     *audio.Context
}

// NewResourceManager 创建资源管理器
// audioContext 可以为 nil（不播放音乐）
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:       make(map[string]*ebiten.Image),
		placeholderCache: make(map[string]*ebiten.Image),
		audioContext:     audioContext,
	}
}

// AddDecoded 把后台解码的图片转换为 Ebitengine 贴图并缓存
func (rm *ResourceManager) AddDecoded(images map[string]image.Image) {
	for path, img := range images {
		rm.imageCache[path] = ebiten.NewImageFromImage(img)
	}
	log.Printf("[ResourceManager] %d images ready", len(images))
}

// LoadImage 同步加载并缓存贴图
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if img, ok := rm.imageCache[path]; ok {
		return img, nil
	}
	decoded, err := decodeImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	img := ebiten.NewImageFromImage(decoded)
	rm.imageCache[path] = img
	return img, nil
}

// LookupImage 返回已加载的贴图，缺失时返回 nil
func (rm *ResourceManager) LookupImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// ImageOrPlaceholder 返回已加载的贴图；缺失时返回 width x height 的占位图
func (rm *ResourceManager) ImageOrPlaceholder(path string, width, height int) *ebiten.Image {
	if img, ok := rm.imageCache[path]; ok {
		return img
	}
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}

	key := fmt.Sprintf("%s@%dx%d", path, width, height)
	if img, ok := rm.placeholderCache[key]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(utils.PlaceholderImage(path, width, height))
	rm.placeholderCache[key] = img
	return img
}

// ImageCount 返回已加载（非占位）的贴图数量
func (rm *ResourceManager) ImageCount() int {
	return len(rm.imageCache)
}

// NewMusicPlayer 从内存中的 mp3/ogg 数据创建循环播放的音乐播放器
// 格式由 path 的扩展名决定
func (rm *ResourceManager) NewMusicPlayer(path string, data []byte) (*audio.Player, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for %s", path)
	}

	reader := bytes.NewReader(data)

	var stream interface {
		io.ReadSeeker
		Length() int64
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		s, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", ext)
	}

	player, err := rm.audioContext.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}
	return player, nil
}

// HasAssets 返回是否挂载了美术资源目录
func (rm *ResourceManager) HasAssets() bool {
	return embedded.HasAssets()
}
