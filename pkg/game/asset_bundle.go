package game

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // 注册 JPEG 解码器
	_ "image/png"  // 注册 PNG 解码器
	"io/fs"
	"log"
	"runtime"
	"sort"
	"sync"

	"github.com/decker502/dressup/pkg/embedded"
	"golang.org/x/sync/errgroup"
)

// AssetBundle 后台加载的资源包
//
// 图片在工作 goroutine 中并发解码为 image.Image（不触碰 Ebitengine），
// 全部完成后关闭 done；主线程在 Ready 之后再转换为 *ebiten.Image。
// 缺失的文件不算错误，记入 Missing，界面使用占位图。
type AssetBundle struct {
	done chan struct{}

	mu      sync.Mutex
	images  map[string]image.Image
	missing []string
	music   []byte
	err     error
}

// LoadAssetBundle 启动后台加载并立即返回
// musicPath 为空时不加载音乐
func LoadAssetBundle(ctx context.Context, imagePaths []string, musicPath string) *AssetBundle {
	b := &AssetBundle{
		done:   make(chan struct{}),
		images: make(map[string]image.Image, len(imagePaths)),
	}
	go b.load(ctx, imagePaths, musicPath)
	return b
}

func (b *AssetBundle) load(ctx context.Context, imagePaths []string, musicPath string) {
	defer close(b.done)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, p := range imagePaths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeImage(p)
			if errors.Is(err, fs.ErrNotExist) {
				b.addMissing(p)
				return nil
			}
			if err != nil {
				return err
			}
			b.mu.Lock()
			b.images[p] = img
			b.mu.Unlock()
			return nil
		})
	}

	if musicPath != "" {
		g.Go(func() error {
			data, err := embedded.ReadFile(musicPath)
			if errors.Is(err, fs.ErrNotExist) {
				b.addMissing(musicPath)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read music %s: %w", musicPath, err)
			}
			b.mu.Lock()
			b.music = data
			b.mu.Unlock()
			return nil
		})
	}

	err := g.Wait()

	b.mu.Lock()
	b.err = err
	sort.Strings(b.missing)
	loaded, missing := len(b.images), len(b.missing)
	b.mu.Unlock()

	log.Printf("[AssetBundle] loaded %d images, %d missing, err=%v", loaded, missing, err)
}

func decodeImage(path string) (image.Image, error) {
	f, err := embedded.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

func (b *AssetBundle) addMissing(path string) {
	b.mu.Lock()
	b.missing = append(b.missing, path)
	b.mu.Unlock()
}

// Ready 非阻塞地检查是否加载完成
func (b *AssetBundle) Ready() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// Done 加载完成时关闭
func (b *AssetBundle) Done() <-chan struct{} {
	return b.done
}

// Wait 阻塞到加载完成，返回第一个解码或读取错误
func (b *AssetBundle) Wait() error {
	<-b.done
	return b.Err()
}

// Err 返回加载错误；未完成时为 nil
func (b *AssetBundle) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Images 返回已解码的图片；只应在 Ready 之后调用
func (b *AssetBundle) Images() map[string]image.Image {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.images
}

// Music 返回音乐文件内容，没有时为 nil
func (b *AssetBundle) Music() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.music
}

// Missing 返回缺失的资源路径（已排序）
func (b *AssetBundle) Missing() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.missing
}
