package entities

import (
	"github.com/decker502/dressup/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

func testVariant() *config.VariantConfig {
	return &config.VariantConfig{
		Name:   "test",
		Screen: config.ScreenConfig{Width: 384, Height: 216},
		Layout: config.LayoutConfig{
			Base:             config.Point{X: 20, Y: 30},
			BaseSize:         config.Size{W: 64, H: 174},
			Dord:             config.Point{X: 20, Y: 3},
			DordSize:         config.Size{W: 64, H: 30},
			ComponentsOrigin: config.Point{X: 100, Y: 40},
			LayerIcons:       config.Rect{X: 130, Y: 20, W: 24, H: 16, Gap: 20},
		},
		UI: config.UIConfig{
			Play:            config.Rect{X: 190, Y: 140, W: 60, H: 20},
			Settings:        config.Rect{X: 260, Y: 140, W: 60, H: 20},
			TopIcons:        config.Rect{X: 4, Y: 12, W: 16, H: 16, Gap: 4},
			BackgroundIcons: config.Rect{X: 160, Y: 160, W: 24, H: 24, Gap: 4},
			VolumeNotches:   config.Rect{X: 160, Y: 80, W: 90, H: 16},
			CensoredBox:     config.Rect{X: 160, Y: 120, W: 12, H: 12},
		},
		Medals: config.MedalsConfig{Completion: 1, RoomCode: 2},
		Layers: []config.LayerConfig{{ID: "hair"}, {ID: "clothes"}},
		Components: []config.ComponentConfig{
			{ID: "bob", Layer: "hair", Start: config.Point{X: 5, Y: 6}, Snap: config.Point{X: 30}, Size: config.Size{W: 40, H: 40}},
			{ID: "shirt", Layer: "clothes", Start: config.Point{Y: 60}, Snap: config.Point{X: 10, Y: 50}, Size: config.Size{W: 40, H: 30}},
			{ID: "cape", Layer: "clothes", Size: config.Size{W: 20, H: 20}, HiddenFromList: true, Optional: true},
		},
		Pieces: []config.PieceConfig{
			{ID: "bob-back", Component: "bob", Z: 3},
			{ID: "bob-front", Component: "bob", Z: 9},
			{ID: "shirt", Component: "shirt", Z: 6},
			{ID: "cape", Component: "cape", Z: 7},
		},
		Backgrounds: []config.BackgroundConfig{{ID: "day"}, {ID: "night"}},
	}
}

// fakeImages 记录请求的贴图；loaded 中的路径视为已加载
type fakeImages struct {
	loaded       map[string]*ebiten.Image
	placeholders []string
}

func newFakeImages(loaded ...string) *fakeImages {
	f := &fakeImages{loaded: make(map[string]*ebiten.Image)}
	for _, p := range loaded {
		f.loaded[p] = ebiten.NewImage(2, 2)
	}
	return f
}

func (f *fakeImages) ImageOrPlaceholder(path string, width, height int) *ebiten.Image {
	if img, ok := f.loaded[path]; ok {
		return img
	}
	f.placeholders = append(f.placeholders, path)
	return ebiten.NewImage(width, height)
}

func (f *fakeImages) LookupImage(path string) *ebiten.Image {
	return f.loaded[path]
}
