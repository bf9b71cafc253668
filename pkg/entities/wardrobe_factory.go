package entities

import (
	"log"

	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/config"
	"github.com/decker502/dressup/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImageProvider 为实体提供贴图
// 资源缺失时返回指定尺寸的占位图，永远不返回 nil
type ImageProvider interface {
	ImageOrPlaceholder(path string, width, height int) *ebiten.Image
	// LookupImage 返回已加载的贴图，缺失时返回 nil（用于可选资源）
	LookupImage(path string) *ebiten.Image
}

// WardrobeEntities 由 NewWardrobeEntities 创建的实体
type WardrobeEntities struct {
	Base        ecs.EntityID
	Layers      []ecs.EntityID
	Wearables   []ecs.EntityID
	Backgrounds []ecs.EntityID
}

// NewWardrobeEntities 按变体数据表创建图层、人物底图、服饰、部件和背景实体
//
// 实体按数据表声明顺序创建，后续按实体 ID 查询时顺序与声明一致。
// 初始状态：第一个图层和第一个背景选中，所有服饰位于初始位置且未穿上
// （默认穿戴由 WardrobeSystem.Reset 完成）。
//
// 参数：
//   - em: 实体管理器
//   - cfg: 已校验的变体数据表
//   - images: 贴图来源，为 nil 时不创建 SpriteComponent（测试用）
func NewWardrobeEntities(em *ecs.EntityManager, cfg *config.VariantConfig, images ImageProvider) *WardrobeEntities {
	result := &WardrobeEntities{}

	layerByID := make(map[string]ecs.EntityID, len(cfg.Layers))
	for i, layer := range cfg.Layers {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.LayerComponent{
			ID:       layer.ID,
			Index:    i,
			Selected: i == 0,
		})
		layerByID[layer.ID] = id
		result.Layers = append(result.Layers, id)
	}

	result.Base = em.CreateEntity()
	ecs.AddComponent(em, result.Base, &components.BaseFigureComponent{
		Anchor: cfg.Layout.Base,
		Size:   cfg.Layout.BaseSize,
	})
	if images != nil {
		ecs.AddComponent(em, result.Base, &components.SpriteComponent{
			Image: images.ImageOrPlaceholder(BaseImagePath(cfg), cfg.Layout.BaseSize.W, cfg.Layout.BaseSize.H),
		})
	}

	wearableByID := make(map[string]*components.WearableComponent, len(cfg.Components))
	wearableEntity := make(map[string]ecs.EntityID, len(cfg.Components))
	for i, comp := range cfg.Components {
		id := em.CreateEntity()
		w := &components.WearableComponent{
			ID:                  comp.ID,
			LayerID:             comp.Layer,
			Layer:               layerByID[comp.Layer],
			Order:               i,
			Start:               comp.Start,
			SnapOffset:          comp.Snap,
			Size:                comp.Size,
			ClickInset:          comp.ClickInset,
			Required:            !comp.Optional && !isSecret(cfg, comp.ID),
			RequiredForCensored: comp.RequiredForCensored,
			HiddenFromList:      comp.HiddenFromList,
			Position:            comp.Start,
		}
		ecs.AddComponent(em, id, w)
		wearableByID[comp.ID] = w
		wearableEntity[comp.ID] = id
		result.Wearables = append(result.Wearables, id)
	}

	// 未穿上的部件初始即位于抬升层
	maxZ := make(map[string]int, len(cfg.Components))
	for _, piece := range cfg.Pieces {
		if piece.Z > maxZ[piece.Component] {
			maxZ[piece.Component] = piece.Z
		}
	}

	for i, piece := range cfg.Pieces {
		id := em.CreateEntity()
		owner := wearableByID[piece.Component]
		ecs.AddComponent(em, id, &components.PieceComponent{
			ID:         piece.ID,
			Owner:      wearableEntity[piece.Component],
			BaseZ:      piece.Z,
			EffectiveZ: maxZ[piece.Component] + config.ElevationOffset,
			Order:      i,
		})
		if images != nil {
			ecs.AddComponent(em, id, &components.SpriteComponent{
				Image: images.ImageOrPlaceholder(PieceImagePath(cfg, piece.ID), owner.Size.W, owner.Size.H),
			})
		}
		owner.Pieces = append(owner.Pieces, id)
	}

	for i, bg := range cfg.Backgrounds {
		id := em.CreateEntity()
		background := &components.BackgroundComponent{
			ID:       bg.ID,
			Index:    i,
			Selected: i == 0,
		}
		ecs.AddComponent(em, id, background)
		if images != nil {
			background.CloudImage = images.LookupImage(CloudImagePath(cfg, bg.ID))
			if background.CloudImage != nil {
				background.CloudWidth = background.CloudImage.Bounds().Dx()
			}
			background.TreesImage = images.LookupImage(TreesImagePath(cfg, bg.ID))
			ecs.AddComponent(em, id, &components.SpriteComponent{
				Image: images.ImageOrPlaceholder(BackgroundImagePath(cfg, bg.ID), cfg.Screen.Width, cfg.Screen.Height),
			})
		}
		result.Backgrounds = append(result.Backgrounds, id)
	}

	log.Printf("[WardrobeFactory] variant %s: %d layers, %d wearables, %d pieces, %d backgrounds",
		cfg.Name, len(result.Layers), len(result.Wearables), len(cfg.Pieces), len(result.Backgrounds))

	return result
}

// isSecret 彩蛋服饰不计入完成检测
func isSecret(cfg *config.VariantConfig, componentID string) bool {
	return cfg.Secret != nil && cfg.Secret.Component == componentID
}
