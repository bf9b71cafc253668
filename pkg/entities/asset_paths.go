package entities

import (
	"path"

	"github.com/decker502/dressup/pkg/config"
)

// 美术资源路径约定（相对 --assets 目录，带 "assets/" 前缀）
//
//	assets/images/<variant>/base.png               人物底图
//	assets/images/<variant>/dord.png               完成彩蛋图
//	assets/images/<variant>/pieces/<piece>.png     服饰部件
//	assets/images/<variant>/layers/<layer>.png     图层标签
//	assets/images/<variant>/backgrounds/<bg>.png   背景
//	assets/images/<variant>/backgrounds/<bg>-clouds.png 云层（可选）
//	assets/images/<variant>/backgrounds/<bg>-trees.png  前景（可选）
//	assets/images/ui/<name>.png                    通用 UI
func variantImage(cfg *config.VariantConfig, parts ...string) string {
	return path.Join(append([]string{"assets/images", cfg.Name}, parts...)...) + ".png"
}

// BaseImagePath 人物底图
func BaseImagePath(cfg *config.VariantConfig) string { return variantImage(cfg, "base") }

// DordImagePath 完成彩蛋图
func DordImagePath(cfg *config.VariantConfig) string { return variantImage(cfg, "dord") }

// PieceImagePath 服饰部件贴图
func PieceImagePath(cfg *config.VariantConfig, pieceID string) string {
	return variantImage(cfg, "pieces", pieceID)
}

// LayerIconPath 图层标签贴图
func LayerIconPath(cfg *config.VariantConfig, layerID string) string {
	return variantImage(cfg, "layers", layerID)
}

// BackgroundImagePath 背景贴图
func BackgroundImagePath(cfg *config.VariantConfig, bgID string) string {
	return variantImage(cfg, "backgrounds", bgID)
}

// CloudImagePath 背景云层贴图
func CloudImagePath(cfg *config.VariantConfig, bgID string) string {
	return variantImage(cfg, "backgrounds", bgID+"-clouds")
}

// TreesImagePath 背景前景贴图，绘制在云层之上
func TreesImagePath(cfg *config.VariantConfig, bgID string) string {
	return variantImage(cfg, "backgrounds", bgID+"-trees")
}

// UIImagePath 通用 UI 贴图
func UIImagePath(name string) string {
	return path.Join("assets/images/ui", name) + ".png"
}

// AssetPaths 返回变体用到的全部贴图路径，供加载界面预加载
func AssetPaths(cfg *config.VariantConfig) []string {
	paths := []string{BaseImagePath(cfg), DordImagePath(cfg)}
	for _, piece := range cfg.Pieces {
		paths = append(paths, PieceImagePath(cfg, piece.ID))
	}
	for _, layer := range cfg.Layers {
		paths = append(paths, LayerIconPath(cfg, layer.ID))
	}
	for _, bg := range cfg.Backgrounds {
		paths = append(paths, BackgroundImagePath(cfg, bg.ID), CloudImagePath(cfg, bg.ID), TreesImagePath(cfg, bg.ID))
	}
	for _, name := range UIImageNames {
		paths = append(paths, UIImagePath(name))
	}
	return paths
}

// UIImageNames 通用 UI 贴图名
var UIImageNames = []string{
	"logo", "play", "settings", "reset", "close",
	"home", "settings-icon", "mute", "unmute",
	"checkbox", "checkbox-checked", "notch", "notch-filled",
	"components-panel",
}
