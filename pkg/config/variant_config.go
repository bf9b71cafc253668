package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/decker502/dressup/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// VariantsDir 变体数据表所在目录
const VariantsDir = "data/variants"

// DefaultVariant 未指定变体时使用
const DefaultVariant = "covalence"

// Point 游戏像素坐标
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Size 游戏像素尺寸
type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Rect 矩形区域，Gap 用于横向排列的图标组
type Rect struct {
	X   int `yaml:"x"`
	Y   int `yaml:"y"`
	W   int `yaml:"w"`
	H   int `yaml:"h"`
	Gap int `yaml:"gap,omitempty"`
}

// Contains 判断点是否在矩形内（含左上边界，不含右下边界）
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Insets 点击区域相对服饰外框的内缩量
type Insets struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
}

// ScreenConfig 逻辑屏幕尺寸
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// 缩放模式
const (
	ScaleModeFixed      = "fixed"      // 固定缩放系数
	ScaleModeInteger    = "integer"    // 按窗口取整缩放（像素画不失真）
	ScaleModeFractional = "fractional" // 按窗口连续缩放
)

// ScaleConfig 响应式缩放配置
type ScaleConfig struct {
	Mode  string  `yaml:"mode"`
	Fixed float64 `yaml:"fixed"`
}

// LayoutConfig 换装界面的布局
type LayoutConfig struct {
	Base             Point `yaml:"base"`             // 人物底图左上角，即吸附锚点
	BaseSize         Size  `yaml:"baseSize"`         // 人物底图尺寸
	Dord             Point `yaml:"dord"`             // 完成彩蛋图位置
	DordSize         Size  `yaml:"dordSize"`         // 完成彩蛋图尺寸
	ComponentsOrigin Point `yaml:"componentsOrigin"` // 服饰坐标原点（服饰 start/position 相对此点）
	ComponentsPanel  Rect  `yaml:"componentsPanel"`  // 服饰面板背景
	LayerIcons       Rect  `yaml:"layerIcons"`       // 图层标签（W/H 为单个图标尺寸）
}

// UIConfig 标题页、设置页和顶栏元素的位置
type UIConfig struct {
	Logo            Rect `yaml:"logo"`
	Credits         Rect `yaml:"credits"`
	Play            Rect `yaml:"play"`
	Settings        Rect `yaml:"settings"`
	Reset           Rect `yaml:"reset"`
	Close           Rect `yaml:"close"`
	SettingsHeading Rect `yaml:"settingsHeading"`
	VolumeLabel     Rect `yaml:"volumeLabel"`
	VolumeNotches   Rect `yaml:"volumeNotches"`
	CensoredLabel   Rect `yaml:"censoredLabel"`
	CensoredBox     Rect `yaml:"censoredBox"`
	BackgroundLabel Rect `yaml:"backgroundLabel"`
	BackgroundIcons Rect `yaml:"backgroundIcons"`
	TopIcons        Rect `yaml:"topIcons"` // Y 为图标中线
}

// MedalsConfig 成就 ID，0 表示不上报
type MedalsConfig struct {
	Completion int `yaml:"completion"`
	RoomCode   int `yaml:"roomCode"`
}

// MusicConfig 背景音乐
type MusicConfig struct {
	Path         string `yaml:"path"`         // 相对 assets/ 的路径
	InitialSteps int    `yaml:"initialSteps"` // 初始音量刻度
}

// LayerConfig 图层（服饰分类标签）
type LayerConfig struct {
	ID string `yaml:"id"`
}

// ComponentConfig 单件服饰
type ComponentConfig struct {
	ID                  string `yaml:"id"`
	Layer               string `yaml:"layer"`
	Start               Point  `yaml:"start"`      // 初始位置（相对 componentsOrigin）
	Snap                Point  `yaml:"snap"`       // 吸附位置（相对人物底图）
	Size                Size   `yaml:"size"`       // 外框尺寸
	ClickInset          Insets `yaml:"clickInset"` // 点击区域内缩
	RequiredForCensored bool   `yaml:"requiredForCensored"`
	HiddenFromList      bool   `yaml:"hiddenFromList"` // 不在服饰面板中显示（彩蛋服饰）
	Optional            bool   `yaml:"optional"`       // 不计入"全部穿上"的判定
}

// PieceConfig 服饰的渲染部件（前/后分层）
type PieceConfig struct {
	ID        string `yaml:"id"`
	Component string `yaml:"component"`
	Z         int    `yaml:"z"`
}

// BackgroundConfig 背景
type BackgroundConfig struct {
	ID string `yaml:"id"`
}

// SecretConfig 键盘彩蛋：输入 Code 后穿上 Component
type SecretConfig struct {
	Component string `yaml:"component"`
	Code      string `yaml:"code"`
	Medal     int    `yaml:"medal"`
}

// VariantConfig 一个换装变体的完整数据表
type VariantConfig struct {
	Name        string             `yaml:"name"`
	Screen      ScreenConfig       `yaml:"screen"`
	Scale       ScaleConfig        `yaml:"scale"`
	Layout      LayoutConfig       `yaml:"layout"`
	UI          UIConfig           `yaml:"ui"`
	RoomCode    *Rect              `yaml:"roomCode"`
	Medals      MedalsConfig       `yaml:"medals"`
	Music       MusicConfig        `yaml:"music"`
	Layers      []LayerConfig      `yaml:"layers"`
	Components  []ComponentConfig  `yaml:"components"`
	Pieces      []PieceConfig      `yaml:"pieces"`
	Backgrounds []BackgroundConfig `yaml:"backgrounds"`
	Defaults    []string           `yaml:"defaults"`
	Secret      *SecretConfig      `yaml:"secret"`
}

// VariantPath 返回变体名对应的数据表路径
func VariantPath(name string) string {
	return path.Join(VariantsDir, name+".yaml")
}

// LoadVariant 按名称加载变体（data/variants/<name>.yaml），name 为空时加载默认变体
func LoadVariant(name string) (*VariantConfig, error) {
	if name == "" {
		name = DefaultVariant
	}
	return LoadVariantConfig(VariantPath(name))
}

// ListVariants 列出所有可用的变体名
func ListVariants() ([]string, error) {
	matches, err := embedded.Glob(path.Join(VariantsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".yaml"))
	}
	return names, nil
}

// LoadVariantConfig 从 YAML 文件加载变体数据表
// 参数：
//
//	filepath - 配置文件路径（必须以 data/ 开头）
//
// 返回：
//
//	*VariantConfig - 解析并校验后的配置对象
//	error - 文件读取、解析或校验失败时返回错误，调用方不应继续使用部分配置
func LoadVariantConfig(filepath string) (*VariantConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read variant file %s: %w", filepath, err)
	}
	return ParseVariantConfig(data, filepath)
}

// ParseVariantConfig 解析并校验变体 YAML 内容
// source 仅用于错误信息
func ParseVariantConfig(data []byte, source string) (*VariantConfig, error) {
	var config VariantConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse variant YAML from %s: %w", source, err)
	}

	config.applyDefaults()

	if err := validateVariant(&config); err != nil {
		return nil, fmt.Errorf("invalid variant in %s: %w", source, err)
	}

	return &config, nil
}

// applyDefaults 填充可省略的字段
func (c *VariantConfig) applyDefaults() {
	if c.Screen.Width == 0 {
		c.Screen.Width = ScreenWidth
	}
	if c.Screen.Height == 0 {
		c.Screen.Height = ScreenHeight
	}
	if c.Scale.Mode == "" {
		c.Scale.Mode = ScaleModeFixed
	}
	if c.Scale.Fixed == 0 {
		c.Scale.Fixed = DefaultFixedScale
	}
	if c.Music.InitialSteps == 0 {
		c.Music.InitialSteps = DefaultVolumeSteps
	}
}

// validateVariant 校验变体数据表的完整性
// 任何引用错误都是致命的：宁可启动失败，也不能带着残缺状态运行
func validateVariant(c *VariantConfig) error {
	if len(c.Layers) == 0 {
		return fmt.Errorf("at least one layer is required")
	}
	if len(c.Components) == 0 {
		return fmt.Errorf("at least one component is required")
	}
	if len(c.Backgrounds) == 0 {
		return fmt.Errorf("at least one background is required")
	}

	switch c.Scale.Mode {
	case ScaleModeFixed, ScaleModeInteger, ScaleModeFractional:
	default:
		return fmt.Errorf("unknown scale mode %q", c.Scale.Mode)
	}
	if c.Scale.Fixed < 0 {
		return fmt.Errorf("fixed scale cannot be negative, got %v", c.Scale.Fixed)
	}

	if c.Music.InitialSteps < 0 || c.Music.InitialSteps > MaxVolumeSteps {
		return fmt.Errorf("music initialSteps must be within 0..%d, got %d", MaxVolumeSteps, c.Music.InitialSteps)
	}

	layers := make(map[string]bool, len(c.Layers))
	for i, layer := range c.Layers {
		if layer.ID == "" {
			return fmt.Errorf("layer #%d: id is required", i)
		}
		if layers[layer.ID] {
			return fmt.Errorf("duplicate layer id %q", layer.ID)
		}
		layers[layer.ID] = true
	}

	components := make(map[string]bool, len(c.Components))
	for i, comp := range c.Components {
		if comp.ID == "" {
			return fmt.Errorf("component #%d: id is required", i)
		}
		if components[comp.ID] {
			return fmt.Errorf("duplicate component id %q", comp.ID)
		}
		components[comp.ID] = true

		if !layers[comp.Layer] {
			return fmt.Errorf("component %s: unknown layer %q", comp.ID, comp.Layer)
		}
		if comp.Size.W <= 0 || comp.Size.H <= 0 {
			return fmt.Errorf("component %s: size must be positive, got %dx%d", comp.ID, comp.Size.W, comp.Size.H)
		}
		inset := comp.ClickInset
		if inset.Left < 0 || inset.Top < 0 || inset.Right < 0 || inset.Bottom < 0 {
			return fmt.Errorf("component %s: click insets cannot be negative", comp.ID)
		}
		if inset.Left+inset.Right >= comp.Size.W || inset.Top+inset.Bottom >= comp.Size.H {
			return fmt.Errorf("component %s: click insets leave no clickable area", comp.ID)
		}
	}

	pieces := make(map[string]bool, len(c.Pieces))
	owned := make(map[string]int, len(c.Components))
	for i, piece := range c.Pieces {
		if piece.ID == "" {
			return fmt.Errorf("piece #%d: id is required", i)
		}
		if pieces[piece.ID] {
			return fmt.Errorf("duplicate piece id %q", piece.ID)
		}
		pieces[piece.ID] = true

		if !components[piece.Component] {
			return fmt.Errorf("piece %s: unknown component %q", piece.ID, piece.Component)
		}
		if piece.Z < MinPieceZ || piece.Z > MaxPieceZ {
			return fmt.Errorf("piece %s: z must be within %d..%d, got %d", piece.ID, MinPieceZ, MaxPieceZ, piece.Z)
		}
		owned[piece.Component]++
	}
	for _, comp := range c.Components {
		if owned[comp.ID] == 0 {
			return fmt.Errorf("component %s has no pieces", comp.ID)
		}
	}

	backgrounds := make(map[string]bool, len(c.Backgrounds))
	for i, bg := range c.Backgrounds {
		if bg.ID == "" {
			return fmt.Errorf("background #%d: id is required", i)
		}
		if backgrounds[bg.ID] {
			return fmt.Errorf("duplicate background id %q", bg.ID)
		}
		backgrounds[bg.ID] = true
	}

	defaults := make(map[string]bool, len(c.Defaults))
	for _, id := range c.Defaults {
		if !components[id] {
			return fmt.Errorf("default component %q does not exist", id)
		}
		if defaults[id] {
			return fmt.Errorf("default component %q listed twice", id)
		}
		defaults[id] = true
	}

	if c.Secret != nil {
		if !components[c.Secret.Component] {
			return fmt.Errorf("secret component %q does not exist", c.Secret.Component)
		}
		if c.Secret.Code == "" {
			return fmt.Errorf("secret code cannot be empty")
		}
		if c.Secret.Medal < 0 {
			return fmt.Errorf("secret medal cannot be negative, got %d", c.Secret.Medal)
		}
	}

	if c.Medals.Completion < 0 || c.Medals.RoomCode < 0 {
		return fmt.Errorf("medal ids cannot be negative")
	}

	return nil
}

// IsDefault 判断服饰是否属于默认穿戴集合
func (c *VariantConfig) IsDefault(componentID string) bool {
	for _, id := range c.Defaults {
		if id == componentID {
			return true
		}
	}
	return false
}

// PiecesOf 返回某件服饰的所有部件（保持声明顺序）
func (c *VariantConfig) PiecesOf(componentID string) []PieceConfig {
	var result []PieceConfig
	for _, piece := range c.Pieces {
		if piece.Component == componentID {
			result = append(result, piece)
		}
	}
	return result
}

// SecretCode 返回彩蛋输入码（小写），未配置时为空
func (c *VariantConfig) SecretCode() string {
	if c.Secret == nil {
		return ""
	}
	return strings.ToLower(c.Secret.Code)
}
