package entities

import (
	"log"

	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/config"
	"github.com/decker502/dressup/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// UIActions 界面控件的回调
// 未设置的回调对应的控件点击后什么也不做
type UIActions struct {
	Play          func()
	OpenSettings  func()
	CloseSettings func()
	Home          func()
	Reset         func()
	SetMuted      func(muted bool)
	Muted         func() bool

	SelectLayer   func(layer ecs.EntityID)
	LayerSelected func(layer ecs.EntityID) bool

	SelectBackground   func(index int)
	BackgroundSelected func(index int) bool

	SetVolume   func(step int)
	SetCensored func(on bool)
}

// UIState 创建控件时的初始状态
type UIState struct {
	VolumeSteps int
	Censored    bool
}

// UIEntities 由 NewUIEntities 创建的实体
type UIEntities struct {
	Title    []ecs.EntityID
	DressUp  []ecs.EntityID
	Settings []ecs.EntityID

	LayerTabs       []ecs.EntityID // 与 WardrobeEntities.Layers 一一对应
	BackgroundIcons []ecs.EntityID
	Notches         ecs.EntityID
	CensoredBox     ecs.EntityID
	RoomCode        ecs.EntityID // 没有配置时为 ecs.NoEntity
	Dord            ecs.EntityID // 完成时显示，默认隐藏
}

// RowRect 返回横向图标组中第 i 个图标的区域
func RowRect(r config.Rect, i int) config.Rect {
	return config.Rect{X: r.X + i*(r.W+r.Gap), Y: r.Y, W: r.W, H: r.H}
}

type uiBuilder struct {
	em     *ecs.EntityManager
	images ImageProvider
}

func (b *uiBuilder) lookup(path string) *ebiten.Image {
	if b.images == nil || path == "" {
		return nil
	}
	return b.images.LookupImage(path)
}

func (b *uiBuilder) entity(screen components.ScreenID, bounds config.Rect, z int) ecs.EntityID {
	id := b.em.CreateEntity()
	ecs.AddComponent(b.em, id, &components.UIComponent{Screen: screen, Bounds: bounds, Z: z})
	return id
}

func (b *uiBuilder) clickable(id ecs.EntityID) {
	ecs.AddComponent(b.em, id, &components.ClickableComponent{IsEnabled: true})
}

func (b *uiBuilder) button(screen components.ScreenID, bounds config.Rect, z int, label, image string, onClick func(), selected func() bool) ecs.EntityID {
	id := b.entity(screen, bounds, z)
	b.clickable(id)
	ecs.AddComponent(b.em, id, &components.ButtonComponent{
		Label:       label,
		NormalImage: b.lookup(image),
		OnClick:     onClick,
		Selected:    selected,
	})
	return id
}

func (b *uiBuilder) label(screen components.ScreenID, bounds config.Rect, text string) ecs.EntityID {
	id := b.entity(screen, bounds, 1)
	ecs.AddComponent(b.em, id, &components.LabelComponent{Text: text})
	return id
}

func (b *uiBuilder) sprite(screen components.ScreenID, bounds config.Rect, z int, path string) ecs.EntityID {
	img := b.lookup(path)
	if img == nil {
		return ecs.NoEntity
	}
	id := b.entity(screen, bounds, z)
	ecs.AddComponent(b.em, id, &components.SpriteComponent{Image: img})
	return id
}

// NewUIEntities 创建标题页、换装页和设置页的所有控件
//
// 布局全部来自 cfg.UI 和 cfg.Layout。
// images 为 nil 或缺少贴图时，按钮以文字标签绘制，装饰贴图不创建。
func NewUIEntities(em *ecs.EntityManager, cfg *config.VariantConfig, wardrobe *WardrobeEntities,
	images ImageProvider, actions UIActions, state UIState) *UIEntities {

	b := &uiBuilder{em: em, images: images}
	ui := &UIEntities{}
	add := func(list *[]ecs.EntityID, id ecs.EntityID) {
		if id != ecs.NoEntity {
			*list = append(*list, id)
		}
	}

	// 标题页
	add(&ui.Title, b.sprite(components.ScreenTitle, cfg.UI.Logo, 0, UIImagePath("logo")))
	add(&ui.Title, b.label(components.ScreenTitle, cfg.UI.Credits, cfg.Name))
	add(&ui.Title, b.button(components.ScreenTitle, cfg.UI.Play, 2, "play", UIImagePath("play"), actions.Play, nil))
	add(&ui.Title, b.button(components.ScreenTitle, cfg.UI.Settings, 2, "settings", UIImagePath("settings"), actions.OpenSettings, nil))

	ui.RoomCode = ecs.NoEntity
	if cfg.RoomCode != nil {
		ui.RoomCode = b.entity(components.ScreenTitle, *cfg.RoomCode, 3)
		b.clickable(ui.RoomCode)
		ecs.AddComponent(em, ui.RoomCode, &components.RoomCodeComponent{MedalID: cfg.Medals.RoomCode})
		add(&ui.Title, ui.RoomCode)
	}

	// 换装页
	add(&ui.DressUp, b.sprite(components.ScreenDressUp, cfg.Layout.ComponentsPanel, 0, UIImagePath("components-panel")))

	for i, layerEntity := range wardrobe.Layers {
		layer := layerEntity
		l, _ := ecs.GetComponent[*components.LayerComponent](em, layer)
		tab := b.button(components.ScreenDressUp, RowRect(cfg.Layout.LayerIcons, i), 2, l.ID,
			LayerIconPath(cfg, l.ID),
			func() {
				if actions.SelectLayer != nil {
					actions.SelectLayer(layer)
				}
			},
			func() bool { return actions.LayerSelected != nil && actions.LayerSelected(layer) })
		ui.LayerTabs = append(ui.LayerTabs, tab)
		add(&ui.DressUp, tab)
	}

	top := cfg.UI.TopIcons
	top.Y -= top.H / 2
	setMuted := func(muted bool) func() {
		return func() {
			if actions.SetMuted != nil {
				actions.SetMuted(muted)
			}
		}
	}
	isMuted := func(want bool) func() bool {
		return func() bool { return actions.Muted != nil && actions.Muted() == want }
	}
	add(&ui.DressUp, b.button(components.ScreenDressUp, RowRect(top, 0), 2, "H", UIImagePath("home"), actions.Home, nil))
	add(&ui.DressUp, b.button(components.ScreenDressUp, RowRect(top, 1), 2, "S", UIImagePath("settings-icon"), actions.OpenSettings, nil))
	add(&ui.DressUp, b.button(components.ScreenDressUp, RowRect(top, 2), 2, "M", UIImagePath("mute"), setMuted(true), isMuted(true)))
	add(&ui.DressUp, b.button(components.ScreenDressUp, RowRect(top, 3), 2, "U", UIImagePath("unmute"), setMuted(false), isMuted(false)))

	ui.Dord = b.entity(components.ScreenDressUp, config.Rect{
		X: cfg.Layout.Dord.X, Y: cfg.Layout.Dord.Y, W: cfg.Layout.DordSize.W, H: cfg.Layout.DordSize.H,
	}, components.OverlayZ)
	ui.DressUp = append(ui.DressUp, ui.Dord)
	dordUI, _ := ecs.GetComponent[*components.UIComponent](em, ui.Dord)
	dordUI.Hidden = true
	if img := b.lookup(DordImagePath(cfg)); img != nil {
		ecs.AddComponent(em, ui.Dord, &components.SpriteComponent{Image: img})
	} else {
		ecs.AddComponent(em, ui.Dord, &components.LabelComponent{Text: "dressed!"})
	}

	// 设置页
	add(&ui.Settings, b.label(components.ScreenSettings, cfg.UI.SettingsHeading, "settings"))
	add(&ui.Settings, b.button(components.ScreenSettings, cfg.UI.Close, 2, "X", UIImagePath("close"), actions.CloseSettings, nil))
	add(&ui.Settings, b.button(components.ScreenSettings, cfg.UI.Reset, 2, "reset", UIImagePath("reset"), actions.Reset, nil))

	add(&ui.Settings, b.label(components.ScreenSettings, cfg.UI.VolumeLabel, "volume"))
	ui.Notches = b.entity(components.ScreenSettings, cfg.UI.VolumeNotches, 2)
	b.clickable(ui.Notches)
	ecs.AddComponent(em, ui.Notches, &components.VolumeNotchesComponent{
		Steps:    config.MaxVolumeSteps,
		Current:  state.VolumeSteps,
		OnChange: actions.SetVolume,
	})
	add(&ui.Settings, ui.Notches)

	add(&ui.Settings, b.label(components.ScreenSettings, cfg.UI.CensoredLabel, "censored"))
	ui.CensoredBox = b.entity(components.ScreenSettings, cfg.UI.CensoredBox, 2)
	b.clickable(ui.CensoredBox)
	ecs.AddComponent(em, ui.CensoredBox, &components.CheckboxComponent{
		UncheckedImage: b.lookup(UIImagePath("checkbox")),
		CheckedImage:   b.lookup(UIImagePath("checkbox-checked")),
		IsChecked:      state.Censored,
		Label:          "censored",
		OnToggle:       actions.SetCensored,
	})
	add(&ui.Settings, ui.CensoredBox)

	add(&ui.Settings, b.label(components.ScreenSettings, cfg.UI.BackgroundLabel, "background"))
	for i, bg := range cfg.Backgrounds {
		index := i
		icon := b.button(components.ScreenSettings, RowRect(cfg.UI.BackgroundIcons, i), 2, bg.ID[:1],
			"",
			func() {
				if actions.SelectBackground != nil {
					actions.SelectBackground(index)
				}
			},
			func() bool { return actions.BackgroundSelected != nil && actions.BackgroundSelected(index) })
		ui.BackgroundIcons = append(ui.BackgroundIcons, icon)
		add(&ui.Settings, icon)
	}

	log.Printf("[UIFactory] title=%d dressup=%d settings=%d", len(ui.Title), len(ui.DressUp), len(ui.Settings))
	return ui
}
