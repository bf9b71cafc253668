package systems

import (
	"log"
	"math"

	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/config"
	"github.com/decker502/dressup/pkg/ecs"
)

// MedalUnlocker 成就上报接口
// 实现必须立即返回（fire-and-forget），不能阻塞游戏循环
type MedalUnlocker interface {
	Unlock(medalID int)
}

// WardrobeSystem 换装核心状态机
//
// 职责：
//   - 拖拽：BeginDrag / UpdateDrag / EndDrag，同一时刻最多一件服饰处于拖拽中
//   - 吸附：松开时与吸附槽的偏移在容差内则 Snap，否则 Unsnap
//   - 层级：吸附的部件使用声明的 BaseZ，未吸附的部件抬升到 max(BaseZ)+ElevationOffset
//   - 完成检测：每次 Snap 后检查所有必选服饰是否都已穿上
//   - 图层选择、重置、审查模式、彩蛋
//
// 所有方法都在 Ebitengine 的 Update 中调用，不做任何同步。
type WardrobeSystem struct {
	entityManager *ecs.EntityManager
	medals        MedalUnlocker

	origin       config.Point
	screenWidth  int
	screenHeight int

	layers    []ecs.EntityID          // 按声明顺序
	wearables []ecs.EntityID          // 按声明顺序
	byID      map[string]ecs.EntityID // 服饰 ID -> 实体
	defaults  map[ecs.EntityID]bool

	secret      ecs.EntityID
	secretMedal int
	dressMedal  int

	censored   bool
	dragging   ecs.EntityID
	completing bool

	completions int

	// OnDressed 全部穿上时调用（在服饰被重置之前）
	OnDressed func()
	// OnSecret 彩蛋服饰被穿上后调用
	OnSecret func()
}

// NewWardrobeSystem 创建换装系统
// 服饰、部件和图层实体必须已经由 entities.NewWardrobeEntities 创建
// medals 为 nil 时不上报成就
func NewWardrobeSystem(em *ecs.EntityManager, cfg *config.VariantConfig, medals MedalUnlocker) *WardrobeSystem {
	s := &WardrobeSystem{
		entityManager: em,
		medals:        medals,
		origin:        cfg.Layout.ComponentsOrigin,
		screenWidth:   cfg.Screen.Width,
		screenHeight:  cfg.Screen.Height,
		byID:          make(map[string]ecs.EntityID),
		defaults:      make(map[ecs.EntityID]bool),
		dressMedal:    cfg.Medals.Completion,
	}

	s.layers = ecs.GetEntitiesWith1[*components.LayerComponent](em)
	s.wearables = ecs.GetEntitiesWith1[*components.WearableComponent](em)
	for _, id := range s.wearables {
		w, _ := ecs.GetComponent[*components.WearableComponent](em, id)
		s.byID[w.ID] = id
	}

	for _, def := range cfg.Defaults {
		if id, ok := s.byID[def]; ok {
			s.defaults[id] = true
		}
	}
	if cfg.Secret != nil {
		s.secret = s.byID[cfg.Secret.Component]
		s.secretMedal = cfg.Secret.Medal
	}

	log.Printf("[WardrobeSystem] %d layers, %d wearables, secret=%v", len(s.layers), len(s.wearables), s.secret != ecs.NoEntity)
	return s
}

// Lookup 按服饰 ID 查找实体
func (s *WardrobeSystem) Lookup(id string) (ecs.EntityID, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Wearables 返回所有服饰实体（声明顺序）
func (s *WardrobeSystem) Wearables() []ecs.EntityID {
	return s.wearables
}

// Layers 返回所有图层实体（声明顺序）
func (s *WardrobeSystem) Layers() []ecs.EntityID {
	return s.layers
}

// Dragging 返回正在拖拽的服饰，没有时返回 ecs.NoEntity
func (s *WardrobeSystem) Dragging() ecs.EntityID {
	return s.dragging
}

// Censored 返回是否处于审查模式
func (s *WardrobeSystem) Censored() bool {
	return s.censored
}

// Completions 返回本次会话中完成换装的次数
func (s *WardrobeSystem) Completions() int {
	return s.completions
}

// Origin 返回服饰坐标原点
func (s *WardrobeSystem) Origin() config.Point {
	return s.origin
}

func (s *WardrobeSystem) wearable(id ecs.EntityID) *components.WearableComponent {
	w, _ := ecs.GetComponent[*components.WearableComponent](s.entityManager, id)
	return w
}

// anchor 返回人物底图锚点；底图尚未布局时 ok 为 false
func (s *WardrobeSystem) anchor() (config.Point, bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.BaseFigureComponent](s.entityManager) {
		base, _ := ecs.GetComponent[*components.BaseFigureComponent](s.entityManager, id)
		return base.Anchor, true
	}
	return config.Point{}, false
}

// locked 审查模式下强制穿上的服饰不可拖动
func (s *WardrobeSystem) locked(w *components.WearableComponent) bool {
	return s.censored && w.RequiredForCensored
}

// BeginDrag 开始拖拽
// grabX/grabY 是抓取点相对点击区域（外框减去内缩）左上角的偏移，
// 以占外框尺寸的比例保存，拖拽计算与缩放无关。
// 返回 false 表示拒绝：实体不是服饰、已有服饰在拖拽、或被审查模式锁定。
func (s *WardrobeSystem) BeginDrag(id ecs.EntityID, grabX, grabY int) bool {
	w := s.wearable(id)
	if w == nil {
		return false
	}
	if s.dragging != ecs.NoEntity {
		return false
	}
	if s.locked(w) {
		log.Printf("[WardrobeSystem] %s is locked in censored mode", w.ID)
		return false
	}

	w.GrabPctX = float64(grabX) / float64(w.Size.W)
	w.GrabPctY = float64(grabY) / float64(w.Size.H)
	w.Dragging = true
	s.dragging = id

	s.SelectLayer(w.Layer)
	return true
}

// UpdateDrag 指针移动时更新拖拽位置
// 候选位置使点击区域的任何一边超出屏幕时静默忽略，返回 false
func (s *WardrobeSystem) UpdateDrag(pointerX, pointerY int) bool {
	if s.dragging == ecs.NoEntity {
		return false
	}
	w := s.wearable(s.dragging)

	candidate := config.Point{
		X: pointerX - s.origin.X - roundInt(float64(w.Size.W)*w.GrabPctX) - w.ClickInset.Left,
		Y: pointerY - s.origin.Y - roundInt(float64(w.Size.H)*w.GrabPctY) - w.ClickInset.Top,
	}

	left := s.origin.X + candidate.X + w.ClickInset.Left
	top := s.origin.Y + candidate.Y + w.ClickInset.Top
	right := s.origin.X + candidate.X + w.Size.W - w.ClickInset.Right
	bottom := s.origin.Y + candidate.Y + w.Size.H - w.ClickInset.Bottom
	if left < 0 || top < 0 || right > s.screenWidth || bottom > s.screenHeight {
		return false
	}

	w.Position = candidate
	return true
}

// EndDrag 结束拖拽，按偏移决定吸附或释放
// 指针在任何位置松开都会调用；返回是否吸附
func (s *WardrobeSystem) EndDrag() bool {
	if s.dragging == ecs.NoEntity {
		return false
	}
	id := s.dragging
	w := s.wearable(id)
	w.Dragging = false
	s.dragging = ecs.NoEntity

	dx, dy, ok := s.snapOffset(w)
	if ok && abs(dx) < config.SnapTolerancePx && abs(dy) < config.SnapTolerancePx {
		return s.Snap(id)
	}

	s.Unsnap(id, false)
	return false
}

// snapOffset 当前外框位置与吸附槽的有符号偏移
func (s *WardrobeSystem) snapOffset(w *components.WearableComponent) (int, int, bool) {
	anchor, ok := s.anchor()
	if !ok {
		return 0, 0, false
	}
	dx := (s.origin.X + w.Position.X) - (anchor.X + w.SnapOffset.X)
	dy := (s.origin.Y + w.Position.Y) - (anchor.Y + w.SnapOffset.Y)
	return dx, dy, true
}

// Snap 把服饰固定到吸附槽
// 位置减去实测偏移，落点与吸附槽完全一致；部件层级回到声明值。
// 锚点尚未布局时不做任何事并返回 false。
func (s *WardrobeSystem) Snap(id ecs.EntityID) bool {
	w := s.wearable(id)
	if w == nil {
		return false
	}
	dx, dy, ok := s.snapOffset(w)
	if !ok {
		log.Printf("[WardrobeSystem] cannot snap %s: base figure not laid out", w.ID)
		return false
	}

	w.Position.X -= dx
	w.Position.Y -= dy
	w.Snapped = true

	for _, pid := range w.Pieces {
		if piece, ok := ecs.GetComponent[*components.PieceComponent](s.entityManager, pid); ok {
			piece.EffectiveZ = piece.BaseZ
		}
	}

	s.checkCompletion()
	return true
}

// Unsnap 取下服饰
// 所属图层未选中或 forceReset 为 true 时回到初始位置；部件抬升到拖拽层
func (s *WardrobeSystem) Unsnap(id ecs.EntityID, forceReset bool) {
	w := s.wearable(id)
	if w == nil {
		return
	}
	w.Snapped = false

	if forceReset || !s.layerSelected(w.Layer) {
		w.Position = w.Start
	}

	elevated := s.maxBaseZ(w) + config.ElevationOffset
	for _, pid := range w.Pieces {
		if piece, ok := ecs.GetComponent[*components.PieceComponent](s.entityManager, pid); ok {
			piece.EffectiveZ = elevated
		}
	}
}

func (s *WardrobeSystem) maxBaseZ(w *components.WearableComponent) int {
	maxZ := 0
	for _, pid := range w.Pieces {
		if piece, ok := ecs.GetComponent[*components.PieceComponent](s.entityManager, pid); ok && piece.BaseZ > maxZ {
			maxZ = piece.BaseZ
		}
	}
	return maxZ
}

// checkCompletion 完成检测
// 所有必选服饰同时穿上时触发一次：通知、全部取下、上报成就
func (s *WardrobeSystem) checkCompletion() {
	if s.completing {
		return
	}
	for _, id := range s.wearables {
		w := s.wearable(id)
		if w.Required && !w.Snapped {
			return
		}
	}

	s.completing = true
	defer func() { s.completing = false }()

	s.completions++
	log.Printf("[WardrobeSystem] fully dressed (#%d)", s.completions)

	if s.OnDressed != nil {
		s.OnDressed()
	}

	for _, id := range s.wearables {
		s.Unsnap(id, false)
	}
	if s.censored {
		s.snapCensored()
	}

	s.unlock(s.dressMedal)
}

func (s *WardrobeSystem) unlock(medalID int) {
	if medalID == 0 || s.medals == nil {
		return
	}
	s.medals.Unlock(medalID)
}

// layerSelected 判断图层是否选中
func (s *WardrobeSystem) layerSelected(layer ecs.EntityID) bool {
	l, ok := ecs.GetComponent[*components.LayerComponent](s.entityManager, layer)
	return ok && l.Selected
}

// SelectLayer 选中图层（互斥）
func (s *WardrobeSystem) SelectLayer(layer ecs.EntityID) {
	if !ecs.HasComponent[*components.LayerComponent](s.entityManager, layer) {
		return
	}
	for _, id := range s.layers {
		l, _ := ecs.GetComponent[*components.LayerComponent](s.entityManager, id)
		l.Selected = id == layer
	}
}

// SelectedLayer 返回当前选中的图层
func (s *WardrobeSystem) SelectedLayer() ecs.EntityID {
	for _, id := range s.layers {
		l, _ := ecs.GetComponent[*components.LayerComponent](s.entityManager, id)
		if l.Selected {
			return id
		}
	}
	return ecs.NoEntity
}

// Reset 恢复初始穿戴
// 选中第一个图层，取下全部服饰并回到初始位置，然后重新穿上默认服饰
// （审查模式下还有强制服饰）。重置过程中不做完成检测。
func (s *WardrobeSystem) Reset() {
	if len(s.layers) > 0 {
		s.SelectLayer(s.layers[0])
	}

	if s.dragging != ecs.NoEntity {
		if w := s.wearable(s.dragging); w != nil {
			w.Dragging = false
		}
		s.dragging = ecs.NoEntity
	}

	s.completing = true
	for _, id := range s.wearables {
		s.Unsnap(id, true)
	}
	for _, id := range s.wearables {
		if s.defaults[id] {
			s.Snap(id)
		}
	}
	if s.censored {
		s.snapCensored()
	}
	s.completing = false

	log.Printf("[WardrobeSystem] reset")
}

// SetCensored 切换审查模式
// 开启时强制穿上 requiredForCensored 服饰，并在开启期间禁止拖动它们
func (s *WardrobeSystem) SetCensored(on bool) {
	s.censored = on
	if on {
		s.snapCensored()
	}
	log.Printf("[WardrobeSystem] censored mode: %v", on)
}

func (s *WardrobeSystem) snapCensored() {
	for _, id := range s.wearables {
		w := s.wearable(id)
		if w.RequiredForCensored && !w.Snapped {
			s.Snap(id)
		}
	}
}

// HasSecret 返回变体是否配置了彩蛋
func (s *WardrobeSystem) HasSecret() bool {
	return s.secret != ecs.NoEntity
}

// TriggerSecret 彩蛋：取下彩蛋所在图层中所有已穿上的服饰，然后穿上彩蛋服饰
func (s *WardrobeSystem) TriggerSecret() bool {
	if s.secret == ecs.NoEntity {
		return false
	}
	secret := s.wearable(s.secret)

	for _, id := range s.wearables {
		if id == s.secret {
			continue
		}
		w := s.wearable(id)
		if w.Layer != secret.Layer || !w.Snapped || s.locked(w) {
			continue
		}
		s.Unsnap(id, true)
	}

	if !s.Snap(s.secret) {
		return false
	}
	log.Printf("[WardrobeSystem] secret unlocked: %s", secret.ID)

	if s.OnSecret != nil {
		s.OnSecret()
	}
	s.unlock(s.secretMedal)
	return true
}

// Visible 判断服饰当前是否可见（也决定能否被点中）
// 已穿上、正在拖拽、或者所属图层选中且不是隐藏服饰
func (s *WardrobeSystem) Visible(id ecs.EntityID) bool {
	w := s.wearable(id)
	if w == nil {
		return false
	}
	if w.Snapped || w.Dragging {
		return true
	}
	return !w.HiddenFromList && s.layerSelected(w.Layer)
}

// HitRect 返回服饰点击区域（屏幕游戏像素）
func (s *WardrobeSystem) HitRect(id ecs.EntityID) config.Rect {
	w := s.wearable(id)
	if w == nil {
		return config.Rect{}
	}
	return config.Rect{
		X: s.origin.X + w.Position.X + w.ClickInset.Left,
		Y: s.origin.Y + w.Position.Y + w.ClickInset.Top,
		W: w.Size.W - w.ClickInset.Left - w.ClickInset.Right,
		H: w.Size.H - w.ClickInset.Top - w.ClickInset.Bottom,
	}
}

// WearableAt 返回该点下最上层的可见服饰，没有时返回 ecs.NoEntity
func (s *WardrobeSystem) WearableAt(x, y int) ecs.EntityID {
	order := RenderOrder(s.entityManager)
	for i := len(order) - 1; i >= 0; i-- {
		piece, _ := ecs.GetComponent[*components.PieceComponent](s.entityManager, order[i])
		if !s.Visible(piece.Owner) {
			continue
		}
		if s.HitRect(piece.Owner).Contains(x, y) {
			return piece.Owner
		}
	}
	return ecs.NoEntity
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
