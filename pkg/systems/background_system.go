package systems

import (
	"log"

	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/config"
	"github.com/decker502/dressup/pkg/ecs"
)

// BackgroundSystem 背景选择与云层滚动
//
// 每 config.CloudTickInterval 秒所有背景的云层偏移减一，到 0 后回绕到周期减一。
// 周期为云层图宽度，没有云层图时为屏幕宽度。
// 绘制是幂等的，只读取偏移，因此 tick、拖拽、窗口缩放都可以随时触发重绘。
type BackgroundSystem struct {
	entityManager *ecs.EntityManager
	screenWidth   int
	accumulator   float64
}

// NewBackgroundSystem 创建背景系统
func NewBackgroundSystem(em *ecs.EntityManager, screenWidth int) *BackgroundSystem {
	return &BackgroundSystem{
		entityManager: em,
		screenWidth:   screenWidth,
	}
}

// Update 累计时间，按固定间隔推进云层
func (s *BackgroundSystem) Update(deltaTime float64) {
	s.accumulator += deltaTime
	for s.accumulator >= config.CloudTickInterval {
		s.accumulator -= config.CloudTickInterval
		s.Tick()
	}
}

// Tick 推进一次云层滚动
func (s *BackgroundSystem) Tick() {
	for _, id := range s.backgrounds() {
		bg, _ := ecs.GetComponent[*components.BackgroundComponent](s.entityManager, id)
		period := bg.CloudWidth
		if period <= 0 {
			period = s.screenWidth
		}
		if bg.CloudOffset <= 0 || bg.CloudOffset > period {
			bg.CloudOffset = period - 1
		} else {
			bg.CloudOffset--
		}
	}
}

func (s *BackgroundSystem) backgrounds() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.BackgroundComponent](s.entityManager)
}

// Selected 返回当前选中的背景实体
func (s *BackgroundSystem) Selected() ecs.EntityID {
	for _, id := range s.backgrounds() {
		bg, _ := ecs.GetComponent[*components.BackgroundComponent](s.entityManager, id)
		if bg.Selected {
			return id
		}
	}
	return ecs.NoEntity
}

// SelectedIndex 返回当前选中背景的序号，没有时返回 -1
func (s *BackgroundSystem) SelectedIndex() int {
	for i, id := range s.backgrounds() {
		bg, _ := ecs.GetComponent[*components.BackgroundComponent](s.entityManager, id)
		if bg.Selected {
			return i
		}
	}
	return -1
}

// Select 按序号选中背景（互斥），越界时忽略
func (s *BackgroundSystem) Select(index int) {
	ids := s.backgrounds()
	if index < 0 || index >= len(ids) {
		return
	}
	for i, id := range ids {
		bg, _ := ecs.GetComponent[*components.BackgroundComponent](s.entityManager, id)
		bg.Selected = i == index
	}
	log.Printf("[BackgroundSystem] selected background #%d", index)
}

// SelectRelative 相对当前背景循环选择：第一个的上一个是最后一个，最后一个的下一个是第一个
func (s *BackgroundSystem) SelectRelative(delta int) {
	n := len(s.backgrounds())
	if n == 0 {
		return
	}
	current := s.SelectedIndex()
	if current < 0 {
		current = 0
	}
	s.Select(((current+delta)%n + n) % n)
}
