package systems

import (
	"log"
	"sort"

	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/ecs"
)

// ButtonSystem 界面控件点击系统
//
// 职责：
//   - 更新当前界面可点击控件的悬停状态
//   - 指针在同一个控件上按下并松开时分发点击：
//     按钮 OnClick、复选框切换、音量刻度、房间号成就
//   - 任意按下都算一次交互（首次交互开始播放音乐）
//
// 控件按 UIComponent.Z 从高到低命中，只有最上层的控件响应。
type ButtonSystem struct {
	entityManager *ecs.EntityManager
	input         PointerInput
	medals        MedalUnlocker

	screen  components.ScreenID
	pressed ecs.EntityID

	// OnInteract 指针按下时调用
	OnInteract func()
}

// NewButtonSystem 创建控件点击系统
func NewButtonSystem(em *ecs.EntityManager, medals MedalUnlocker) *ButtonSystem {
	return NewButtonSystemWithInput(em, medals, defaultPointerInput)
}

// NewButtonSystemWithInput 创建带自定义指针输入的控件点击系统（用于测试）
func NewButtonSystemWithInput(em *ecs.EntityManager, medals MedalUnlocker, input PointerInput) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
		input:         input,
		medals:        medals,
	}
}

// SetScreen 切换当前界面，只有该界面的控件响应
func (s *ButtonSystem) SetScreen(screen components.ScreenID) {
	s.screen = screen
	s.pressed = ecs.NoEntity
}

// Screen 返回当前界面
func (s *ButtonSystem) Screen() components.ScreenID {
	return s.screen
}

// Pressing 指针是否正按在某个控件上（按下到松开之间）
func (s *ButtonSystem) Pressing() bool {
	return s.pressed != ecs.NoEntity
}

// Update 处理本帧的指针事件
func (s *ButtonSystem) Update(deltaTime float64) {
	x, y := s.input.Position()
	controls := s.controls()

	hit := ecs.NoEntity
	for _, id := range controls {
		clickable, _ := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id)
		ui, _ := ecs.GetComponent[*components.UIComponent](s.entityManager, id)
		clickable.IsHovered = false
		if hit == ecs.NoEntity && clickable.IsEnabled && ui.Bounds.Contains(x, y) {
			hit = id
			clickable.IsHovered = true
		}
	}

	if s.input.JustPressed() {
		s.pressed = hit
		if s.OnInteract != nil {
			s.OnInteract()
		}
	}

	if s.input.JustReleased() {
		if hit != ecs.NoEntity && hit == s.pressed {
			s.click(hit, x, y)
		}
		s.pressed = ecs.NoEntity
	}
}

// controls 当前界面可见的控件，按 Z 从高到低
func (s *ButtonSystem) controls() []ecs.EntityID {
	var result []ecs.EntityID
	zs := make(map[ecs.EntityID]int)
	for _, id := range ecs.GetEntitiesWith2[*components.ClickableComponent, *components.UIComponent](s.entityManager) {
		ui, _ := ecs.GetComponent[*components.UIComponent](s.entityManager, id)
		if ui.Screen != s.screen || ui.Hidden {
			continue
		}
		zs[id] = ui.Z
		result = append(result, id)
	}
	sort.SliceStable(result, func(i, j int) bool { return zs[result[i]] > zs[result[j]] })
	return result
}

func (s *ButtonSystem) click(id ecs.EntityID, x, y int) {
	em := s.entityManager

	if button, ok := ecs.GetComponent[*components.ButtonComponent](em, id); ok {
		log.Printf("[ButtonSystem] click %q on %s", button.Label, s.screen)
		if button.OnClick != nil {
			button.OnClick()
		}
		return
	}

	if checkbox, ok := ecs.GetComponent[*components.CheckboxComponent](em, id); ok {
		checkbox.IsChecked = !checkbox.IsChecked
		if checkbox.OnToggle != nil {
			checkbox.OnToggle(checkbox.IsChecked)
		}
		return
	}

	if notches, ok := ecs.GetComponent[*components.VolumeNotchesComponent](em, id); ok {
		ui, _ := ecs.GetComponent[*components.UIComponent](em, id)
		index := NotchIndexAt(ui.Bounds, notches.Steps, x, y)
		if index < 0 {
			return
		}
		notches.Current = NextVolumeStep(notches.Current, index)
		if notches.OnChange != nil {
			notches.OnChange(notches.Current)
		}
		return
	}

	if room, ok := ecs.GetComponent[*components.RoomCodeComponent](em, id); ok {
		if room.Revealed {
			return
		}
		room.Revealed = true
		log.Printf("[ButtonSystem] room code revealed")
		if room.MedalID != 0 && s.medals != nil {
			s.medals.Unlock(room.MedalID)
		}
	}
}
