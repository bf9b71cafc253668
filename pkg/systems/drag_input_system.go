package systems

import (
	"github.com/decker502/dressup/pkg/ecs"
)

// DragInputSystem 把指针事件翻译成换装系统的拖拽操作
//
//   - 在服饰点击区域内按下：BeginDrag（抓取点相对点击区域）
//   - 按住移动：UpdateDrag
//   - 在任意位置松开：EndDrag
//
// 只有正在拖拽的服饰会跟随指针，松开是全局的。
type DragInputSystem struct {
	wardrobe *WardrobeSystem
	input    PointerInput
}

// NewDragInputSystem 创建拖拽输入系统
func NewDragInputSystem(wardrobe *WardrobeSystem) *DragInputSystem {
	return NewDragInputSystemWithInput(wardrobe, defaultPointerInput)
}

// NewDragInputSystemWithInput 创建带自定义指针输入的拖拽输入系统（用于测试）
func NewDragInputSystemWithInput(wardrobe *WardrobeSystem, input PointerInput) *DragInputSystem {
	return &DragInputSystem{
		wardrobe: wardrobe,
		input:    input,
	}
}

// Update 处理本帧的指针事件
func (s *DragInputSystem) Update(deltaTime float64) {
	x, y := s.input.Position()

	if s.input.JustPressed() && s.wardrobe.Dragging() == ecs.NoEntity {
		if id := s.wardrobe.WearableAt(x, y); id != ecs.NoEntity {
			hit := s.wardrobe.HitRect(id)
			s.wardrobe.BeginDrag(id, x-hit.X, y-hit.Y)
		}
	} else if s.wardrobe.Dragging() != ecs.NoEntity && s.input.Pressed() {
		s.wardrobe.UpdateDrag(x, y)
	}

	if s.input.JustReleased() && s.wardrobe.Dragging() != ecs.NoEntity {
		s.wardrobe.UpdateDrag(x, y)
		s.wardrobe.EndDrag()
	}
}
