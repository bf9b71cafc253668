package systems

import (
	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/ecs"
)

// WearableSnapshot 单件服饰的只读快照
type WearableSnapshot struct {
	ID       string `json:"id"`
	Layer    string `json:"layer"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Snapped  bool   `json:"snapped"`
	Dragging bool   `json:"dragging"`
	Visible  bool   `json:"visible"`
}

// OutfitSnapshot 当前穿戴状态的不可变快照
// 每帧 Update 之后生成，供调试检查器在其他 goroutine 读取
type OutfitSnapshot struct {
	Variant     string             `json:"variant"`
	Screen      string             `json:"screen"`
	Layer       string             `json:"layer"`
	Background  string             `json:"background"`
	Censored    bool               `json:"censored"`
	Completions int                `json:"completions"`
	Dressed     []string           `json:"dressed"`
	Wearables   []WearableSnapshot `json:"wearables"`
}

// Snapshot 复制当前状态；返回值不与实体共享任何可变数据
func (s *WardrobeSystem) Snapshot(variant string, backgrounds *BackgroundSystem) *OutfitSnapshot {
	snap := &OutfitSnapshot{
		Variant:     variant,
		Censored:    s.censored,
		Completions: s.completions,
		Dressed:     []string{},
		Wearables:   make([]WearableSnapshot, 0, len(s.wearables)),
	}

	if l, ok := ecs.GetComponent[*components.LayerComponent](s.entityManager, s.SelectedLayer()); ok {
		snap.Layer = l.ID
	}
	if backgrounds != nil {
		if bg, ok := ecs.GetComponent[*components.BackgroundComponent](s.entityManager, backgrounds.Selected()); ok {
			snap.Background = bg.ID
		}
	}

	for _, id := range s.wearables {
		w := s.wearable(id)
		snap.Wearables = append(snap.Wearables, WearableSnapshot{
			ID:       w.ID,
			Layer:    w.LayerID,
			X:        w.Position.X,
			Y:        w.Position.Y,
			Snapped:  w.Snapped,
			Dragging: w.Dragging,
			Visible:  s.Visible(id),
		})
		if w.Snapped {
			snap.Dressed = append(snap.Dressed, w.ID)
		}
	}
	return snap
}

// Wearable 按 ID 查找快照中的服饰
func (o *OutfitSnapshot) Wearable(id string) (WearableSnapshot, bool) {
	for _, w := range o.Wearables {
		if w.ID == id {
			return w, true
		}
	}
	return WearableSnapshot{}, false
}
