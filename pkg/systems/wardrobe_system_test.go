package systems

import (
	"reflect"
	"testing"

	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/config"
	"github.com/decker502/dressup/pkg/ecs"
)

func TestEndDragSnapTolerance(t *testing.T) {
	tests := []struct {
		name       string
		dx, dy     int
		wantSnap   bool
		wantZBands []int // bob-back, bob-front
	}{
		{"偏移(31,-10)在容差内", 31, -10, true, []int{4, 9}},
		{"偏移(0,0)正好对齐", 0, 0, true, []int{4, 9}},
		{"偏移(-31,31)在容差内", -31, 31, true, []int{4, 9}},
		{"偏移(40,0)超出容差", 40, 0, false, []int{109, 109}},
		{"偏移(32,0)等于容差不吸附", 32, 0, false, []int{109, 109}},
		{"偏移(0,32)等于容差不吸附", 0, 32, false, []int{109, 109}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWardrobeFixture(t)

			snapped := f.dragTo(t, "bob", tt.dx, tt.dy)
			if snapped != tt.wantSnap {
				t.Fatalf("EndDrag() = %v, want %v", snapped, tt.wantSnap)
			}

			w := f.wearable(t, "bob")
			if w.Snapped != tt.wantSnap {
				t.Errorf("Snapped = %v, want %v", w.Snapped, tt.wantSnap)
			}
			if w.Dragging || f.ws.Dragging() != ecs.NoEntity {
				t.Error("dragging state must be cleared after EndDrag")
			}

			slot := f.slot(t, "bob")
			if tt.wantSnap {
				// 吸附后无残余偏移
				if w.Position != slot {
					t.Errorf("Position = %+v, want exact slot %+v", w.Position, slot)
				}
			} else {
				// 图层仍然选中，停留在松开的位置
				want := config.Point{X: slot.X + tt.dx, Y: slot.Y + tt.dy}
				if w.Position != want {
					t.Errorf("Position = %+v, want release point %+v", w.Position, want)
				}
			}

			got := []int{f.pieceZ(t, "bob-back"), f.pieceZ(t, "bob-front")}
			if !reflect.DeepEqual(got, tt.wantZBands) {
				t.Errorf("piece z = %v, want %v", got, tt.wantZBands)
			}
		})
	}
}

func TestEndDragOutsideToleranceResetsWhenLayerUnselected(t *testing.T) {
	f := newWardrobeFixture(t)
	id := f.id(t, "bob")

	if !f.ws.BeginDrag(id, 0, 0) {
		t.Fatal("BeginDrag rejected")
	}
	if !f.ws.UpdateDrag(300, 150) {
		t.Fatal("UpdateDrag rejected")
	}

	// 拖拽中切换到另一个图层
	f.ws.SelectLayer(f.layerIDs["clothes"])
	if f.ws.EndDrag() {
		t.Fatal("far away release must not snap")
	}

	w := f.wearable(t, "bob")
	if w.Snapped {
		t.Error("bob should be unplaced")
	}
	if w.Position != w.Start {
		t.Errorf("Position = %+v, want start %+v", w.Position, w.Start)
	}
}

func TestSnapIsIdempotent(t *testing.T) {
	f := newWardrobeFixture(t)
	id := f.id(t, "shirt")

	if !f.ws.Snap(id) {
		t.Fatal("Snap failed")
	}
	first := f.wearable(t, "shirt").Position

	if !f.ws.Snap(id) {
		t.Fatal("second Snap failed")
	}
	if got := f.wearable(t, "shirt").Position; got != first {
		t.Errorf("second Snap moved the wearable: %+v -> %+v", first, got)
	}
	if first != f.slot(t, "shirt") {
		t.Errorf("Snap position %+v, want slot %+v", first, f.slot(t, "shirt"))
	}
}

func TestBeginDragSelectsLayerAndRecordsGrab(t *testing.T) {
	f := newWardrobeFixture(t)
	id := f.id(t, "pants")

	if f.ws.SelectedLayer() != f.layerIDs["hair"] {
		t.Fatal("first layer should be selected initially")
	}
	if !f.ws.BeginDrag(id, 10, 25) {
		t.Fatal("BeginDrag rejected")
	}
	if f.ws.SelectedLayer() != f.layerIDs["clothes"] {
		t.Error("BeginDrag should select the owning layer")
	}

	w := f.wearable(t, "pants")
	if !w.Dragging || f.ws.Dragging() != id {
		t.Error("pants should be dragging")
	}
	if w.GrabPctX != 0.25 || w.GrabPctY != 0.5 {
		t.Errorf("grab pct = (%v, %v), want (0.25, 0.5)", w.GrabPctX, w.GrabPctY)
	}

	// 同一时刻只能拖一件
	if f.ws.BeginDrag(f.id(t, "bob"), 0, 0) {
		t.Error("second BeginDrag must be rejected while dragging")
	}
	if f.ws.BeginDrag(f.ents.Layers[0], 0, 0) {
		t.Error("BeginDrag on a non-wearable must be rejected")
	}
}

func TestUpdateDragBounds(t *testing.T) {
	// bob: 40x40，下内缩 10；抓取点 (5,5)；原点 (100,40)
	tests := []struct {
		name   string
		px, py int
		accept bool
	}{
		{"屏幕内", 200, 100, true},
		{"左边界恰好贴边", 5, 100, true},
		{"左边超出", 4, 100, false},
		{"上边超出", 200, 4, false},
		{"右边界恰好贴边", 349, 100, true},
		{"右边超出", 350, 100, false},
		{"下边界按内缩计算恰好贴边", 200, 191, true},
		{"下边超出", 200, 192, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWardrobeFixture(t)
			if !f.ws.BeginDrag(f.id(t, "bob"), 5, 5) {
				t.Fatal("BeginDrag rejected")
			}
			before := f.wearable(t, "bob").Position

			got := f.ws.UpdateDrag(tt.px, tt.py)
			if got != tt.accept {
				t.Fatalf("UpdateDrag(%d, %d) = %v, want %v", tt.px, tt.py, got, tt.accept)
			}

			after := f.wearable(t, "bob").Position
			if tt.accept {
				want := config.Point{X: tt.px - 100 - 5, Y: tt.py - 40 - 5}
				if after != want {
					t.Errorf("Position = %+v, want %+v", after, want)
				}
			} else if after != before {
				t.Errorf("rejected update moved the wearable: %+v -> %+v", before, after)
			}
		})
	}
}

func TestUpdateDragWithoutDragIsNoop(t *testing.T) {
	f := newWardrobeFixture(t)
	if f.ws.UpdateDrag(100, 100) {
		t.Error("UpdateDrag without an active drag must return false")
	}
	if f.ws.EndDrag() {
		t.Error("EndDrag without an active drag must return false")
	}
}

func TestUnsnapElevation(t *testing.T) {
	f := newWardrobeFixture(t)
	id := f.id(t, "shirt")

	f.ws.Snap(id)
	if z := f.pieceZ(t, "shirt-back"); z != 1 {
		t.Errorf("snapped shirt-back z = %d, want 1", z)
	}
	if z := f.pieceZ(t, "shirt"); z != 8 {
		t.Errorf("snapped shirt z = %d, want 8", z)
	}

	f.ws.Unsnap(id, false)
	for _, piece := range []string{"shirt-back", "shirt"} {
		if z := f.pieceZ(t, piece); z != 8+config.ElevationOffset {
			t.Errorf("unsnapped %s z = %d, want %d", piece, z, 8+config.ElevationOffset)
		}
	}
}

func TestUnsnapPositionRules(t *testing.T) {
	tests := []struct {
		name       string
		selectHair bool
		force      bool
		wantStart  bool
	}{
		{"图层选中且不强制：原地取下", true, false, false},
		{"图层选中但强制：回到初始位置", true, true, true},
		{"图层未选中：回到初始位置", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWardrobeFixture(t)
			id := f.id(t, "bob")
			f.ws.Snap(id)

			if tt.selectHair {
				f.ws.SelectLayer(f.layerIDs["hair"])
			} else {
				f.ws.SelectLayer(f.layerIDs["clothes"])
			}
			f.ws.Unsnap(id, tt.force)

			w := f.wearable(t, "bob")
			if w.Snapped {
				t.Fatal("Unsnap should clear Snapped")
			}
			atStart := w.Position == w.Start
			if atStart != tt.wantStart {
				t.Errorf("position %+v at start = %v, want %v", w.Position, atStart, tt.wantStart)
			}
		})
	}
}

func TestCompletionFiresOncePerFullOutfit(t *testing.T) {
	f := newWardrobeFixture(t)
	required := []string{"bob", "hat", "shirt", "pants"}

	for i, name := range required {
		f.ws.Snap(f.id(t, name))
		if i < len(required)-1 && f.dressed != 0 {
			t.Fatalf("completion fired early after %s", name)
		}
	}
	if f.dressed != 1 {
		t.Fatalf("completion fired %d times, want 1", f.dressed)
	}
	if !reflect.DeepEqual(f.medals.unlocked, []int{65035}) {
		t.Errorf("medals = %v, want [65035]", f.medals.unlocked)
	}

	// 完成后全部取下
	for _, name := range append(required, "cape") {
		if f.wearable(t, name).Snapped {
			t.Errorf("%s should be unplaced after completion", name)
		}
	}

	// 单独穿上彩蛋不会再次触发
	f.ws.Snap(f.id(t, "cape"))
	if f.dressed != 1 {
		t.Errorf("snapping the optional wearable alone re-fired completion")
	}

	// 取下一件必选服饰再穿回去，只触发一次
	for _, name := range []string{"bob", "hat", "shirt"} {
		f.ws.Snap(f.id(t, name))
	}
	f.ws.Unsnap(f.id(t, "shirt"), false)
	f.ws.Snap(f.id(t, "shirt"))
	if f.dressed != 1 {
		t.Fatalf("completion fired without pants")
	}
	f.ws.Snap(f.id(t, "pants"))
	if f.dressed != 2 {
		t.Errorf("completion fired %d times, want 2", f.dressed)
	}
	if f.ws.Completions() != 2 {
		t.Errorf("Completions() = %d, want 2", f.ws.Completions())
	}
}

func TestCompletionViaDragging(t *testing.T) {
	f := newWardrobeFixture(t)
	for _, name := range []string{"bob", "hat", "shirt"} {
		if !f.dragTo(t, name, 3, -2) {
			t.Fatalf("%s did not snap", name)
		}
	}
	if f.dressed != 0 {
		t.Fatal("completion fired early")
	}
	f.dragTo(t, "pants", 0, 0)
	if f.dressed != 1 {
		t.Errorf("completion fired %d times, want 1", f.dressed)
	}

	// 当前选中的是衣服图层：衣服原地取下，头发回到初始位置
	if got := f.wearable(t, "pants").Position; got != f.slot(t, "pants") {
		t.Errorf("pants position %+v, want left in place at %+v", got, f.slot(t, "pants"))
	}
	bob := f.wearable(t, "bob")
	if bob.Position != bob.Start {
		t.Errorf("bob position %+v, want start %+v", bob.Position, bob.Start)
	}
}

func TestCompletionWithoutMedalClient(t *testing.T) {
	f := newWardrobeFixture(t)
	ws := NewWardrobeSystem(f.em, f.cfg, nil)
	for _, name := range []string{"bob", "hat", "shirt", "pants"} {
		ws.Snap(f.id(t, name))
	}
	if ws.Completions() != 1 {
		t.Errorf("Completions() = %d, want 1", ws.Completions())
	}
}

func TestFiveComponentScenario(t *testing.T) {
	f := newWardrobeFixture(t)

	for _, name := range []string{"bob", "hat", "shirt", "pants"} {
		f.ws.Snap(f.id(t, name))
	}
	if f.dressed != 1 {
		t.Fatalf("snapping all four required wearables should complete, got %d", f.dressed)
	}
	for _, name := range []string{"bob", "hat", "shirt", "pants", "cape"} {
		if f.wearable(t, name).Snapped {
			t.Errorf("%s should be unplaced after completion", name)
		}
	}

	f.ws.Snap(f.id(t, "cape"))
	if f.dressed != 1 {
		t.Errorf("secret alone must not complete, dressed = %d", f.dressed)
	}
}

func TestNoAnchorIsOutsideTolerance(t *testing.T) {
	f := newWardrobeFixture(t)
	f.em.DestroyEntity(f.ents.Base)
	f.em.RemoveMarkedEntities()

	id := f.id(t, "bob")
	if !f.ws.BeginDrag(id, 0, 0) {
		t.Fatal("BeginDrag rejected")
	}
	if f.ws.EndDrag() {
		t.Error("EndDrag must not snap without a laid out base figure")
	}
	if f.wearable(t, "bob").Snapped {
		t.Error("bob should stay unplaced")
	}
	if f.ws.Snap(id) {
		t.Error("Snap without anchor must report failure")
	}
}

func TestReset(t *testing.T) {
	f := newWardrobeFixture(t, func(cfg *config.VariantConfig) {
		cfg.Defaults = []string{"hat"}
	})

	f.ws.Snap(f.id(t, "bob"))
	f.ws.Snap(f.id(t, "shirt"))
	f.ws.BeginDrag(f.id(t, "pants"), 0, 0)
	f.ws.UpdateDrag(300, 150)

	f.ws.Reset()

	if f.ws.SelectedLayer() != f.layerIDs["hair"] {
		t.Error("Reset should select the first layer")
	}
	if f.ws.Dragging() != ecs.NoEntity || f.wearable(t, "pants").Dragging {
		t.Error("Reset should cancel the active drag")
	}

	hat := f.wearable(t, "hat")
	if !hat.Snapped || hat.Position != f.slot(t, "hat") {
		t.Errorf("default hat should be snapped at its slot, got snapped=%v pos=%+v", hat.Snapped, hat.Position)
	}
	for _, name := range []string{"bob", "shirt", "pants", "cape"} {
		w := f.wearable(t, name)
		if w.Snapped {
			t.Errorf("%s should be unplaced after reset", name)
		}
		if w.Position != w.Start {
			t.Errorf("%s position %+v, want start %+v", name, w.Position, w.Start)
		}
	}
	if f.dressed != 0 {
		t.Error("Reset must not fire completion")
	}
}

func TestResetDoesNotCompleteWhenDefaultsCoverEverything(t *testing.T) {
	f := newWardrobeFixture(t, func(cfg *config.VariantConfig) {
		cfg.Defaults = []string{"bob", "hat", "shirt", "pants"}
	})
	f.ws.Reset()

	if f.dressed != 0 {
		t.Errorf("Reset fired completion %d times", f.dressed)
	}
	for _, name := range []string{"bob", "hat", "shirt", "pants"} {
		if !f.wearable(t, name).Snapped {
			t.Errorf("default %s should be snapped", name)
		}
	}
}

func TestCensoredMode(t *testing.T) {
	f := newWardrobeFixture(t)
	shirt := f.id(t, "shirt")

	f.ws.SetCensored(true)
	if !f.wearable(t, "shirt").Snapped {
		t.Fatal("censored mode should force-snap shirt")
	}
	if f.ws.BeginDrag(shirt, 0, 0) {
		t.Error("censored wearable must not be draggable")
	}

	// 完成后强制服饰重新穿上
	for _, name := range []string{"bob", "hat", "pants"} {
		f.ws.Snap(f.id(t, name))
	}
	if f.dressed != 1 {
		t.Fatalf("completion fired %d times, want 1", f.dressed)
	}
	if !f.wearable(t, "shirt").Snapped {
		t.Error("shirt should be re-snapped after completion in censored mode")
	}
	if f.wearable(t, "bob").Snapped {
		t.Error("bob should be unplaced after completion")
	}

	f.ws.SetCensored(false)
	if !f.ws.BeginDrag(shirt, 0, 0) {
		t.Error("shirt should be draggable once censored mode is off")
	}
}

func TestTriggerSecret(t *testing.T) {
	f := newWardrobeFixture(t)

	f.ws.Snap(f.id(t, "shirt"))
	f.ws.Snap(f.id(t, "pants"))
	f.ws.Snap(f.id(t, "bob"))

	if !f.ws.TriggerSecret() {
		t.Fatal("TriggerSecret failed")
	}

	cape := f.wearable(t, "cape")
	if !cape.Snapped || cape.Position != f.slot(t, "cape") {
		t.Errorf("cape should be snapped at its slot: snapped=%v pos=%+v", cape.Snapped, cape.Position)
	}
	for _, name := range []string{"shirt", "pants"} {
		w := f.wearable(t, name)
		if w.Snapped || w.Position != w.Start {
			t.Errorf("%s in the secret's layer should be force-unsnapped to start", name)
		}
	}
	if !f.wearable(t, "bob").Snapped {
		t.Error("wearables of other layers must be untouched")
	}
	if f.secrets != 1 {
		t.Errorf("OnSecret called %d times, want 1", f.secrets)
	}
	if !reflect.DeepEqual(f.medals.unlocked, []int{7}) {
		t.Errorf("medals = %v, want [7]", f.medals.unlocked)
	}
}

func TestTriggerSecretKeepsCensoredWearables(t *testing.T) {
	f := newWardrobeFixture(t)
	f.ws.SetCensored(true)

	f.ws.TriggerSecret()
	if !f.wearable(t, "shirt").Snapped {
		t.Error("censored shirt must stay snapped")
	}
}

func TestTriggerSecretWithoutSecret(t *testing.T) {
	f := newWardrobeFixture(t, func(cfg *config.VariantConfig) {
		cfg.Secret = nil
	})
	if f.ws.HasSecret() || f.ws.TriggerSecret() {
		t.Error("variant without a secret must not trigger")
	}
}

func TestSelectLayerIsExclusive(t *testing.T) {
	f := newWardrobeFixture(t)
	f.ws.SelectLayer(f.layerIDs["clothes"])

	selected := 0
	for _, id := range f.ents.Layers {
		l, _ := ecs.GetComponent[*components.LayerComponent](f.em, id)
		if l.Selected {
			selected++
		}
	}
	if selected != 1 || f.ws.SelectedLayer() != f.layerIDs["clothes"] {
		t.Errorf("expected only clothes selected, %d selected", selected)
	}

	// 非图层实体被忽略
	f.ws.SelectLayer(f.id(t, "bob"))
	if f.ws.SelectedLayer() != f.layerIDs["clothes"] {
		t.Error("selecting a non-layer entity must not change the selection")
	}
}

func TestVisibility(t *testing.T) {
	f := newWardrobeFixture(t)

	// 初始选中头发图层
	cases := map[string]bool{"bob": true, "hat": true, "shirt": false, "cape": false}
	for name, want := range cases {
		if got := f.ws.Visible(f.id(t, name)); got != want {
			t.Errorf("Visible(%s) = %v, want %v", name, got, want)
		}
	}

	f.ws.SelectLayer(f.layerIDs["clothes"])
	if f.ws.Visible(f.id(t, "cape")) {
		t.Error("hidden wearable must stay invisible while unplaced")
	}
	f.ws.Snap(f.id(t, "cape"))
	f.ws.SelectLayer(f.layerIDs["hair"])
	if !f.ws.Visible(f.id(t, "cape")) {
		t.Error("snapped wearables are always visible")
	}
}

func TestWearableAt(t *testing.T) {
	f := newWardrobeFixture(t)

	// bob 初始在 (100,40)-(140,80)，点击区域下内缩 10
	if got := f.ws.WearableAt(110, 50); got != f.id(t, "bob") {
		t.Errorf("WearableAt(110,50) = %d, want bob", got)
	}
	if got := f.ws.WearableAt(110, 75); got != ecs.NoEntity {
		t.Errorf("click inset should not be hit, got %d", got)
	}
	// shirt 所在图层未选中
	if got := f.ws.WearableAt(110, 110); got != ecs.NoEntity {
		t.Errorf("unselected layer should not be hit, got %d", got)
	}

	// 吸附的 bob 与未吸附的 hat 重叠时，hat 在上
	f.ws.Snap(f.id(t, "bob"))
	hat := f.wearable(t, "hat")
	hat.Position = f.wearable(t, "bob").Position
	r := f.ws.HitRect(f.id(t, "bob"))
	if got := f.ws.WearableAt(r.X+1, r.Y+1); got != f.id(t, "hat") {
		t.Errorf("elevated hat should be on top, got %d", got)
	}
}

func TestRenderOrder(t *testing.T) {
	f := newWardrobeFixture(t)

	f.ws.Snap(f.id(t, "shirt"))
	f.ws.Snap(f.id(t, "bob"))
	f.ws.BeginDrag(f.id(t, "pants"), 0, 0)

	var got []string
	for _, id := range RenderOrder(f.em) {
		p, _ := ecs.GetComponent[*components.PieceComponent](f.em, id)
		got = append(got, p.ID)
	}

	want := []string{"shirt-back", "bob-back", "shirt", "bob-front", "cape", "hat", "pants"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RenderOrder = %v, want %v", got, want)
	}
}
