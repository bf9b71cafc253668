package systems

import (
	"testing"

	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/config"
	"github.com/decker502/dressup/pkg/ecs"
	"github.com/decker502/dressup/pkg/entities"
)

// recordingMedals 记录上报的成就
type recordingMedals struct {
	unlocked []int
}

func (m *recordingMedals) Unlock(id int) {
	m.unlocked = append(m.unlocked, id)
}

// newTestVariant 5 件服饰（其中 1 件为可选彩蛋）的测试数据表
//
//	原点 (100,40)，人物锚点 (20,30)
//	bob   头发 吸附 (30,0)   40x40 下内缩 10
//	hat   头发 吸附 (30,-10) 40x30
//	shirt 衣服 吸附 (10,50)  40x40 审查模式强制
//	pants 衣服 吸附 (10,80)  40x50
//	cape  衣服 吸附 (10,50)  40x40 隐藏、可选、彩蛋
func newTestVariant() *config.VariantConfig {
	return &config.VariantConfig{
		Name:   "test",
		Screen: config.ScreenConfig{Width: config.ScreenWidth, Height: config.ScreenHeight},
		Layout: config.LayoutConfig{
			Base:             config.Point{X: 20, Y: 30},
			BaseSize:         config.Size{W: 64, H: 174},
			ComponentsOrigin: config.Point{X: 100, Y: 40},
		},
		Medals: config.MedalsConfig{Completion: 65035, RoomCode: 65034},
		Layers: []config.LayerConfig{{ID: "hair"}, {ID: "clothes"}},
		Components: []config.ComponentConfig{
			{ID: "bob", Layer: "hair", Start: config.Point{X: 0, Y: 0}, Snap: config.Point{X: 30, Y: 0},
				Size: config.Size{W: 40, H: 40}, ClickInset: config.Insets{Bottom: 10}},
			{ID: "hat", Layer: "hair", Start: config.Point{X: 50, Y: 0}, Snap: config.Point{X: 30, Y: -10},
				Size: config.Size{W: 40, H: 30}},
			{ID: "shirt", Layer: "clothes", Start: config.Point{X: 0, Y: 60}, Snap: config.Point{X: 10, Y: 50},
				Size: config.Size{W: 40, H: 40}, RequiredForCensored: true},
			{ID: "pants", Layer: "clothes", Start: config.Point{X: 50, Y: 60}, Snap: config.Point{X: 10, Y: 80},
				Size: config.Size{W: 40, H: 50}},
			{ID: "cape", Layer: "clothes", Start: config.Point{X: 100, Y: 60}, Snap: config.Point{X: 10, Y: 50},
				Size: config.Size{W: 40, H: 40}, HiddenFromList: true, Optional: true},
		},
		Pieces: []config.PieceConfig{
			{ID: "bob-back", Component: "bob", Z: 4},
			{ID: "bob-front", Component: "bob", Z: 9},
			{ID: "hat", Component: "hat", Z: 10},
			{ID: "shirt-back", Component: "shirt", Z: 1},
			{ID: "shirt", Component: "shirt", Z: 8},
			{ID: "pants", Component: "pants", Z: 5},
			{ID: "cape", Component: "cape", Z: 8},
		},
		Backgrounds: []config.BackgroundConfig{{ID: "day"}, {ID: "night"}, {ID: "stars"}},
		Secret:      &config.SecretConfig{Component: "cape", Code: "open", Medal: 7},
	}
}

// wardrobeFixture 测试夹具
type wardrobeFixture struct {
	em       *ecs.EntityManager
	cfg      *config.VariantConfig
	ents     *entities.WardrobeEntities
	ws       *WardrobeSystem
	medals   *recordingMedals
	dressed  int
	secrets  int
	byID     map[string]ecs.EntityID
	layerIDs map[string]ecs.EntityID
}

func newWardrobeFixture(t *testing.T, mutate ...func(*config.VariantConfig)) *wardrobeFixture {
	t.Helper()

	cfg := newTestVariant()
	for _, m := range mutate {
		m(cfg)
	}

	f := &wardrobeFixture{
		em:       ecs.NewEntityManager(),
		cfg:      cfg,
		medals:   &recordingMedals{},
		byID:     make(map[string]ecs.EntityID),
		layerIDs: make(map[string]ecs.EntityID),
	}
	f.ents = entities.NewWardrobeEntities(f.em, cfg, nil)
	f.ws = NewWardrobeSystem(f.em, cfg, f.medals)
	f.ws.OnDressed = func() { f.dressed++ }
	f.ws.OnSecret = func() { f.secrets++ }

	for _, id := range f.ents.Wearables {
		w, _ := ecs.GetComponent[*components.WearableComponent](f.em, id)
		f.byID[w.ID] = id
	}
	for _, id := range f.ents.Layers {
		l, _ := ecs.GetComponent[*components.LayerComponent](f.em, id)
		f.layerIDs[l.ID] = id
	}
	return f
}

func (f *wardrobeFixture) id(t *testing.T, wearable string) ecs.EntityID {
	t.Helper()
	id, ok := f.byID[wearable]
	if !ok {
		t.Fatalf("unknown wearable %q", wearable)
	}
	return id
}

func (f *wardrobeFixture) wearable(t *testing.T, name string) *components.WearableComponent {
	t.Helper()
	w, ok := ecs.GetComponent[*components.WearableComponent](f.em, f.id(t, name))
	if !ok {
		t.Fatalf("wearable %q has no component", name)
	}
	return w
}

// slot 返回服饰吸附槽在服饰坐标系下的位置
func (f *wardrobeFixture) slot(t *testing.T, name string) config.Point {
	t.Helper()
	w := f.wearable(t, name)
	return config.Point{
		X: f.cfg.Layout.Base.X + w.SnapOffset.X - f.cfg.Layout.ComponentsOrigin.X,
		Y: f.cfg.Layout.Base.Y + w.SnapOffset.Y - f.cfg.Layout.ComponentsOrigin.Y,
	}
}

// pieceZ 返回部件的有效层级
func (f *wardrobeFixture) pieceZ(t *testing.T, pieceID string) int {
	t.Helper()
	for _, id := range ecs.GetEntitiesWith1[*components.PieceComponent](f.em) {
		p, _ := ecs.GetComponent[*components.PieceComponent](f.em, id)
		if p.ID == pieceID {
			return p.EffectiveZ
		}
	}
	t.Fatalf("unknown piece %q", pieceID)
	return 0
}

// dragTo 用指针拖拽服饰，使松开时外框相对吸附槽偏移 (dx, dy)
func (f *wardrobeFixture) dragTo(t *testing.T, name string, dx, dy int) bool {
	t.Helper()
	id := f.id(t, name)
	w := f.wearable(t, name)
	origin := f.cfg.Layout.ComponentsOrigin

	if !f.ws.BeginDrag(id, 0, 0) {
		t.Fatalf("BeginDrag(%s) rejected", name)
	}
	slot := f.slot(t, name)
	px := origin.X + slot.X + dx + w.ClickInset.Left
	py := origin.Y + slot.Y + dy + w.ClickInset.Top
	if !f.ws.UpdateDrag(px, py) {
		t.Fatalf("UpdateDrag(%d, %d) rejected for %s", px, py, name)
	}
	return f.ws.EndDrag()
}
