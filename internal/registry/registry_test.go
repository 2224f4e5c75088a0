package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type stubGame struct{ id, title string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return g.title }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

func resetRegistry(t *testing.T) {
	t.Helper()
	mu.Lock()
	savedF, savedO := factories, order
	factories, order = make(map[string]Factory), nil
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		factories, order = savedF, savedO
		mu.Unlock()
	})
}

func TestRegisterKeepsOrder(t *testing.T) {
	resetRegistry(t)

	for _, id := range []string{"zeta", "alpha", "mid"} {
		id := id
		Register(id, func() Game { return stubGame{id: id, title: "T-" + id} })
	}

	got := List()
	want := []string{"zeta", "alpha", "mid"}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d games, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id || got[i].Title != "T-"+id {
			t.Errorf("List()[%d] = %+v, want %s", i, got[i], id)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	resetRegistry(t)
	Register("one", func() Game { return stubGame{id: "one"} })

	defer func() {
		if recover() == nil {
			t.Error("expected a panic on duplicate registration")
		}
	}()
	Register("one", func() Game { return stubGame{id: "one"} })
}

func TestCreate(t *testing.T) {
	resetRegistry(t)
	Register("one", func() Game { return stubGame{id: "one", title: "One"} })

	g, err := Create("one")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "one" {
		t.Errorf("Create() ID = %q", g.ID())
	}
	if !Exists("one") || Exists("two") {
		t.Error("Exists() disagrees with registrations")
	}

	if _, err := Create("two"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create(unknown) error = %v, want ErrUnknownGame", err)
	}
}
