package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/match"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func send(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func TestModelPlaysAndRecordsRound(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	game, err := registry.Create("tetris")
	if err != nil {
		t.Fatalf("registry.Create() error = %v", err)
	}

	var m tea.Model = NewModel(game, store, testConfig())
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	for i := 0; i < 5000 && !game.State().GameOver; i++ {
		m = send(t, m, space)
		m = send(t, m, TickMsg(time.Now()))
	}
	if !game.State().GameOver {
		t.Fatal("round never ended")
	}

	rounds, err := store.RecentRounds("tetris", 10)
	if err != nil {
		t.Fatalf("RecentRounds() error = %v", err)
	}
	if len(rounds) != 1 {
		t.Errorf("stored %d rounds, want 1", len(rounds))
	}

	if view := m.View(); view == "" {
		t.Error("View() should render the finished round")
	}
}

func TestModelRecordsInfiniteRoundOnLeave(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"back", tea.KeyMsg{Type: tea.KeyEsc}},
		{"quit", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
			if err != nil {
				t.Fatalf("storage.Open() error = %v", err)
			}
			t.Cleanup(func() { store.Close() })

			game, _ := registry.Create("tetris_infinite_vs")
			var m tea.Model = NewModel(game, store, testConfig())
			space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
			for i := 0; i < 500; i++ {
				m = send(t, m, space)
				m = send(t, m, TickMsg(time.Now()))
			}
			if game.State().GameOver {
				t.Fatal("infinite round ended on its own")
			}

			send(t, m, tt.key)

			rounds, err := store.RecentRounds("tetris_infinite_vs", 10)
			if err != nil {
				t.Fatalf("RecentRounds() error = %v", err)
			}
			if len(rounds) != 1 {
				t.Errorf("stored %d rounds, want 1", len(rounds))
			}
		})
	}
}

func TestModelBackAndQuit(t *testing.T) {
	game, _ := registry.Create("tetris")
	m := send(t, NewModel(game, nil, testConfig()), tea.KeyMsg{Type: tea.KeyEsc}).(Model)
	if !m.IsGoingBack() || m.View() != "" {
		t.Error("esc should leave the game for the menu")
	}

	game, _ = registry.Create("tetris")
	next, cmd := NewModel(game, nil, testConfig()).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(Model).quitting || cmd == nil {
		t.Error("ctrl+c should quit")
	}
}

func TestModelResizeKeepsRound(t *testing.T) {
	game, _ := registry.Create("tetris")
	var m tea.Model = NewModel(game, nil, testConfig())
	for i := 0; i < 3; i++ {
		m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		m = send(t, m, TickMsg(time.Now()))
	}
	before := game.(*tetris.Game).Orchestrator()

	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if game.(*tetris.Game).Orchestrator() != before {
		t.Error("resizing must not restart the round")
	}
	if m.(Model).screen.Width() != 120 {
		t.Errorf("screen width = %d, want 120", m.(Model).screen.Width())
	}
}

func TestSessionFlow(t *testing.T) {
	var m tea.Model = NewSessionModel(nil, testConfig(), "alice")
	down := tea.KeyMsg{Type: tea.KeyDown}
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	// Solo variant goes straight to the game, esc returns to the menu.
	m = send(t, m, enter)
	if s := m.(SessionModel); s.screen != screenGame || s.game.game.ID() != "tetris" {
		t.Fatalf("screen = %d, want game", s.screen)
	}
	m = send(t, m, esc)
	if m.(SessionModel).screen != screenMenu {
		t.Fatal("esc in game should return to the menu")
	}

	// Vs variant asks for a difficulty first.
	m = send(t, m, down)
	m = send(t, m, down)
	m = send(t, m, enter)
	if m.(SessionModel).screen != screenDifficulty {
		t.Fatal("vs variant should open the difficulty picker")
	}
	if !strings.Contains(m.View(), "Medium") {
		t.Errorf("picker should list tiers:\n%s", m.View())
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = send(t, m, enter)

	s := m.(SessionModel)
	if s.screen != screenGame || s.game.game.ID() != "tetris_vs" {
		t.Fatalf("screen = %d, game = %s", s.screen, s.game.game.ID())
	}
	if got := s.game.game.(*tetris.Game).Orchestrator().Difficulty(); got != match.DifficultyEasy {
		t.Errorf("difficulty = %s, want easy", got)
	}

	// Scoreboard round trip, then quit.
	m = send(t, m, esc)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).screen != screenScoreboard {
		t.Fatal("tab should open the scoreboard")
	}
	m = send(t, m, esc)
	if m.(SessionModel).screen != screenMenu {
		t.Fatal("esc should leave the scoreboard")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q should end the session")
	}
}

func TestDifficultyPickerBack(t *testing.T) {
	var m tea.Model = NewDifficultyModel("Tetris vs CPU", match.DifficultyVeryHard, 80, 24)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if d, _ := m.(DifficultyModel).Selected(); d != match.DifficultyVeryHard {
		t.Errorf("cursor moved past the last tier: %s", d)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	dm := m.(DifficultyModel)
	if _, ok := dm.Selected(); ok || !dm.WantsBack() {
		t.Error("esc should back out without choosing")
	}
}
