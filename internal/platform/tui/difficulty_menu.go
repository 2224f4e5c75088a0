package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/match"
)

// DifficultyModel lets the player pick the CPU tier before a vs round.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	chosen    bool
	back      bool
	quitting  bool
}

// NewDifficultyModel starts with the cursor on current.
func NewDifficultyModel(title string, current match.Difficulty, width, height int) DifficultyModel {
	cursor := int(current)
	if !current.Valid() {
		cursor = int(match.DifficultyMedium)
	}
	return DifficultyModel{
		title:     title,
		cursor:    cursor,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp, MenuActionLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown, MenuActionRight:
		if m.cursor < config.DifficultyCount-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.chosen = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the tier list with each tier's CPU drop interval.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose CPU difficulty:", m.width))
	b.WriteString("\n\n")

	for i, preset := range config.Difficulties() {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		delay, _ := match.Difficulty(i).DropDelay(nil)
		line := fmt.Sprintf("%s%-10s %4dms", cursor, preset.Title(), delay.Milliseconds())
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Selected returns the chosen tier and whether one was chosen.
func (m DifficultyModel) Selected() (match.Difficulty, bool) {
	return match.Difficulty(m.cursor), m.chosen
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector asks for a CPU tier. ok is false when the player
// backed out or quit.
func RunDifficultySelector(title string, current match.Difficulty, width, height int) (d match.Difficulty, ok bool, err error) {
	p := tea.NewProgram(
		NewDifficultyModel(title, current, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return current, false, err
	}
	m, isModel := finalModel.(DifficultyModel)
	if !isModel {
		return current, false, nil
	}
	d, ok = m.Selected()
	return d, ok, nil
}
