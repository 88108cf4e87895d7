package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-reversi/internal/core"
	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/registry"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

// MenuItem is one mode in the picker.
type MenuItem struct {
	ModeID  string
	Title   string
	Players string // e.g. "manual vs computer"; empty for non-Reversi modes
}

type menuChoice int

const (
	menuChoiceNone menuChoice = iota
	menuChoicePlay
	menuChoiceResults
	menuChoiceQuit
)

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("22")).
			Padding(0, 2)
	menuItemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel picks a mode. It quits its program once a choice is made.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    menuChoice
}

// NewMenuModel lists every registered mode. The store is unused by the menu
// itself and kept for symmetry with the other screens.
func NewMenuModel(_ *storage.Store, cfg core.RuntimeConfig) MenuModel {
	modes := registry.List()
	items := make([]MenuItem, 0, len(modes))
	for _, mode := range modes {
		items = append(items, MenuItem{
			ModeID:  mode.ID,
			Title:   mode.Title,
			Players: modePlayers(mode.ID),
		})
	}

	return MenuModel{
		items:     items,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// modePlayers describes who plays each side when the mode starts.
func modePlayers(id string) string {
	game, err := registry.Create(id)
	if err != nil {
		return ""
	}
	s, ok := game.(*reversi.Session)
	if !ok {
		return ""
	}
	g := s.Game()
	return fmt.Sprintf("%s vs %s", g.Player(reversi.Dark), g.Player(reversi.Light))
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, len(m.items)-1)
		case MenuActionSelect:
			if len(m.items) > 0 {
				m.choice = menuChoicePlay
				return m, tea.Quit
			}
		case MenuActionResults:
			m.choice = menuChoiceResults
			return m, tea.Quit
		case MenuActionQuit:
			m.choice = menuChoiceQuit
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.choice == menuChoiceQuit {
		return ""
	}

	lines := []string{menuTitleStyle.Render("R E V E R S I"), "", menuHintStyle.Render("Choose a mode"), ""}
	for i, item := range m.items {
		label := "  " + item.Title
		style := menuItemStyle
		if i == m.cursor {
			label = "> " + item.Title
			style = menuSelectedStyle
		}
		if item.Players != "" {
			label += menuHintStyle.Render("  (" + item.Players + ")")
		}
		lines = append(lines, style.Render(label))
	}
	lines = append(lines, "", menuHintStyle.Render("up/down move  enter play  tab results  q quit"))

	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return "\n" + lipgloss.PlaceHorizontal(m.config.ScreenW, lipgloss.Center, block) + "\n"
}

// Selected returns the chosen mode, or nil.
func (m MenuModel) Selected() *MenuItem {
	if m.choice != menuChoicePlay {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

func (m MenuModel) IsQuitting() bool {
	return m.choice == menuChoiceQuit
}

// WantsResults reports whether Tab was pressed.
func (m MenuModel) WantsResults() bool {
	return m.choice == menuChoiceResults
}

// Config returns the runtime config, resized to the last window size.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text on the left to center it in width columns.
func centerText(text string, width int) string {
	if pad := (width - lipgloss.Width(text)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + text
	}
	return text
}

// MenuResult is what RunMenu hands back to the caller's loop.
type MenuResult struct {
	ModeID       string
	Config       core.RuntimeConfig
	WantsResults bool
	Quit         bool
}

// RunMenu shows the menu in its own program until a choice is made.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsResults():
		res.WantsResults = true
	case m.Selected() != nil:
		res.ModeID = m.Selected().ModeID
	default:
		res.Quit = true
	}
	return res, nil
}
