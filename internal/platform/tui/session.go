package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-reversi/internal/core"
	"github.com/vovakirdan/tui-reversi/internal/registry"
	"github.com/vovakirdan/tui-reversi/internal/storage"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenResults
	screenGame
)

// SessionModel is one SSH user's program. It switches between the menu, the
// results screen and a game without ending the program; only Quit does.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	screen   sessionScreen
	menu     MenuModel
	results  ResultsModel
	game     GameModel
	quitting bool
}

func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(store, cfg),
	}
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenResults:
		return m.updateResults(msg)
	default:
		return m.updateMenu(msg)
	}
}

// toMenu shows a fresh menu. Ticks still queued by a left game are dropped
// by updateMenu.
func (m SessionModel) toMenu() (SessionModel, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (SessionModel, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// updateMenu forwards to the menu. The menu's own tea.Quit on a choice is
// swallowed and replaced by the next screen.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsResults():
		m.screen = screenResults
		m.results = NewResultsModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.results.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().ModeID)
		if err != nil {
			return m.toMenu()
		}
		m.screen = screenGame
		m.game = NewGameModel(game, m.store, m.config)
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.results.Update(msg)
	m.results = next.(ResultsModel)

	switch {
	case m.results.IsQuitting():
		return m.quit()
	case m.results.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	switch {
	case m.game.BackToMenu():
		return m.toMenu()
	case m.game.IsQuitting():
		return m.quit()
	}
	return m, cmd
}

func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenResults:
		return m.results.View()
	default:
		return m.menu.View()
	}
}

// GameModel wraps Model so that Back returns to the menu instead of being
// passed to the game.
type GameModel struct {
	Model
	backToMenu bool
}

func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	return GameModel{Model: NewModel(game, store, cfg)}
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		if action, _ := m.keyMapper.MapKey(km); action == core.ActionBack {
			m.backToMenu = true
			return m, nil
		}
	}

	next, cmd := m.Model.Update(msg)
	m.Model = next.(Model)
	return m, cmd
}

func (m GameModel) IsQuitting() bool {
	return m.quitting
}

func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
