package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel is the root model. It owns the roster view's lifetime: quitting
// unmounts the view before the program exits.
type AppModel struct {
	Roster *RosterView
	Keys   KeyMap
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model around a roster view.
func NewAppModel(roster *RosterView) *AppModel {
	return &AppModel{
		Roster: roster,
		Keys:   DefaultKeyMap(),
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Roster.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, a.Keys.Quit) {
		a.Roster.Unmount()
		return a, tea.Quit
	}
	v, cmd := a.Roster.Update(msg)
	if r, ok := v.(*RosterView); ok {
		a.Roster = r
	}
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	return a.Roster.View()
}

// Run mounts the app in a full-screen program and blocks until the user
// quits or ctx is cancelled. The roster view is unmounted on return.
func Run(ctx context.Context, m *AppModel, opts ...tea.ProgramOption) error {
	defer m.Roster.Unmount()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m.AsTeaModel(), opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
