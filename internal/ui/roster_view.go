package ui

import (
	"context"
	"strings"

	"studentroster/internal/diag"
	"studentroster/internal/roster"
	"studentroster/internal/student"
	"studentroster/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Fetcher lists the roster. *student.Client implements it.
type Fetcher interface {
	List(ctx context.Context) ([]student.Student, error)
}

// RosterLoadedMsg carries the completion of the roster fetch.
type RosterLoadedMsg struct {
	Students []student.Student
	Err      error
}

// Space taken around the list: heading, blank line, help footer, box
// border and padding.
const (
	chromeHeight = 8
	chromeWidth  = 8
)

// RosterView fetches the roster once when mounted and renders one of the
// disconnected, empty or populated views.
type RosterView struct {
	fetcher  Fetcher
	log      diag.Logger
	adminURL string

	// ctx is cancelled on Unmount; completions arriving afterwards are dropped.
	ctx     context.Context
	cancel  context.CancelFunc
	mounted bool

	state    roster.State
	viewport viewport.Model
	keys     KeyMap
	help     help.Model
	width    int
	height   int
}

// Ensure RosterView implements View
var _ View = (*RosterView)(nil)

// NewRosterView creates a roster view. The view's lifetime is bounded by ctx
// and by Unmount, whichever ends first.
func NewRosterView(ctx context.Context, f Fetcher, adminURL string, log diag.Logger) *RosterView {
	if log == nil {
		log = diag.Nop{}
	}
	ctx, cancel := context.WithCancel(ctx)
	h := help.New()
	h.ShortSeparator = " · "
	return &RosterView{
		fetcher:  f,
		log:      log,
		adminURL: adminURL,
		ctx:      ctx,
		cancel:   cancel,
		viewport: viewport.New(80, 0),
		keys:     DefaultKeyMap(),
		help:     h,
	}
}

// Init implements View. The first call schedules the roster fetch; later
// calls are no-ops so a view never fetches twice.
func (v *RosterView) Init() tea.Cmd {
	if v.mounted {
		return nil
	}
	v.mounted = true
	return fetchRosterCmd(v.ctx, v.fetcher)
}

// fetchRosterCmd performs the single GET off the update loop.
func fetchRosterCmd(ctx context.Context, f Fetcher) tea.Cmd {
	return func() tea.Msg {
		students, err := f.List(ctx)
		return RosterLoadedMsg{Students: students, Err: err}
	}
}

// Unmount ends the view's lifetime and cancels an in-flight fetch.
func (v *RosterView) Unmount() {
	v.cancel()
}

// Alive reports whether the view is still mounted.
func (v *RosterView) Alive() bool {
	return v.ctx.Err() == nil
}

// State returns the current roster state.
func (v *RosterView) State() roster.State {
	return v.state
}

// Update implements View
func (v *RosterView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case RosterLoadedMsg:
		if !v.Alive() {
			return v, nil
		}
		if msg.Err != nil {
			v.log.Error("roster fetch failed", msg.Err)
			return v, nil
		}
		if v.state.Set(msg.Students) {
			v.log.Info("roster loaded", "phase", v.state.Phase(), "students", len(msg.Students))
			v.refreshContent()
		}
		return v, nil

	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Down):
			v.viewport.LineDown(1)
		case key.Matches(msg, v.keys.Up):
			v.viewport.LineUp(1)
		case key.Matches(msg, v.keys.PageDown):
			v.viewport.PageDown()
		case key.Matches(msg, v.keys.PageUp):
			v.viewport.PageUp()
		case key.Matches(msg, v.keys.Top):
			v.viewport.GotoTop()
		case key.Matches(msg, v.keys.Bottom):
			v.viewport.GotoBottom()
		}
		return v, nil
	}
	return v, nil
}

// SetSize sets the available terminal area.
func (v *RosterView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.help.Width = width
	v.refreshContent()
}

// refreshContent rebuilds the list viewport from the current state.
func (v *RosterView) refreshContent() {
	content := roster.Render(v.state, v.adminURL)
	if content.Phase != roster.Populated {
		v.viewport.SetContent("")
		v.viewport.Height = 0
		return
	}

	nameWidth := 0
	if v.width > 0 {
		nameWidth = v.width - chromeWidth
	}
	lines := make([]string, len(content.Items))
	for i, it := range content.Items {
		name := it.Name
		if nameWidth > 0 {
			name = textutil.Truncate(name, nameWidth)
		}
		lines[i] = Styles.Bullet.Render("•") + " " + Styles.Normal.Render(name)
	}

	height := len(lines)
	if v.height > 0 && v.height-chromeHeight < height {
		height = max(v.height-chromeHeight, 1)
	}
	if v.width > 0 {
		v.viewport.Width = max(v.width-chromeWidth+2, 1)
	}
	v.viewport.Height = height
	v.viewport.SetContent(strings.Join(lines, "\n"))
}

// View implements View. Rendering is a pure function of the roster state.
func (v *RosterView) View() string {
	content := roster.Render(v.state, v.adminURL)

	var b strings.Builder
	box := Styles.Box
	switch content.Phase {
	case roster.Disconnected:
		box = Styles.BoxDanger
		b.WriteString(Styles.TitleWarning.Render(content.Title))
		b.WriteString("\n\n")
		b.WriteString(Styles.Hint.Render(content.Hint))
	case roster.Empty:
		b.WriteString(Styles.Title.Render(content.Title))
		b.WriteString("\n\n")
		b.WriteString(content.Hint + " " + hyperlink(roster.AdminLinkText, content.AdminURL) + ".")
	case roster.Populated:
		b.WriteString(Styles.Title.Render(content.Title))
		b.WriteString("\n\n")
		b.WriteString(v.viewport.View())
	}

	out := box.Render(b.String())
	if content.Phase == roster.Populated {
		out += "\n" + v.help.View(v.keys)
	} else {
		out += "\n" + v.help.ShortHelpView([]key.Binding{v.keys.Quit})
	}
	return out
}

// hyperlink renders text as an OSC 8 terminal link followed by the URL in
// plain text for terminals without link support.
func hyperlink(text, url string) string {
	link := ansi.SetHyperlink(url) + Styles.Link.Render(text) + ansi.ResetHyperlink()
	return link + " " + Styles.Hint.Render("("+url+")")
}
