package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/unifind/internal/apperr"
	"github.com/jeanpaul/unifind/internal/favorites"
	"github.com/jeanpaul/unifind/internal/model"
	"github.com/jeanpaul/unifind/internal/search"
)

type screen int

const (
	screenSearch screen = iota
	screenFavorites
)

type focus int

const (
	focusCountry focus = iota
	focusName
	focusResults
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeError
)

// notice is the transient message shown under the active screen.
type notice struct {
	kind  noticeKind
	title string
	text  string
}

func errorNotice(err error) *notice {
	title, text := apperr.Notice(err)
	return &notice{kind: noticeError, title: title, text: text}
}

// headerH covers the title bar, two inputs and the status line.
const headerH = 10

type Model struct {
	width, height int
	screen        screen
	focus         focus

	country textinput.Model
	name    textinput.Model
	results list.Model
	favs    list.Model
	detail  viewport.Model
	spinner spinner.Model

	searching   bool
	searched    bool
	adding      bool
	loading     bool
	removing    bool
	showDetail  bool
	favsEmpty   bool
	lastResults []model.University
	notice      *notice

	searcher  Searcher
	favorites FavoritesService
	ctx       context.Context
	cancel    context.CancelFunc
	renderer  *glamour.TermRenderer
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 40
	ti.Prompt = ""
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(MidGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(White)
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func NewModel(s Searcher, f FavoritesService) Model {
	country := newInput("Country name (e.g. Brazil)")
	country.Focus()
	name := newInput("University name (e.g. Paulista)")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		screen:    screenSearch,
		focus:     focusCountry,
		favsEmpty: true,
		country:   country,
		name:      name,
		results:   newList("Results"),
		favs:      newList("Favorites"),
		detail:    viewport.New(60, 12),
		spinner:   sp,
		searcher:  s,
		favorites: f,
		ctx:       ctx,
		cancel:    cancel,
		renderer:  newRenderer(60),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancel()
			return m, tea.Quit
		}
		if m.screen == screenFavorites {
			return m.updateFavorites(msg)
		}
		return m.updateSearch(msg)

	case searchDoneMsg:
		m.searching = false
		m.searched = true
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
			m.lastResults = nil
		} else {
			m.lastResults = msg.results
		}
		m.results.SetItems(universityItems(m.lastResults))
		m.results.ResetSelected()
		if len(m.lastResults) > 0 {
			m.setFocus(focusResults)
		}
		return m, nil

	case favoriteAddedMsg:
		m.adding = false
		switch {
		case msg.err != nil:
			m.notice = errorNotice(msg.err)
			return m, nil
		case msg.outcome == favorites.Added:
			m.notice = &notice{kind: noticeSuccess, title: "Favorited!",
				text: fmt.Sprintf("%q added to favorites.", msg.fav.Name)}
		case msg.outcome == favorites.AlreadyExists:
			m.notice = &notice{kind: noticeInfo, title: "Already Saved",
				text: fmt.Sprintf("%q is already in your favorites.", msg.fav.Name)}
		}
		cmd := m.openFavorites()
		return m, cmd

	case favoritesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
		}
		m.setFavorites(msg.favs)
		return m, nil

	case favoriteRemovedMsg:
		m.removing = false
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
			return m, nil
		}
		if msg.outcome == favorites.Removed {
			m.notice = &notice{kind: noticeSuccess, title: "Removed",
				text: fmt.Sprintf("%q was removed from favorites.", msg.fav.Name)}
		}
		m.loading = true
		return m, loadFavoritesCmd(m.ctx, m.favorites)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.forward(msg)
}

func (m Model) busy() bool {
	return m.searching || m.adding || m.loading || m.removing
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showDetail {
		switch msg.String() {
		case "esc", "i", "q":
			m.showDetail = false
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+f":
		m.notice = nil
		cmd := m.openFavorites()
		return m, cmd
	case "esc":
		m.cancel()
		return m, tea.Quit
	case "tab":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil
	case "enter":
		if m.focus == focusResults {
			return m.favoriteSelected()
		}
		return m.submitSearch()
	}

	if m.focus == focusResults {
		if msg.String() == "i" {
			if it, ok := m.results.SelectedItem().(universityItem); ok {
				m.detail.SetContent(renderDetail(m.renderer, it.u))
				m.detail.GotoTop()
				m.showDetail = true
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focus == focusCountry {
		m.country, cmd = m.country.Update(msg)
	} else {
		m.name, cmd = m.name.Update(msg)
	}
	return m, cmd
}

func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	if m.searching {
		return m, nil
	}
	country, name := m.country.Value(), m.name.Value()
	if err := search.CheckCriteria(country, name); err != nil {
		m.notice = errorNotice(err)
		return m, nil
	}

	m.notice = nil
	m.searching = true
	m.searched = false
	m.lastResults = nil
	m.results.SetItems(nil)
	return m, tea.Batch(m.spinner.Tick, searchCmd(m.ctx, m.searcher, country, name))
}

func (m Model) favoriteSelected() (tea.Model, tea.Cmd) {
	if m.adding {
		return m, nil
	}
	it, ok := m.results.SelectedItem().(universityItem)
	if !ok {
		return m, nil
	}
	fav, err := model.NewFavorite(it.u)
	if err != nil {
		m.notice = errorNotice(err)
		return m, nil
	}
	m.notice = nil
	m.adding = true
	return m, tea.Batch(m.spinner.Tick, addFavoriteCmd(m.ctx, m.favorites, fav))
}

func (m Model) updateFavorites(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.screen = screenSearch
		m.notice = nil
		return m, nil
	case "enter", "d":
		if m.removing || m.loading {
			return m, nil
		}
		it, ok := m.favs.SelectedItem().(favoriteItem)
		if !ok {
			return m, nil
		}
		m.notice = nil
		m.removing = true
		return m, tea.Batch(m.spinner.Tick, removeFavoriteCmd(m.ctx, m.favorites, it.f))
	}
	var cmd tea.Cmd
	m.favs, cmd = m.favs.Update(msg)
	return m, cmd
}

// openFavorites switches screens and reloads the list from storage.
func (m *Model) openFavorites() tea.Cmd {
	m.screen = screenFavorites
	m.showDetail = false
	m.loading = true
	return tea.Batch(m.spinner.Tick, loadFavoritesCmd(m.ctx, m.favorites))
}

func (m *Model) setFavorites(favs []model.Favorite) {
	m.favsEmpty = len(favs) == 0
	m.favs.SetItems(favoriteItems(favs))
	if idx := m.favs.Index(); idx >= len(favs) && len(favs) > 0 {
		m.favs.Select(len(favs) - 1)
	}
}

func (m *Model) cycleFocus(step int) {
	n := 2
	if len(m.lastResults) > 0 {
		n = 3
	}
	m.setFocus(focus((int(m.focus) + step + n) % n))
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.country.Blur()
	m.name.Blur()
	switch f {
	case focusCountry:
		m.country.Focus()
	case focusName:
		m.name.Focus()
	}
}

// forward passes unhandled messages to the focused widget.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.screen == screenFavorites:
		m.favs, cmd = m.favs.Update(msg)
	case m.focus == focusCountry:
		m.country, cmd = m.country.Update(msg)
	case m.focus == focusName:
		m.name, cmd = m.name.Update(msg)
	default:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	h := m.height - headerH
	if h < 4 {
		h = 4
	}
	m.results.SetSize(w, h)
	m.favs.SetSize(w, m.height-6)
	m.detail.Width = w - 4
	m.detail.Height = h - 2
	m.country.Width = w - 16
	m.name.Width = w - 16
	m.renderer = newRenderer(w - 6)
}

func (m Model) View() string {
	var body string
	if m.screen == screenFavorites {
		body = m.favoritesView()
	} else {
		body = m.searchView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.noticeView(), m.helpView())
}

func (m Model) searchView() string {
	title := TitleStyle.Render("University Search")

	inputRow := func(label string, ti textinput.Model, active bool) string {
		style := InputBoxStyle
		if active {
			style = InputActiveStyle
		}
		return lipgloss.JoinHorizontal(lipgloss.Center,
			InputLabelStyle.Render(label),
			style.Render(ti.View()),
		)
	}

	parts := []string{
		title,
		inputRow("Country", m.country, m.focus == focusCountry),
		inputRow("Name", m.name, m.focus == focusName),
	}

	switch {
	case m.searching:
		parts = append(parts, m.spinner.View()+" "+StatusStyle.Render("Searching universities..."))
	case !m.searched:
		parts = append(parts, StatusStyle.Render("Enter a country and/or university name to search."))
	case len(m.lastResults) == 0:
		parts = append(parts, StatusStyle.Render("No universities found for the given criteria."))
	case m.showDetail:
		parts = append(parts, DetailBoxStyle.Render(m.detail.View()))
	default:
		parts = append(parts, m.results.View())
	}
	if m.adding {
		parts = append(parts, m.spinner.View()+" "+StatusStyle.Render("Saving favorite..."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) favoritesView() string {
	parts := []string{TitleStyle.Render("Favorite Universities")}
	switch {
	case m.loading && m.favsEmpty:
		parts = append(parts, m.spinner.View()+" "+StatusStyle.Render("Loading favorites..."))
	case m.favsEmpty:
		parts = append(parts, StatusStyle.Render("No favorite universities yet."))
	default:
		parts = append(parts, m.favs.View(), StatusStyle.Render("Press enter on an item to remove it."))
	}
	if m.removing {
		parts = append(parts, m.spinner.View()+" "+StatusStyle.Render("Removing..."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) noticeView() string {
	if m.notice == nil {
		return ""
	}
	switch m.notice.kind {
	case noticeError:
		return ErrorTitleStyle.Render(m.notice.title+": ") + ErrorStyle.Render(m.notice.text)
	case noticeSuccess:
		return SuccessStyle.Render(m.notice.title+" ") + m.notice.text
	default:
		return StatusStyle.Render(m.notice.title+": ") + m.notice.text
	}
}

func (m Model) helpView() string {
	var keys []string
	switch {
	case m.screen == screenFavorites:
		keys = []string{"↑/↓: select", "enter/d: remove", "esc/b: back", "ctrl+c: quit"}
	case m.showDetail:
		keys = []string{"↑/↓: scroll", "esc/i: close"}
	case m.focus == focusResults:
		keys = []string{"enter: favorite", "i: details", "tab: inputs", "ctrl+f: favorites", "esc: quit"}
	default:
		keys = []string{"enter: search", "tab: next field", "ctrl+f: favorites", "esc: quit"}
	}
	return HelpStyle.Render(strings.Join(keys, "  •  "))
}

// Run starts the interactive program and blocks until it exits.
func Run(s Searcher, f FavoritesService) error {
	p := tea.NewProgram(NewModel(s, f), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
