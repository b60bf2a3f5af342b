package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/svidal/filmoteca/internal/domain"
	"github.com/svidal/filmoteca/internal/service"
)

// viewMode is the current interaction mode of the browse screen
type viewMode int

const (
	modeList viewMode = iota
	modeDetail
	modeSearch // typing a server search query
	modeFilter // typing a local fuzzy filter
)

// movieTitles implements fuzzy.Source over the loaded movies
type movieTitles []domain.Movie

func (m movieTitles) String(i int) string { return m[i].Title }
func (m movieTitles) Len() int            { return len(m) }

// Model is the browse screen: one paginated view of the catalog with
// server search, local fuzzy filtering and favorite toggling.
type Model struct {
	catalog   *service.CatalogService
	favorites *service.FavoriteService
	auth      *service.AuthService

	keys     KeyMap
	spinner  spinner.Model
	input    textinput.Model
	pageSize int

	mode     viewMode
	loading  bool
	page     domain.Page[domain.Movie]
	visible  []domain.Movie // movies after local filtering
	cursor   int
	favIDs   map[int]bool
	searched bool   // showing search results instead of the catalog page
	query    string // last submitted search query

	status      string
	statusError bool

	width  int
	height int
}

// NewModel creates the browse screen model.
func NewModel(catalog *service.CatalogService, favorites *service.FavoriteService, auth *service.AuthService, pageSize int) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	input := textinput.New()
	input.CharLimit = 120

	if pageSize <= 0 {
		pageSize = 20
	}

	return &Model{
		catalog:   catalog,
		favorites: favorites,
		auth:      auth,
		keys:      DefaultKeyMap(),
		spinner:   sp,
		input:     input,
		pageSize:  pageSize,
		favIDs:    make(map[int]bool),
	}
}

func (m *Model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Tick, m.loadPageCmd(1), m.loadFavoritesCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PageLoadedMsg:
		m.loading = false
		m.searched = false
		m.page = msg.Page
		m.visible = msg.Page.Items
		m.clampCursor()
		return m, nil

	case SearchResultsMsg:
		// Drop responses for queries the user has since replaced.
		if msg.Query != m.query {
			return m, nil
		}
		m.loading = false
		m.searched = true
		m.visible = msg.Results
		m.cursor = 0
		return m, nil

	case FavoritesLoadedMsg:
		m.favIDs = make(map[int]bool, len(msg.Movies))
		for _, movie := range msg.Movies {
			m.favIDs[movie.ID] = true
		}
		return m, nil

	case FavoriteToggledMsg:
		m.favIDs[msg.MovieID] = msg.IsFavorite
		if msg.IsFavorite {
			return m.setStatus("Added to favorites", false)
		}
		return m.setStatus("Removed from favorites", false)

	case SignInRequiredMsg:
		return m.setStatus("Sign in to manage favorites (filmoteca login)", true)

	case ErrMsg:
		m.loading = false
		return m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.status = ""
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typing modes route everything except enter/esc to the text input.
	if m.mode == modeSearch || m.mode == modeFilter {
		switch msg.String() {
		case "enter":
			return m.submitInput()
		case "esc":
			m.mode = modeList
			m.input.Blur()
			m.visible = m.page.Items
			m.clampCursor()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			if m.mode == modeFilter {
				m.applyFilter(m.input.Value())
			}
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		if m.mode == modeDetail {
			m.mode = modeList
			return m, nil
		}
		if m.searched {
			// Leave search results, back to the catalog page.
			m.searched = false
			m.query = ""
			m.visible = m.page.Items
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if !m.searched && m.page.HasNext {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadPageCmd(*m.page.NextPage))
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if !m.searched && m.page.HasPrev {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadPageCmd(*m.page.PrevPage))
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if len(m.visible) > 0 {
			m.mode = modeDetail
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.input.Placeholder = "search title..."
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.input.Placeholder = "filter..."
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Favorite):
		if len(m.visible) > 0 {
			movie := m.visible[m.cursor]
			return m, m.toggleFavoriteCmd(movie.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		page := m.page.CurrentPage
		if page < 1 {
			page = 1
		}
		return m, tea.Batch(m.spinner.Tick, m.loadPageCmd(page), m.loadFavoritesCmd())
	}

	return m, nil
}

func (m *Model) submitInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	mode := m.mode
	m.mode = modeList
	m.input.Blur()

	if mode == modeSearch && value != "" {
		m.loading = true
		m.query = value
		return m, tea.Batch(m.spinner.Tick, m.searchCmd(value))
	}
	return m, nil
}

// applyFilter narrows the visible list with fuzzy title matching
func (m *Model) applyFilter(pattern string) {
	source := m.page.Items
	if m.searched {
		source = m.visible
	}
	if strings.TrimSpace(pattern) == "" {
		m.visible = source
		m.clampCursor()
		return
	}

	matches := fuzzy.FindFrom(pattern, movieTitles(source))
	filtered := make([]domain.Movie, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, source[match.Index])
	}
	m.visible = filtered
	m.cursor = 0
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(message string, isError bool) (tea.Model, tea.Cmd) {
	m.status = message
	m.statusError = isError
	return m, clearStatusAfter(4 * time.Second)
}

func (m *Model) View() string {
	if m.mode == modeDetail && len(m.visible) > 0 {
		return m.detailView(m.visible[m.cursor])
	}
	return m.listView()
}

func (m *Model) listView() string {
	var b strings.Builder

	header := titleStyle.Render("Filmoteca")
	if user := m.auth.CurrentUser(); user != nil {
		header += dimStyle.Render("  •  " + user.Name)
	}
	b.WriteString(header + "\n\n")

	if m.mode == modeSearch || m.mode == modeFilter {
		b.WriteString(m.input.View() + "\n\n")
	}

	if m.loading {
		b.WriteString(m.spinner.View() + " loading...\n")
		return b.String()
	}

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("no movies to show") + "\n")
	}

	for i, movie := range m.visible {
		line := fmt.Sprintf("%-40s %s %d  %s", truncate(movie.Title, 40), dimStyle.Render(movie.Director), movie.Year, dimStyle.Render(movie.FormattedDuration()))
		if m.favIDs[movie.ID] {
			line = favoriteDot + " " + line
		} else {
			line = "  " + line
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + m.footer())
	return b.String()
}

func (m *Model) detailView(movie domain.Movie) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(movie.Title) + "\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s  •  %d  •  %s  •  %s", movie.Director, movie.Year, movie.Genre, movie.Classification)) + "\n")
	b.WriteString(dimStyle.Render(movie.FormattedDuration()) + "\n\n")

	if movie.Synopsis != "" {
		b.WriteString(movie.Synopsis + "\n\n")
	}
	if m.favIDs[movie.ID] {
		b.WriteString(favoriteDot + " in your favorites\n\n")
	}
	b.WriteString(dimStyle.Render("esc back  •  m toggle favorite  •  q quit"))

	return panelStyle.Render(b.String())
}

func (m *Model) footer() string {
	var parts []string

	if m.searched {
		parts = append(parts, accentStyle.Render(fmt.Sprintf("search: %q (%d results)", m.query, len(m.visible))))
	} else if m.page.TotalPages > 0 {
		parts = append(parts, fmt.Sprintf("page %d/%d (%d movies)", m.page.CurrentPage, m.page.TotalPages, m.page.TotalRecords))
	}

	if m.status != "" {
		style := successStyle
		if m.statusError {
			style = errorStyle
		}
		parts = append(parts, style.Render(m.status))
	}

	help := dimStyle.Render("j/k move  •  n/p page  •  / search  •  f filter  •  m favorite  •  q quit")
	parts = append(parts, help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
