// Package dashboard is the interactive terminal front end: a results
// table, the three distribution charts, CSV export and rescanning.
package dashboard

import (
	"context"
	"fmt"
	"os"
	"time"

	"shortscope/internal/models"
	"shortscope/internal/report"
	"shortscope/internal/search"
	"shortscope/internal/storage"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type viewTab int

const (
	tabResults viewTab = iota
	tabCharts
)

type state int

const (
	stateScanning state = iota
	stateReady
)

type progressMsg struct {
	page        int
	accumulated int
}

type scanDoneMsg struct {
	videos []*models.Video
	err    error
}

type exportDoneMsg struct {
	path string
	err  error
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	retriever *search.Retriever
	criteria  search.Criteria
	loc       *time.Location
	seen      *storage.SeenStore // nil disables the NEW marker

	state     state
	activeTab viewTab
	spinner   spinner.Model
	table     table.Model
	videos    []*models.Video
	newIDs    map[string]bool
	warning   string
	status    string
	width     int
	height    int

	progressCh chan progressMsg
}

// NewModel wires a dashboard around a provider. The retriever's
// progress observer feeds the status line through a channel so page
// progress shows while a scan runs.
func NewModel(provider search.Provider, criteria search.Criteria, loc *time.Location, seen *storage.SeenStore) *Model {
	progressCh := make(chan progressMsg, 16)

	retriever := search.New(provider, search.WithProgress(func(page, accumulated int) {
		select {
		case progressCh <- progressMsg{page: page, accumulated: accumulated}:
		default:
		}
	}))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPrimary))

	return &Model{
		retriever:  retriever,
		criteria:   criteria,
		loc:        loc,
		seen:       seen,
		state:      stateScanning,
		spinner:    sp,
		table:      newResultsTable(),
		newIDs:     make(map[string]bool),
		progressCh: progressCh,
	}
}

func newResultsTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "", Width: 3},
		{Title: "Title", Width: 44},
		{Title: "Channel", Width: 20},
		{Title: "Views", Width: 11},
		{Title: "Likes", Width: 9},
		{Title: "Length", Width: 7},
		{Title: "Published", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(lipgloss.Color(colorAccent)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(colorBorder)).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(colorPrimary)).
		Bold(true)
	t.SetStyles(styles)

	return t
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.scan(), m.listenProgress())
}

// scan runs one retrieval asynchronously. A *search.ProviderError
// arrives together with the partial results it left behind.
func (m *Model) scan() tea.Cmd {
	criteria := m.criteria
	return func() tea.Msg {
		videos, err := m.retriever.Retrieve(context.Background(), criteria)
		return scanDoneMsg{videos: videos, err: err}
	}
}

func (m *Model) listenProgress() tea.Cmd {
	return func() tea.Msg {
		return <-m.progressCh
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		height := msg.Height - 8
		if height < 4 {
			height = 4
		}
		m.table.SetHeight(height)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.activeTab == tabResults {
				m.activeTab = tabCharts
			} else {
				m.activeTab = tabResults
			}
		case "r":
			if m.state == stateReady {
				m.state = stateScanning
				m.status = ""
				m.warning = ""
				return m, tea.Batch(m.spinner.Tick, m.scan(), m.listenProgress())
			}
		case "e":
			if m.state == stateReady && len(m.videos) > 0 {
				return m, m.exportCSV()
			}
		default:
			if m.activeTab == tabResults {
				var cmd tea.Cmd
				m.table, cmd = m.table.Update(msg)
				return m, cmd
			}
		}

	case spinner.TickMsg:
		if m.state == stateScanning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progressMsg:
		if m.state == stateScanning {
			m.status = fmt.Sprintf("page %d, %d matches so far", msg.page, msg.accumulated)
			return m, m.listenProgress()
		}

	case scanDoneMsg:
		m.state = stateReady
		m.videos = msg.videos
		m.warning = ""
		if msg.err != nil {
			m.warning = fmt.Sprintf("partial results: %v", msg.err)
		}
		m.refreshNewMarkers()
		m.table.SetRows(m.rows())
		m.table.GotoTop()
		m.status = fmt.Sprintf("%d videos", len(m.videos))

	case exportDoneMsg:
		if msg.err != nil {
			m.warning = fmt.Sprintf("export failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("exported %s", msg.path)
		}
	}

	return m, nil
}

// refreshNewMarkers asks the seen store which results are first-time
// finds, then records the whole set so the next scan compares against
// it.
func (m *Model) refreshNewMarkers() {
	m.newIDs = make(map[string]bool)
	if m.seen == nil {
		return
	}
	ids := make([]string, 0, len(m.videos))
	for _, v := range m.videos {
		if !m.seen.IsSeen(v.ID) {
			m.newIDs[v.ID] = true
		}
		ids = append(ids, v.ID)
	}
	if len(ids) > 0 {
		if err := m.seen.MarkSeen(ids); err != nil {
			m.warning = fmt.Sprintf("failed to persist seen videos: %v", err)
		}
	}
}

func (m *Model) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.videos))
	for i, v := range m.videos {
		marker := ""
		if m.newIDs[v.ID] {
			marker = "★"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			marker,
			v.Title,
			v.ChannelTitle,
			report.FormatCount(v.ViewCount),
			report.FormatCount(v.LikeCount),
			fmt.Sprintf("%.0fs", v.DurationSeconds),
			report.FormatInZone(v.PublishedAt, m.loc),
		})
	}
	return rows
}

func (m *Model) exportCSV() tea.Cmd {
	videos := m.videos
	loc := m.loc
	return func() tea.Msg {
		path := fmt.Sprintf("shorts_%s.csv", time.Now().Format("20060102_150405"))
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()
		if err := report.WriteCSV(f, videos, loc); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}
