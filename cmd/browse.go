package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sells-group/millionaires/internal/dataset"
	"github.com/sells-group/millionaires/internal/debounce"
	"github.com/sells-group/millionaires/internal/model"
	"github.com/sells-group/millionaires/internal/page"
	"github.com/sells-group/millionaires/internal/query"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the directory interactively",
	Long:  "Opens the directory in the terminal. Typing searches names and descriptions, tab cycles states, and ctrl+n/ctrl+p cycle the cities of the chosen state.",
	RunE: func(cmd *cobra.Command, args []string) error {
		link, err := directoryDeepLink(cmd)
		if err != nil {
			return err
		}

		s := &programSender{}
		m := newBrowseModel(cmd.Context(), link, func(ctx context.Context) (*dataset.Index, error) {
			return loadIndex(ctx, cfg, page.DirectorySources...)
		}, s.Send, cfg.Search.Debounce())
		defer m.search.Cancel()

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		s.set(p)
		_, err = p.Run()
		return err
	},
}

// programSender forwards messages to a program started after the model.
type programSender struct {
	mu sync.Mutex
	p  *tea.Program
}

func (s *programSender) set(p *tea.Program) {
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

// Send delivers msg to the program, dropping it before the program starts.
func (s *programSender) Send(msg tea.Msg) {
	s.mu.Lock()
	p := s.p
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// searchMsg carries debounced search text. seq orders searches so a late
// delivery of an older search never overwrites a newer one.
type searchMsg struct {
	seq  uint64
	text string
}

type loadedMsg struct {
	idx *dataset.Index
	err error
}

var (
	browseTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	browseDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	browseError = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type browseModel struct {
	ctx    context.Context
	load   func(context.Context) (*dataset.Index, error)
	page   page.Directory
	input  textinput.Model
	table  table.Model
	search *debounce.Debouncer[searchMsg]
	seq    uint64
	width  int
}

func newBrowseModel(ctx context.Context, link query.DeepLink, load func(context.Context) (*dataset.Index, error), send func(tea.Msg), wait time.Duration) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "Search names and descriptions..."
	ti.CharLimit = 80
	ti.Width = 50
	ti.SetValue(link.Query)
	ti.Focus()

	t := table.New(
		table.WithColumns(browseColumns(100)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return &browseModel{
		ctx:    ctx,
		load:   load,
		page:   page.NewDirectory(link),
		input:  ti,
		table:  t,
		search: debounce.New(wait, func(msg searchMsg) { send(msg) }),
	}
}

func browseColumns(width int) []table.Column {
	if width < 60 {
		width = 60
	}
	name := width / 4
	state := 14
	city := width / 6
	desc := width - name - state - city - 8
	return []table.Column{
		{Title: "Name", Width: name},
		{Title: "State", Width: state},
		{Title: "City", Width: city},
		{Title: "Description", Width: desc},
	}
}

func (m *browseModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg {
		idx, err := m.load(m.ctx)
		return loadedMsg{idx: idx, err: err}
	})
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.page = m.page.Failed(msg.err)
		} else {
			m.page = m.page.Loaded(msg.idx)
		}
		m.refresh()
		return m, nil

	case searchMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.page = m.page.Search(msg.text)
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetColumns(browseColumns(msg.Width))
		m.table.SetHeight(max(msg.Height-9, 5))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.search.Cancel()
			return m, tea.Quit
		case "tab":
			m.cycleState(1)
			return m, nil
		case "shift+tab":
			m.cycleState(-1)
			return m, nil
		case "ctrl+n":
			m.cycleCity(1)
			return m, nil
		case "ctrl+p":
			m.cycleCity(-1)
			return m, nil
		case "enter":
			m.search.Cancel()
			m.seq++
			m.page = m.page.Search(m.input.Value())
			m.refresh()
			return m, nil
		case "up", "down", "pgup", "pgdown", "home", "end":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before {
			m.seq++
			m.search.Trigger(searchMsg{seq: m.seq, text: after})
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// cycleState moves through "all states" followed by each loaded state.
func (m *browseModel) cycleState(step int) {
	v := m.page.View()
	if v.Status != page.StatusReady {
		return
	}
	options := make([]string, 0, len(v.States)+1)
	options = append(options, "")
	for _, s := range v.States {
		options = append(options, s.State)
	}
	m.page = m.page.SelectState(options[cycle(indexOf(options, v.State), step, len(options))])
	m.refresh()
}

// cycleCity moves through "all cities" followed by the state's city options.
func (m *browseModel) cycleCity(step int) {
	v := m.page.View()
	if v.Status != page.StatusReady || !v.CityEnabled {
		return
	}
	options := make([]query.CitySelection, 0, len(v.CityOptions)+1)
	options = append(options, query.AnyCity())
	current := 0
	for i, c := range v.CityOptions {
		sel := query.SelectCity(c.City)
		if sel.Equal(v.City) {
			current = i + 1
		}
		options = append(options, sel)
	}
	m.page = m.page.SelectCity(options[cycle(current, step, len(options))])
	m.refresh()
}

func indexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return 0
}

func cycle(i, step, n int) int {
	return ((i+step)%n + n) % n
}

func (m *browseModel) refresh() {
	v := m.page.View()
	rows := make([]table.Row, 0, len(v.Rows))
	for _, p := range v.Rows {
		rows = append(rows, table.Row{p.Name, p.State, p.CityLabel(), p.Desc})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *browseModel) View() string {
	v := m.page.View()
	var b strings.Builder

	b.WriteString(browseTitle.Render("1892 Millionaires Directory"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	state := "All states"
	if v.State != "" {
		state = v.State
	}
	city := "All cities"
	if !v.City.IsAny() {
		city = model.DisplayCity(v.City.City())
	}
	b.WriteString(browseDim.Render(fmt.Sprintf("State: %s   City: %s", state, city)))
	b.WriteString("\n")

	switch v.Status {
	case page.StatusUnavailable:
		b.WriteString(browseError.Render(v.CountLabel()))
		b.WriteString("\n")
	default:
		b.WriteString(v.CountLabel())
		b.WriteString("\n\n")
		if v.Empty {
			b.WriteString(browseDim.Render(v.Message))
			b.WriteString("\n")
		} else if v.Status == page.StatusReady {
			b.WriteString(m.table.View())
			b.WriteString("\n")
		}
	}

	b.WriteString(browseDim.Render("tab/shift+tab state • ctrl+n/ctrl+p city • enter search now • esc quit"))
	return b.String()
}

func init() {
	browseCmd.Flags().StringVar(&directoryState, "state", "", "initial state filter")
	browseCmd.Flags().StringVar(&directoryCity, "city", "", "initial city filter")
	browseCmd.Flags().StringVar(&directoryQuery, "q", "", "initial search text")
	browseCmd.Flags().StringVar(&directoryLink, "link", "", "directory page URL to take filters from")
	rootCmd.AddCommand(browseCmd)
}
