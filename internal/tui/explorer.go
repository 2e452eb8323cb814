// Package tui is a terminal explorer over a mounted map view: states are
// listed with their live fill, and the keyboard drives hover and selection.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/intelligrit/salesmap/internal/choropleth"
	"github.com/intelligrit/salesmap/internal/model"
	"github.com/intelligrit/salesmap/internal/selection"
	"github.com/intelligrit/salesmap/internal/store"
	"github.com/intelligrit/salesmap/internal/tooltip"
	"github.com/intelligrit/salesmap/internal/view"
)

// Model is the bubbletea model of the explorer.
type Model struct {
	view   *view.View
	store  *store.Store
	states []model.State
	cursor int
	offset int

	width  int
	height int
	status string
}

// Styles
var (
	borderCol = lipgloss.Color("#243141")
	accentFg  = lipgloss.Color("#3b82f6")
	dimFg     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(dimFg)
	cursorStyle = lipgloss.NewStyle().Bold(true)
)

// New builds an explorer over v. states is the list to browse; st, when set,
// backs the refresh key.
func New(v *view.View, states []model.State, st *store.Store) Model {
	sorted := append([]model.State(nil), states...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	m := Model{view: v, store: st, states: sorted, status: "↑/↓ hover · enter select · m mode · c clear · d dark · r refresh · q quit"}
	if len(sorted) > 0 {
		v.Dispatch(selection.Enter{State: sorted[0]})
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Cursor returns the state under the cursor.
func (m Model) Cursor() model.State {
	if len(m.states) == 0 {
		return ""
	}
	return m.states[m.cursor]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampOffset()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.view.Unmount()
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter", " ":
			if s := m.Cursor(); s != "" {
				m.view.Dispatch(selection.Click{State: s})
			}
		case "m":
			mode := selection.ModeState
			if m.view.State().Mode == selection.ModeState {
				mode = selection.ModeRegion
			}
			m.view.Dispatch(selection.SetMode{Mode: mode})
		case "c":
			m.view.Dispatch(selection.ClearSelection{})
		case "d":
			m.view.SetDark(!m.view.Dark())
		case "r":
			if m.store != nil {
				snap := m.store.Refresh()
				m.view.SetDataset(snap.Dataset)
				m.status = fmt.Sprintf("refreshed with seed %d", snap.Seed)
			}
		}
	}
	return m, nil
}

func (m *Model) move(delta int) {
	if len(m.states) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.states)) % len(m.states)
	m.view.Dispatch(selection.Enter{State: m.states[m.cursor]})
	m.clampOffset()
}

func (m *Model) listHeight() int {
	if m.height <= 6 {
		return len(m.states)
	}
	return m.height - 6
}

func (m *Model) clampOffset() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

func (m Model) View() string {
	var list strings.Builder
	end := min(len(m.states), m.offset+m.listHeight())
	for i := m.offset; i < end; i++ {
		s := m.states[i]
		f := m.view.Fill(s)
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(f.Color)).Render("  ")
		line := fmt.Sprintf("%s %-12s %s", swatch, s, marker(f.Highlight))
		if i == m.cursor {
			line = cursorStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		list.WriteString(line + "\n")
	}

	left := boxStyle.Render(titleStyle.Render("States") + "\n" + strings.TrimRight(list.String(), "\n"))
	right := boxStyle.Render(m.detail())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return body + "\n" + dimStyle.Render(m.status) + "\n"
}

func (m Model) detail() string {
	st := m.view.State()
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Mode: %s", st.Mode)) + "\n")
	if info, ok := m.view.Tooltip(); ok {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(info.Headline(st.Mode)) + "\n")
		b.WriteString(dimStyle.Render(info.Subline(st.Mode)) + "\n")
		if info.HasSales() {
			b.WriteString(info.SalesLine() + "\n")
			b.WriteString(info.ChangeLine() + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Selected region: %s\n", orNone(string(st.SelectedRegion))))
	b.WriteString(fmt.Sprintf("Selected state:  %s\n", orNone(string(st.SelectedState))))

	b.WriteString("\n" + titleStyle.Render(tooltip.LegendTitle) + "\n")
	for _, e := range tooltip.Legend(m.view.Dark()) {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(e.Color)).Render("  ") + " " + e.Label + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func marker(h choropleth.Highlight) string {
	switch h {
	case choropleth.HighlightSelectedState:
		return "●"
	case choropleth.HighlightSelectedRegion:
		return "◆"
	case choropleth.HighlightHoveredRegion:
		return "·"
	}
	return ""
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
