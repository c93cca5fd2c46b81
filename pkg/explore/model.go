package explore

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bytesleuth/sleuth/pkg/types"
)

// focusedPane tracks which pane has keyboard focus.
type focusedPane int

const (
	paneFacets focusedPane = iota
	paneDetections
)

const facetPaneWidth = 34

// Model is the root Bubble Tea model for the explore TUI.
type Model struct {
	data   *exploreData
	facets []facet
	rows   []*types.Detection

	facetIdx  int
	rowIdx    int
	rowOffset int

	focus  focusedPane
	width  int
	height int
}

// New creates a new Model by loading data from the given database path.
func New(dbPath string) (Model, error) {
	data, err := loadData(dbPath)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		data:   data,
		facets: buildFacets(data.detections),
		focus:  paneDetections,
	}
	m.applyFilter()

	return m, nil
}

// Close releases the underlying database.
func (m Model) Close() {
	if m.data != nil {
		m.data.Close()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("sleuth explore")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scrollToSelection()
		return m, nil

	case tea.KeyMsg:
		switch {
		case keyMatches(msg, defaultKeys.ForceQuit), keyMatches(msg, defaultKeys.Quit):
			return m, tea.Quit
		case keyMatches(msg, defaultKeys.NextPane):
			if m.focus == paneFacets {
				m.focus = paneDetections
			} else {
				m.focus = paneFacets
			}
			return m, nil
		case keyMatches(msg, defaultKeys.ResetFilter):
			m.facetIdx = 0
			m.applyFilter()
			return m, nil
		}
		return m.updateNavigation(msg), nil
	}

	return m, nil
}

func (m Model) updateNavigation(msg tea.KeyMsg) Model {
	page := m.tableHeight()
	if page < 1 {
		page = 1
	}

	var move func(idx, length int) int
	switch {
	case keyMatches(msg, defaultKeys.Up):
		move = func(idx, _ int) int { return idx - 1 }
	case keyMatches(msg, defaultKeys.Down):
		move = func(idx, _ int) int { return idx + 1 }
	case keyMatches(msg, defaultKeys.PageUp):
		move = func(idx, _ int) int { return idx - page }
	case keyMatches(msg, defaultKeys.PageDown):
		move = func(idx, _ int) int { return idx + page }
	case keyMatches(msg, defaultKeys.Home):
		move = func(_, _ int) int { return 0 }
	case keyMatches(msg, defaultKeys.End):
		move = func(_, length int) int { return length - 1 }
	default:
		return m
	}

	if m.focus == paneFacets {
		m.facetIdx = clamp(move(m.facetIdx, len(m.facets)), len(m.facets))
		m.applyFilter()
	} else {
		m.rowIdx = clamp(move(m.rowIdx, len(m.rows)), len(m.rows))
		m.scrollToSelection()
	}

	return m
}

func clamp(idx, length int) int {
	if length == 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx >= length {
		return length - 1
	}
	return idx
}

// applyFilter recomputes the visible rows from the selected facet.
func (m *Model) applyFilter() {
	selected := facetAll
	if m.facetIdx < len(m.facets) {
		selected = m.facets[m.facetIdx].MIME
	}
	m.rows = filterDetections(m.data.detections, selected)
	m.rowIdx = 0
	m.rowOffset = 0
}

// tableHeight is the number of detection rows that fit on screen.
func (m Model) tableHeight() int {
	// borders, header row, details pane, help bar
	return m.height - 9
}

func (m *Model) scrollToSelection() {
	h := m.tableHeight()
	if h < 1 {
		return
	}
	if m.rowIdx < m.rowOffset {
		m.rowOffset = m.rowIdx
	}
	if m.rowIdx >= m.rowOffset+h {
		m.rowOffset = m.rowIdx - h + 1
	}
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	facetView := m.renderFacets()
	tableView := m.renderTable()

	top := lipgloss.JoinHorizontal(lipgloss.Top, facetView, tableView)
	details := m.renderDetails()
	help := helpBarStyle.Render("j/k move  tab switch pane  r reset filter  q quit")

	return lipgloss.JoinVertical(lipgloss.Left, top, details, help)
}

func (m Model) renderFacets() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Types"))
	b.WriteString("\n")

	h := m.tableHeight() + 1
	for i, f := range m.facets {
		if i >= h {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  ... %d more", len(m.facets)-h)))
			break
		}
		line := fmt.Sprintf("%-24s %5d", truncate(f.MIME, 24), f.Count)
		if i == m.facetIdx {
			line = selectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	border := inactiveBorderStyle
	if m.focus == paneFacets {
		border = activeBorderStyle
	}
	return border.Width(facetPaneWidth).Render(b.String())
}

func (m Model) renderTable() string {
	width := m.width - facetPaneWidth - 4
	if width < 40 {
		width = 40
	}
	pathWidth := width - 40

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Detections (%d)", len(m.rows))))
	b.WriteString("\n")
	b.WriteString(headerRowStyle.Render(fmt.Sprintf("%-*s %-26s %10s", pathWidth, "Path", "Type", "Size")))
	b.WriteString("\n")

	h := m.tableHeight()
	for i := m.rowOffset; i < len(m.rows) && i < m.rowOffset+h; i++ {
		d := m.rows[i]
		mime := matchedStyle.Render(truncate(d.Result.MIME, 26))
		if !d.Result.Matched {
			mime = fallbackStyle.Render(truncate(d.Result.MIME, 26))
		}
		line := fmt.Sprintf("%-*s %-26s %10d", pathWidth, truncate(d.Path, pathWidth), mime, d.Size)
		if i == m.rowIdx {
			line = selectedRowStyle.Render(fmt.Sprintf("%-*s %-26s %10d", pathWidth, truncate(d.Path, pathWidth), truncate(d.Result.MIME, 26), d.Size))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	border := inactiveBorderStyle
	if m.focus == paneDetections {
		border = activeBorderStyle
	}
	return border.Width(width + 2).Render(b.String())
}

func (m Model) renderDetails() string {
	if m.rowIdx >= len(m.rows) {
		return inactiveBorderStyle.Width(m.width - 2).Render(mutedStyle.Render("no detection selected"))
	}

	d := m.rows[m.rowIdx]
	state := matchedStyle.Render("matched " + d.Result.SignatureID)
	if !d.Result.Matched {
		state = fallbackStyle.Render("fallback (no signature matched)")
	}

	line := fmt.Sprintf("%s  %s  id=%s  fallback=%s  ext=%s",
		d.Path, state, d.FileID.Hex(), d.Fallback, strings.Join(d.Result.Extensions, ","))
	return inactiveBorderStyle.Width(m.width - 2).Render(truncate(line, m.width-4))
}

func truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
