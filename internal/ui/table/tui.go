package table

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ledgerline/mfin/internal/datatable"
	"github.com/ledgerline/mfin/internal/pagination"
	"github.com/ledgerline/mfin/internal/ui/styles"
)

// ═══════════════════════════════════════════════════════════════════════════
// Constants
// ═══════════════════════════════════════════════════════════════════════════

const (
	maxColWidth = 28
	minColWidth = 3
	colGap      = 2
)

// Table mode
type tableMode int

const (
	tableModeNormal tableMode = iota
	tableModeSearch
)

// Exit mode: what to print after quitting the TUI
type exitMode int

const (
	exitNormal exitMode = iota
	exitJSON
	exitRaw
	exitPlain
	exitCSV
)

// ═══════════════════════════════════════════════════════════════════════════
// Model
// ═══════════════════════════════════════════════════════════════════════════

type tableModel struct {
	table     *datatable.Table
	load      Loader
	ctx       context.Context
	exportDir string
	startPage int
	now       func() time.Time
	copy      func(string) error

	cursor    int // selected row within the current page
	colCursor int // selected column
	scrollX   int // horizontal scroll offset in cells
	width     int
	height    int
	ready     bool

	mode        tableMode
	searchInput textinput.Model
	spinner     spinner.Model
	loadErr     error
	exitMode    exitMode

	// Status message (flash notification, e.g. after export)
	statusMsg   string
	statusUntil time.Time
}

// ═══════════════════════════════════════════════════════════════════════════
// Key Bindings
// ═══════════════════════════════════════════════════════════════════════════

type tableKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	FirstPage   key.Binding
	LastPage    key.Binding
	BiggerPage  key.Binding
	SmallerPage key.Binding
	Sort        key.Binding
	Select      key.Binding
	Search      key.Binding
	Filter      key.Binding
	Add         key.Binding
	Export      key.Binding
	Quit        key.Binding
	YankCell    key.Binding
	YankRow     key.Binding
	ExportJSON  key.Binding
	ExportRaw   key.Binding
	ExportPlain key.Binding
	ExportCSV   key.Binding
}

var tableKeys = tableKeyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev column")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next column")),
	NextPage:    key.NewBinding(key.WithKeys("pgdown", "n", "ctrl+d"), key.WithHelp("n", "next page")),
	PrevPage:    key.NewBinding(key.WithKeys("pgup", "p", "ctrl+u"), key.WithHelp("p", "prev page")),
	FirstPage:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first page")),
	LastPage:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last page")),
	BiggerPage:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more rows")),
	SmallerPage: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer rows")),
	Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open row")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	YankCell:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy cell")),
	YankRow:     key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "copy row")),
	ExportJSON:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "print as JSON")),
	ExportRaw:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "print raw")),
	ExportPlain: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "print table")),
	ExportCSV:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "print csv")),
}

// ═══════════════════════════════════════════════════════════════════════════
// Entry Point
// ═══════════════════════════════════════════════════════════════════════════

func newTableModel(ctx context.Context, t *datatable.Table, opts DisplayOptions) tableModel {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = 100
	ti.Width = 30
	ti.SetValue(t.State().Search)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	startPage := opts.Page
	if opts.Load != nil {
		t.SetLoading(true)
	} else if startPage > 1 {
		t.GoToPage(startPage)
		startPage = 0
	}

	return tableModel{
		table:       t,
		load:        opts.Load,
		ctx:         ctx,
		exportDir:   exportDir,
		startPage:   startPage,
		now:         time.Now,
		copy:        clipboard.WriteAll,
		mode:        tableModeNormal,
		searchInput: ti,
		spinner:     sp,
		exitMode:    exitNormal,
	}
}

// RunTableTUI launches the interactive table viewer. It blocks until the
// user quits. If the user requests a print (J/R/P/C), the current table is
// printed to stdout after the TUI exits.
func RunTableTUI(ctx context.Context, t *datatable.Table, opts DisplayOptions) error {
	m := newTableModel(ctx, t, opts)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(tableModel)
	if !ok {
		return nil
	}
	if fm.loadErr != nil {
		return fm.loadErr
	}

	out := DisplayOptions{Out: os.Stdout}
	switch fm.exitMode {
	case exitJSON:
		out.JSON = true
	case exitRaw:
		out.Raw = true
	case exitCSV:
		out.CSV = true
	case exitPlain:
	default:
		return nil
	}
	return PrintTable(t, out)
}

// ═══════════════════════════════════════════════════════════════════════════
// Bubble Tea Interface
// ═══════════════════════════════════════════════════════════════════════════

type recordsLoadedMsg struct {
	records []datatable.Record
	err     error
}

func (m tableModel) loadCmd() tea.Cmd {
	load, ctx := m.load, m.ctx
	return func() tea.Msg {
		records, err := load(ctx)
		return recordsLoadedMsg{records: records, err: err}
	}
}

func (m tableModel) Init() tea.Cmd {
	if m.load == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m tableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case spinner.TickMsg:
		if !m.table.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case recordsLoadedMsg:
		m.table.SetLoading(false)
		if msg.err != nil {
			m.loadErr = msg.err
			return m, tea.Quit
		}
		m.table.SetData(msg.records)
		if m.startPage > 1 {
			m.table.GoToPage(m.startPage)
		}
		m.cursor = 0

	case statusClearMsg:
		if !m.statusUntil.IsZero() && time.Now().After(m.statusUntil) {
			m.statusMsg = ""
			m.statusUntil = time.Time{}
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == tableModeSearch {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m tableModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, tableKeys.Quit) {
		return m, tea.Quit
	}
	if m.table.Loading() {
		return m, nil
	}

	columns := m.table.Columns()
	rowCount := len(m.table.Process().Page)

	switch {
	case key.Matches(msg, tableKeys.Search):
		if !m.table.View().Controls.Search {
			cmd := m.setStatus("search is disabled for this table")
			return m, cmd
		}
		m.mode = tableModeSearch
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, tableKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, tableKeys.Down):
		if m.cursor < rowCount-1 {
			m.cursor++
		}

	case key.Matches(msg, tableKeys.Left):
		if m.colCursor > 0 {
			m.colCursor--
			m.ensureColVisible()
		}

	case key.Matches(msg, tableKeys.Right):
		if m.colCursor < len(columns)-1 {
			m.colCursor++
			m.ensureColVisible()
		}

	case key.Matches(msg, tableKeys.NextPage):
		m.table.NextPage()
		m.cursor = 0

	case key.Matches(msg, tableKeys.PrevPage):
		m.table.PrevPage()
		m.cursor = 0

	case key.Matches(msg, tableKeys.FirstPage):
		m.table.GoToPage(1)
		m.cursor = 0

	case key.Matches(msg, tableKeys.LastPage):
		m.table.GoToPage(m.table.Process().Pagination.TotalPages())
		m.cursor = 0

	case key.Matches(msg, tableKeys.BiggerPage):
		m.table.SetPageSize(pagination.NextPageSize(m.table.PageSizes(), m.table.State().PageSize))
		m.cursor = 0

	case key.Matches(msg, tableKeys.SmallerPage):
		m.table.SetPageSize(pagination.PrevPageSize(m.table.PageSizes(), m.table.State().PageSize))
		m.cursor = 0

	case key.Matches(msg, tableKeys.Sort):
		if m.colCursor < len(columns) {
			col := columns[m.colCursor]
			if !m.table.SortBy(col.Key) {
				cmd := m.setStatus(fmt.Sprintf("%s is not sortable", col.Label))
				return m, cmd
			}
		}

	case key.Matches(msg, tableKeys.Select):
		row, err := m.table.ClickRow(m.cursor)
		if err != nil {
			return m, nil
		}
		cmd := m.setStatus("Selected: " + m.rowSummary(row))
		return m, cmd

	case key.Matches(msg, tableKeys.Filter):
		cmd := m.cycleFilter()
		m.cursor = 0
		return m, cmd

	case key.Matches(msg, tableKeys.Add):
		if !m.table.Add() {
			cmd := m.setStatus("add is not available here")
			return m, cmd
		}
		cmd := m.setStatus("Add requested")
		return m, cmd

	case key.Matches(msg, tableKeys.Export):
		path, err := m.table.ExportTo(m.exportDir, m.now())
		if err != nil {
			cmd := m.setStatus(fmt.Sprintf("export failed: %s", err))
			return m, cmd
		}
		cmd := m.setStatus("Exported " + path)
		return m, cmd

	case key.Matches(msg, tableKeys.YankCell):
		cmd := m.yankCell()
		return m, cmd

	case key.Matches(msg, tableKeys.YankRow):
		cmd := m.yankRow()
		return m, cmd

	case key.Matches(msg, tableKeys.ExportJSON):
		m.exitMode = exitJSON
		return m, tea.Quit

	case key.Matches(msg, tableKeys.ExportRaw):
		m.exitMode = exitRaw
		return m, tea.Quit

	case key.Matches(msg, tableKeys.ExportPlain):
		m.exitMode = exitPlain
		return m, tea.Quit

	case key.Matches(msg, tableKeys.ExportCSV):
		m.exitMode = exitCSV
		return m, tea.Quit
	}

	return m, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Search
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = tableModeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.table.Search("")
		m.cursor = 0
		return m, nil
	case tea.KeyEnter:
		m.mode = tableModeNormal
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Live filter as user types
	if q := m.searchInput.Value(); q != m.table.State().Search {
		m.table.Search(q)
		m.cursor = 0
	}

	return m, cmd
}

// ═══════════════════════════════════════════════════════════════════════════
// Column Helpers
// ═══════════════════════════════════════════════════════════════════════════

// colWidths sizes each column to its header and the cells of the current
// page, capped at maxColWidth.
func colWidths(v datatable.View) []int {
	widths := make([]int, len(v.Columns))
	for i, c := range v.Columns {
		widths[i] = runewidth.StringWidth(c.Label) + 2 // room for sort marker
	}
	for _, row := range v.Cells {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}
	for i := range widths {
		widths[i] = min(max(widths[i], minColWidth), maxColWidth)
	}
	return widths
}

func colStartX(widths []int, colIdx int) int {
	x := 0
	for i := 0; i < colIdx && i < len(widths); i++ {
		x += widths[i] + colGap
	}
	return x
}

func (m *tableModel) ensureColVisible() {
	widths := colWidths(m.table.View())
	if m.colCursor >= len(widths) {
		return
	}
	start := colStartX(widths, m.colCursor)
	end := start + widths[m.colCursor]
	viewportWidth := m.width - 2

	if start < m.scrollX {
		m.scrollX = start
	} else if end > m.scrollX+viewportWidth {
		m.scrollX = max(end-viewportWidth, 0)
	}
}

func (m tableModel) visibleRowCount() int {
	return max(m.height-8, 1) // title, toolbar, header, separator, footer lines
}

func (m tableModel) rowSummary(row datatable.Record) string {
	var parts []string
	for _, c := range m.table.Columns() {
		if s := c.Display(row); s != "" {
			parts = append(parts, s)
		}
		if len(parts) == 2 {
			break
		}
	}
	return strings.Join(parts, " · ")
}

// ═══════════════════════════════════════════════════════════════════════════
// Status Message (flash notification)
// ═══════════════════════════════════════════════════════════════════════════

type statusClearMsg struct{}

const statusDuration = 2 * time.Second

// setStatus sets a temporary status message that auto-clears.
func (m *tableModel) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusUntil = time.Now().Add(statusDuration)
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

// ═══════════════════════════════════════════════════════════════════════════
// Clipboard (yank)
// ═══════════════════════════════════════════════════════════════════════════

// yankCell copies the selected cell's rendered text to the clipboard.
func (m *tableModel) yankCell() tea.Cmd {
	v := m.table.View()
	if m.cursor >= len(v.Cells) || m.colCursor >= len(v.Columns) {
		return nil
	}
	val := v.Cells[m.cursor][m.colCursor]
	if err := m.copy(val); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err))
	}
	return m.setStatus(fmt.Sprintf("Copied: %s", Truncate(val, 40)))
}

// yankRow copies the entire selected row (tab-separated) to the clipboard.
func (m *tableModel) yankRow() tea.Cmd {
	v := m.table.View()
	if m.cursor >= len(v.Cells) {
		return nil
	}
	row := v.Cells[m.cursor]
	if err := m.copy(strings.Join(row, "\t")); err != nil {
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err))
	}
	return m.setStatus(fmt.Sprintf("Copied row (%d columns)", len(row)))
}

// ═══════════════════════════════════════════════════════════════════════════
// ANSI-aware Viewport Slicing
// ═══════════════════════════════════════════════════════════════════════════

// applyViewport extracts a horizontal slice of a string, handling ANSI escape
// codes and wide runes. It returns the portion of the string from visual
// column startX with the given width.
func applyViewport(s string, startX, width int) string {
	if width <= 0 {
		return ""
	}
	startX = max(startX, 0)

	var result strings.Builder
	result.Grow(width + 64)

	visualPos := 0
	outputCells := 0
	stylesApplied := false
	inEscape := false
	var escapeSeq strings.Builder
	var activeStyles []string

	runes := []rune(s)
	for i := 0; i < len(runes) && outputCells < width; i++ {
		r := runes[i]

		if r == '\x1b' && i+1 < len(runes) && runes[i+1] == '[' {
			inEscape = true
			escapeSeq.Reset()
			escapeSeq.WriteRune(r)
			continue
		}

		if inEscape {
			escapeSeq.WriteRune(r)
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
				seq := escapeSeq.String()
				if r == 'm' {
					if seq == "\x1b[0m" || seq == "\x1b[m" {
						activeStyles = nil
					} else {
						activeStyles = append(activeStyles, seq)
					}
				}
				if visualPos >= startX {
					result.WriteString(seq)
				}
			}
			continue
		}

		rw := runewidth.RuneWidth(r)
		if visualPos >= startX {
			if outputCells+rw > width {
				break
			}
			if !stylesApplied && len(activeStyles) > 0 {
				for _, style := range activeStyles {
					result.WriteString(style)
				}
				stylesApplied = true
			}
			result.WriteRune(r)
			outputCells += rw
		}
		visualPos += rw
	}

	if len(activeStyles) > 0 && outputCells > 0 {
		result.WriteString("\x1b[0m")
	}
	if outputCells < width {
		result.WriteString(strings.Repeat(" ", width-outputCells))
	}

	return result.String()
}

// ═══════════════════════════════════════════════════════════════════════════
// View
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	v := m.table.View()
	var sb strings.Builder

	title := v.Title
	if title == "" {
		title = "records"
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)

	if v.Loading {
		sb.WriteString(styles.Render(headerStyle, title))
		sb.WriteString("\n\n")
		sb.WriteString(m.spinner.View())
		sb.WriteString(" Loading records...\n")
		sb.WriteString(styles.MutedMsg("q quit"))
		return sb.String()
	}

	total := len(m.table.Records())
	filtered := v.Pagination.TotalItems
	if v.State.Search != "" || v.State.FilterKey != "" {
		sb.WriteString(styles.Render(headerStyle, fmt.Sprintf("%s: %d/%d records", title, filtered, total)))
	} else {
		sb.WriteString(styles.Render(headerStyle, fmt.Sprintf("%s: %d records", title, total)))
	}
	if v.State.SortField != "" {
		sb.WriteString(styles.MutedMsg(fmt.Sprintf("  [sort: %s %s]", v.State.SortField, v.State.SortDir)))
	}
	sb.WriteString("\n")

	// Search bar / toolbar
	switch {
	case m.mode == tableModeSearch:
		sb.WriteString(fmt.Sprintf("/%s\n", m.searchInput.View()))
	case v.State.Search != "":
		sb.WriteString(styles.MutedMsg(fmt.Sprintf("search: %s\n", v.State.Search)))
	default:
		sb.WriteString(m.toolbar(v.Controls))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderTable(v))

	// Footer
	sb.WriteString("\n")
	if v.ShowPagination {
		sb.WriteString(v.Pagination.Render(v.PageSizes))
		sb.WriteString("\n")
	}
	switch {
	case m.statusMsg != "" && time.Now().Before(m.statusUntil):
		sb.WriteString(styles.SuccessMsg(m.statusMsg))
	case m.mode == tableModeSearch:
		sb.WriteString(styles.MutedMsg("enter confirm  esc clear"))
	default:
		sb.WriteString(styles.MutedMsg("↑↓ row  ←→ column  s sort  / search  f filter  n/p page  +/- rows  enter open  e export  a add  y copy  q quit"))
	}

	return sb.String()
}

// cycleFilter steps the column filter to the next value of the filter
// column: the screen's filter slot, or else the selected column. After the
// last value the filter is cleared.
func (m *tableModel) cycleFilter() tea.Cmd {
	c := m.table.View().Controls
	if !c.FilterButton && c.FilterSlot == "" {
		return m.setStatus("filter is disabled for this table")
	}
	field := c.FilterSlot
	if field == "" {
		columns := m.table.Columns()
		if m.colCursor >= len(columns) {
			return nil
		}
		field = columns[m.colCursor].Key
	}

	values := m.table.FilterValues(field)
	next := ""
	if c.FilterKey != field {
		if len(values) > 0 {
			next = values[0]
		}
	} else if i := slices.Index(values, c.FilterValue); i >= 0 && i+1 < len(values) {
		next = values[i+1]
	}

	m.table.FilterBy(field, next)
	if next == "" {
		return m.setStatus("Filter cleared")
	}
	return m.setStatus(fmt.Sprintf("Filter: %s = %s", field, next))
}

func (m tableModel) toolbar(c datatable.Controls) string {
	var items []string
	if c.Search {
		items = append(items, styles.HelpLine("/", "search"))
	}
	filter := ""
	switch {
	case c.FilterSlot != "":
		filter = "filter " + c.FilterSlot
	case c.FilterButton:
		filter = "filter column"
	}
	if filter != "" {
		if c.FilterKey != "" {
			filter += " [" + c.FilterKey + "=" + c.FilterValue + "]"
		}
		items = append(items, styles.HelpLine("f", filter))
	}
	if c.Export {
		items = append(items, styles.HelpLine("e", "export"))
	}
	if c.Add {
		items = append(items, styles.HelpLine("a", "add new"))
	}
	return strings.Join(items, " ")
}

// ═══════════════════════════════════════════════════════════════════════════
// Render Table
// ═══════════════════════════════════════════════════════════════════════════

func (m tableModel) renderTable(v datatable.View) string {
	if len(v.Columns) == 0 {
		return "No columns"
	}

	var sb strings.Builder
	viewportWidth := m.width - 2
	widths := colWidths(v)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Info)
	selectedHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)
	separatorStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	selectedRowStyle := lipgloss.NewStyle().Background(styles.BgHighlight)
	selectedCellStyle := lipgloss.NewStyle().Background(styles.Accent).Foreground(lipgloss.Color("#000000"))

	var header, sep strings.Builder
	for i, c := range v.Columns {
		label := c.Label
		if v.State.SortField == c.Key {
			if v.State.SortDir == datatable.Desc {
				label += " " + styles.SymbolSortDsc
			} else {
				label += " " + styles.SymbolSortAsc
			}
		}
		cell := PadOrTruncate(label, widths[i])
		if i == m.colCursor {
			header.WriteString(styles.Render(selectedHeaderStyle, cell))
		} else {
			header.WriteString(styles.Render(headerStyle, cell))
		}
		header.WriteString(strings.Repeat(" ", colGap))
		sep.WriteString(styles.Render(separatorStyle, strings.Repeat("─", widths[i])))
		sep.WriteString(strings.Repeat(" ", colGap))
	}
	sb.WriteString(applyViewport(header.String(), m.scrollX, viewportWidth))
	sb.WriteString("\n")
	sb.WriteString(applyViewport(sep.String(), m.scrollX, viewportWidth))
	sb.WriteString("\n")

	if v.Empty {
		sb.WriteString(styles.MutedMsg(datatable.EmptyMessage))
		sb.WriteString("\n")
		return sb.String()
	}

	// Keep the cursor row on screen when the page is taller than the terminal.
	visible := m.visibleRowCount()
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(v.Cells))

	for r := start; r < end; r++ {
		var line strings.Builder
		for i := range v.Columns {
			cell := PadOrTruncate(v.Cells[r][i], widths[i])
			switch {
			case r == m.cursor && i == m.colCursor:
				line.WriteString(styles.Render(selectedCellStyle, cell))
			case r == m.cursor:
				line.WriteString(styles.Render(selectedRowStyle, cell))
			default:
				line.WriteString(cell)
			}
			line.WriteString(strings.Repeat(" ", colGap))
		}
		sb.WriteString(applyViewport(line.String(), m.scrollX, viewportWidth))
		sb.WriteString("\n")
	}

	if m.scrollX > 0 || colStartX(widths, len(widths)) > m.scrollX+viewportWidth {
		sb.WriteString(styles.MutedMsg("◀ ▶"))
	}

	return sb.String()
}
