package table

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/ledgerline/mfin/internal/datatable"
	"github.com/ledgerline/mfin/internal/ui/styles"
)

func testColumns() []datatable.Column {
	return []datatable.Column{
		{Key: "code", Label: "Code", Sortable: true},
		{Key: "name", Label: "Village"},
		{Key: "clients", Label: "Clients", Sortable: true},
	}
}

func testRecords(n int) []datatable.Record {
	names := []string{"Rampur", "Sitapur", "Bhagwanpur", "Rajpur"}
	out := make([]datatable.Record, n)
	for i := range out {
		out[i] = datatable.Record{
			"code":    i + 1,
			"name":    names[i%len(names)],
			"clients": (i * 7) % 13,
		}
	}
	return out
}

// newTestModel builds a sized model over n records with clipboard and clock
// stubbed out.
func newTestModel(t *testing.T, n int, opts ...datatable.Option) (tableModel, *datatable.Table, *string) {
	t.Helper()
	styles.SetNoColor(true)
	t.Cleanup(func() { styles.SetNoColor(false) })

	tbl := datatable.New(testColumns(), append([]datatable.Option{datatable.WithTitle("Villages")}, opts...)...)
	tbl.SetData(testRecords(n))

	m := newTableModel(context.Background(), tbl, DisplayOptions{ExportDir: t.TempDir()})
	copied := new(string)
	m.copy = func(s string) error { *copied = s; return nil }
	m.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(tableModel), tbl, copied
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds key messages through Update and returns the final model.
func press(m tableModel, keys ...tea.KeyMsg) tableModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(tableModel)
	}
	return m
}

func TestTUI_SortToggle(t *testing.T) {
	m, tbl, _ := newTestModel(t, 5)

	m = press(m, runes("s"))
	if s := tbl.State(); s.SortField != "code" || s.SortDir != datatable.Asc {
		t.Fatalf("after first s: %+v", s)
	}
	m = press(m, runes("s"))
	if s := tbl.State(); s.SortDir != datatable.Desc {
		t.Fatalf("after second s: %+v", s)
	}

	view := m.View()
	if !strings.Contains(view, "Code "+styles.SymbolSortDsc) {
		t.Fatalf("header should show the desc marker:\n%s", view)
	}
}

func TestTUI_SortNonSortableColumn(t *testing.T) {
	m, tbl, _ := newTestModel(t, 5)

	m = press(m, tea.KeyMsg{Type: tea.KeyRight}, runes("s"))
	if tbl.State().SortField != "" {
		t.Fatal("non-sortable column should not change the sort")
	}
	if !strings.Contains(m.statusMsg, "not sortable") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestTUI_Search(t *testing.T) {
	m, tbl, _ := newTestModel(t, 20)
	m = press(m, runes("n"))
	if tbl.State().Page != 2 {
		t.Fatalf("setup: page = %d", tbl.State().Page)
	}

	m = press(m, runes("/"))
	if m.mode != tableModeSearch {
		t.Fatal("expected search mode")
	}
	m = press(m, runes("r"), runes("a"), runes("j"))
	if got := tbl.State().Search; got != "raj" {
		t.Fatalf("search = %q, want raj", got)
	}
	if tbl.State().Page != 1 {
		t.Fatalf("search should reset page, got %d", tbl.State().Page)
	}
	if got := len(tbl.Process().Filtered); got != 5 {
		t.Fatalf("filtered = %d, want 5", got)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != tableModeNormal || tbl.State().Search != "raj" {
		t.Fatal("enter should keep the filter and leave search mode")
	}

	m = press(m, runes("/"), tea.KeyMsg{Type: tea.KeyEsc})
	if tbl.State().Search != "" {
		t.Fatal("esc should clear the filter")
	}
}

func TestTUI_EmptySearchShowsPlaceholder(t *testing.T) {
	m, _, _ := newTestModel(t, 8)
	m = press(m, runes("/"), runes("z"), runes("z"), runes("z"))

	view := m.View()
	if !strings.Contains(view, datatable.EmptyMessage) {
		t.Fatalf("expected placeholder:\n%s", view)
	}
	if strings.Contains(view, "Showing") {
		t.Fatalf("pagination should be hidden:\n%s", view)
	}
}

func TestTUI_Paging(t *testing.T) {
	m, tbl, _ := newTestModel(t, 47)

	m = press(m, runes("G"))
	if tbl.State().Page != 5 {
		t.Fatalf("G: page = %d, want 5", tbl.State().Page)
	}
	if !strings.Contains(m.View(), "Showing 41 to 47 of 47 entries") {
		t.Fatalf("footer missing summary:\n%s", m.View())
	}

	m = press(m, runes("n"))
	if tbl.State().Page != 5 {
		t.Fatalf("n on last page: page = %d, want 5", tbl.State().Page)
	}

	m = press(m, runes("p"), runes("p"))
	if tbl.State().Page != 3 {
		t.Fatalf("p p: page = %d, want 3", tbl.State().Page)
	}

	m = press(m, runes("+"))
	if s := tbl.State(); s.PageSize != 25 || s.Page != 1 {
		t.Fatalf("+: %+v", s)
	}
	_ = press(m, runes("-"), runes("-"))
	if s := tbl.State(); s.PageSize != 100 {
		t.Fatalf("- -: page size = %d, want 100", s.PageSize)
	}
}

func TestTUI_CursorStaysOnPage(t *testing.T) {
	m, _, _ := newTestModel(t, 12)
	for i := 0; i < 15; i++ {
		m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != 9 {
		t.Fatalf("cursor = %d, want 9", m.cursor)
	}
	m = press(m, runes("n"))
	if m.cursor != 0 {
		t.Fatalf("cursor after paging = %d, want 0", m.cursor)
	}
}

func TestTUI_SelectRow(t *testing.T) {
	var clicked datatable.Record
	m, _, _ := newTestModel(t, 5, datatable.WithOnRowClick(func(r datatable.Record) { clicked = r }))

	m = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if clicked == nil || clicked["code"] != 2 {
		t.Fatalf("clicked = %v", clicked)
	}
	if !strings.Contains(m.statusMsg, "Selected: 2 · Sitapur") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestTUI_Add(t *testing.T) {
	added := 0
	m, _, _ := newTestModel(t, 3, datatable.WithOnAdd(func() { added++ }))
	m = press(m, runes("a"))
	if added != 1 {
		t.Fatalf("added = %d", added)
	}

	m, _, _ = newTestModel(t, 3)
	m = press(m, runes("a"))
	if !strings.Contains(m.statusMsg, "not available") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestTUI_Export(t *testing.T) {
	m, _, _ := newTestModel(t, 3)
	m = press(m, runes("e"))

	path := filepath.Join(m.exportDir, "Villages_2026-10-15.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export not written: %v (status %q)", err, m.statusMsg)
	}
	if !strings.HasPrefix(string(data), "Code,Village,Clients\n1,Rampur,0") {
		t.Fatalf("export content = %q", data)
	}
}

func TestTUI_Yank(t *testing.T) {
	m, _, copied := newTestModel(t, 3)

	m = press(m, tea.KeyMsg{Type: tea.KeyRight}, runes("y"))
	if *copied != "Rampur" {
		t.Fatalf("copied cell = %q", *copied)
	}

	m = press(m, runes("Y"))
	if *copied != "1\tRampur\t0" {
		t.Fatalf("copied row = %q", *copied)
	}

	m.copy = func(string) error { return errors.New("no clipboard") }
	m = press(m, runes("y"))
	if !strings.Contains(m.statusMsg, "clipboard error") {
		t.Fatalf("status = %q", m.statusMsg)
	}
}

func TestTUI_ExitModes(t *testing.T) {
	tests := map[string]exitMode{"J": exitJSON, "R": exitRaw, "P": exitPlain, "C": exitCSV}
	for k, want := range tests {
		m, _, _ := newTestModel(t, 2)
		next, cmd := m.Update(runes(k))
		if next.(tableModel).exitMode != want {
			t.Errorf("%s: exit mode = %d, want %d", k, next.(tableModel).exitMode, want)
		}
		if cmd == nil {
			t.Errorf("%s: expected quit command", k)
		}
	}
}

func TestTUI_Loading(t *testing.T) {
	styles.SetNoColor(true)
	defer styles.SetNoColor(false)

	tbl := datatable.New(testColumns(), datatable.WithTitle("Villages"))
	load := func(context.Context) ([]datatable.Record, error) { return testRecords(4), nil }
	m := newTableModel(context.Background(), tbl, DisplayOptions{Load: load})

	if m.Init() == nil {
		t.Fatal("Init should start loading")
	}
	if !tbl.Loading() {
		t.Fatal("table should be loading")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = next.(tableModel)
	if !strings.Contains(m.View(), "Loading records") {
		t.Fatalf("expected loading view:\n%s", m.View())
	}

	// Keys other than quit are ignored while loading.
	m = press(m, runes("s"))
	if tbl.State().SortField != "" {
		t.Fatal("sort applied while loading")
	}

	next, _ = m.Update(m.loadCmd()())
	m = next.(tableModel)
	if tbl.Loading() || len(tbl.Records()) != 4 {
		t.Fatalf("records not applied: loading=%v records=%d", tbl.Loading(), len(tbl.Records()))
	}
	if !strings.Contains(m.View(), "Villages: 4 records") {
		t.Fatalf("header missing:\n%s", m.View())
	}
}

func TestTUI_LoadError(t *testing.T) {
	tbl := datatable.New(testColumns())
	boom := errors.New("connection refused")
	m := newTableModel(context.Background(), tbl, DisplayOptions{
		Load: func(context.Context) ([]datatable.Record, error) { return nil, boom },
	})

	next, cmd := m.Update(m.loadCmd()())
	if !errors.Is(next.(tableModel).loadErr, boom) {
		t.Fatalf("loadErr = %v", next.(tableModel).loadErr)
	}
	if cmd == nil {
		t.Fatal("expected quit after load error")
	}
}

func TestApplyViewport(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		start  int
		width  int
		expect string
	}{
		{"full", "Hello", 0, 5, "Hello"},
		{"offset", "Hello World", 6, 5, "World"},
		{"padded", "Hi", 0, 5, "Hi   "},
		{"past end", "Hi", 10, 3, "   "},
		{"wide runes", "日本語", 2, 4, "本語"},
		{"zero width", "Hello", 0, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyViewport(tt.in, tt.start, tt.width)
			if got != tt.expect {
				t.Fatalf("applyViewport(%q, %d, %d) = %q, want %q", tt.in, tt.start, tt.width, got, tt.expect)
			}
		})
	}
}

func TestApplyViewport_KeepsStyles(t *testing.T) {
	in := "\x1b[31mred text\x1b[0m"
	got := applyViewport(in, 4, 4)
	if !strings.HasPrefix(got, "\x1b[31m") {
		t.Fatalf("expected active style re-applied, got %q", got)
	}
	if !strings.Contains(got, "text") {
		t.Fatalf("got %q", got)
	}
}

func TestTUI_FilterCyclesColumnValues(t *testing.T) {
	m, tbl, _ := newTestModel(t, 8)
	m = press(m, runes("l"))

	var got []int
	for range 5 {
		m = press(m, runes("f"))
		got = append(got, len(tbl.Process().Filtered))
	}
	if diff := cmp.Diff([]int{2, 2, 2, 2, 8}, got); diff != "" {
		t.Fatalf("filtered counts (-want +got):\n%s", diff)
	}

	m = press(m, runes("f"))
	if s := tbl.State(); s.FilterKey != "name" || s.FilterValue != "Bhagwanpur" {
		t.Fatalf("state = %+v", s)
	}
	view := m.View()
	if !strings.Contains(view, "f filter column [name=Bhagwanpur]") || !strings.Contains(view, "Villages: 2/8 records") {
		t.Fatalf("filter not shown:\n%s", view)
	}
}

func TestTUI_FilterUsesSlotColumn(t *testing.T) {
	m, tbl, _ := newTestModel(t, 8, datatable.WithFilterSlot("name"))

	m = press(m, runes("f"), runes("f"))
	if s := tbl.State(); s.FilterKey != "name" || s.FilterValue != "Rajpur" {
		t.Fatalf("state = %+v", s)
	}
	if !strings.Contains(m.View(), "f filter name [name=Rajpur]") {
		t.Fatalf("slot filter not shown:\n%s", m.View())
	}

	m, tbl, _ = newTestModel(t, 8, datatable.WithFilterable(false))
	press(m, runes("f"))
	if tbl.State().FilterKey != "" {
		t.Fatal("non-filterable table should ignore f")
	}
}
