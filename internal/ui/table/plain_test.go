package table

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ledgerline/mfin/internal/datatable"
	"github.com/ledgerline/mfin/internal/ui/styles"
)

func TestPrintPlainTable(t *testing.T) {
	var sb strings.Builder
	PrintPlainTable(&sb, []string{"Code", "Village"}, [][]string{
		{"1", "Rampur"},
		{"12", "日本"},
	})

	want := "Code  Village\n" +
		"────  ───────\n" +
		"1     Rampur \n" +
		"12    日本   \n"
	if sb.String() != want {
		t.Fatalf("plain table mismatch:\n  got:  %q\n  want: %q", sb.String(), want)
	}
}

func TestPrintPlainTable_NoColumns(t *testing.T) {
	var sb strings.Builder
	PrintPlainTable(&sb, nil, nil)
	if sb.String() != "(0 rows)\n" {
		t.Fatalf("got %q", sb.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Rampur", 10, "Rampur"},
		{"Bhagwanpur", 8, "Bhagw..."},
		{"Bhagwanpur", 3, "Bha"},
		{"日本語テキスト", 7, "日本..."},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
	if got := PadOrTruncate("ab", 4); got != "ab  " {
		t.Errorf("PadOrTruncate = %q", got)
	}
}

func TestPrintTable_Formats(t *testing.T) {
	styles.SetNoColor(true)
	defer styles.SetNoColor(false)

	newTable := func() *datatable.Table {
		tbl := datatable.New(testColumns(), datatable.WithTitle("Villages"), datatable.WithPageSize(2))
		tbl.SetData(testRecords(3))
		return tbl
	}

	t.Run("raw", func(t *testing.T) {
		var sb strings.Builder
		if err := PrintTable(newTable(), DisplayOptions{Raw: true, Out: &sb}); err != nil {
			t.Fatal(err)
		}
		if want := "1\tRampur\t0\n2\tSitapur\t7\n"; sb.String() != want {
			t.Fatalf("got %q, want %q", sb.String(), want)
		}
	})

	t.Run("json", func(t *testing.T) {
		var sb strings.Builder
		if err := PrintTable(newTable(), DisplayOptions{JSON: true, Out: &sb}); err != nil {
			t.Fatal(err)
		}
		var got []map[string]any
		if err := json.Unmarshal([]byte(sb.String()), &got); err != nil {
			t.Fatal(err)
		}
		want := []map[string]any{
			{"code": float64(1), "name": "Rampur", "clients": float64(0)},
			{"code": float64(2), "name": "Sitapur", "clients": float64(7)},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("json (-want +got):\n%s", diff)
		}
	})

	t.Run("csv exports every filtered row", func(t *testing.T) {
		var sb strings.Builder
		if err := PrintTable(newTable(), DisplayOptions{CSV: true, Out: &sb}); err != nil {
			t.Fatal(err)
		}
		want := "Code,Village,Clients\n1,Rampur,0\n2,Sitapur,7\n3,Bhagwanpur,1\n"
		if sb.String() != want {
			t.Fatalf("got %q, want %q", sb.String(), want)
		}
	})

	t.Run("plain", func(t *testing.T) {
		var sb strings.Builder
		if err := PrintTable(newTable(), DisplayOptions{Out: &sb}); err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(sb.String(), "\nShowing 1 to 2 of 3 entries\n") {
			t.Fatalf("missing summary: %q", sb.String())
		}
	})

	t.Run("plain empty", func(t *testing.T) {
		tbl := newTable()
		tbl.Search("nothing matches")
		var sb strings.Builder
		if err := PrintTable(tbl, DisplayOptions{Out: &sb}); err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(sb.String(), datatable.EmptyMessage+"\n") {
			t.Fatalf("missing placeholder: %q", sb.String())
		}
	})
}

func TestDisplayResults_LoadsBeforePrinting(t *testing.T) {
	tbl := datatable.New(testColumns())
	var sb strings.Builder

	err := DisplayResults(context.Background(), tbl, DisplayOptions{
		Raw:  true,
		Out:  &sb,
		Load: func(context.Context) ([]datatable.Record, error) { return testRecords(1), nil },
	})
	if err != nil {
		t.Fatal(err)
	}
	if sb.String() != "1\tRampur\t0\n" {
		t.Fatalf("got %q", sb.String())
	}

	boom := errors.New("db down")
	err = DisplayResults(context.Background(), tbl, DisplayOptions{
		Raw:  true,
		Out:  &sb,
		Load: func(context.Context) ([]datatable.Record, error) { return nil, boom },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestDisplayResults_OpensPageAfterLoad(t *testing.T) {
	load := func(context.Context) ([]datatable.Record, error) { return testRecords(5), nil }

	for _, tc := range []struct {
		page int
		want string
	}{
		{page: 3, want: "5\tRampur\t2\n"},
		{page: 9, want: "5\tRampur\t2\n"},
		{page: 0, want: "1\tRampur\t0\n2\tSitapur\t7\n"},
	} {
		tbl := datatable.New(testColumns(), datatable.WithPageSize(2))
		var sb strings.Builder
		err := DisplayResults(context.Background(), tbl, DisplayOptions{Raw: true, Out: &sb, Page: tc.page, Load: load})
		if err != nil {
			t.Fatal(err)
		}
		if sb.String() != tc.want {
			t.Errorf("page %d: got %q, want %q", tc.page, sb.String(), tc.want)
		}
	}
}

func TestInteractive(t *testing.T) {
	var sb strings.Builder
	for _, opts := range []DisplayOptions{
		{Out: &sb},
		{Raw: true},
		{JSON: true},
		{CSV: true},
		{NoPager: true},
	} {
		if Interactive(opts) {
			t.Errorf("Interactive(%+v) = true", opts)
		}
	}
}
