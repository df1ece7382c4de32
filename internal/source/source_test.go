package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ledgerline/mfin/internal/config"
	"github.com/ledgerline/mfin/internal/datatable"
	"github.com/ledgerline/mfin/internal/db"
	"github.com/ledgerline/mfin/internal/screens"
	"github.com/ledgerline/mfin/internal/util"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFile_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "villages.json", `[
		{"village_code": "VL0001", "village_name": "Rampur", "households": 420, "distance_km": 12.5, "status": null},
		{"village_code": "VL0002", "village_name": "Sitapur", "households": 95, "active": true}
	]`)

	records, err := File(path).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []datatable.Record{
		{"village_code": "VL0001", "village_name": "Rampur", "households": float64(420), "distance_km": 12.5, "status": nil},
		{"village_code": "VL0002", "village_name": "Sitapur", "households": float64(95), "active": true},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records (-want +got):\n%s", diff)
	}
}

func TestFile_JSONWrapped(t *testing.T) {
	path := writeFile(t, t.TempDir(), "areas.json", `{"data": [{"area_code": "AR001"}], "total": 1}`)
	records, err := File(path).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0]["area_code"] != "AR001" {
		t.Fatalf("records = %v", records)
	}
}

func TestFile_JSONNotArray(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.json", `{"area_code": "AR001"}`)
	if _, err := File(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for a non-array document")
	}
}

func TestFile_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "products.yaml", `
- product_code: PR01
  product_name: Livestock Loan
  interest_rate: 22.5
  tenure_months: 24
- product_code: PR02
  product_name: Dairy Loan
`)
	records, err := File(path).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []datatable.Record{
		{"product_code": "PR01", "product_name": "Livestock Loan", "interest_rate": 22.5, "tenure_months": 24},
		{"product_code": "PR02", "product_name": "Dairy Loan"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records (-want +got):\n%s", diff)
	}
}

func TestFile_CSV(t *testing.T) {
	content := "\ufeffloan_id,client,amount,due_date,pincode,note\n" +
		"LN000101,Jos\xe9 Kumar,\"12,500.50\",05-07-2024,020301,\n" +
		"LN000102,Rekha Devi,800,2024-07-12,241001,second cycle\n" +
		"LN000103,Short Row\n"
	path := writeFile(t, t.TempDir(), "overdue.csv", content)

	records, err := File(path).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []datatable.Record{
		{
			"loan_id": "LN000101", "client": "José Kumar", "amount": 12500.50,
			"due_date": time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC), "pincode": "020301", "note": nil,
		},
		{
			"loan_id": "LN000102", "client": "Rekha Devi", "amount": float64(800),
			"due_date": time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC), "pincode": float64(241001), "note": "second cycle",
		},
		{"loan_id": "LN000103", "client": "Short Row"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records (-want +got):\n%s", diff)
	}
}

func TestCSVValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", nil},
		{"  ", nil},
		{"42", float64(42)},
		{"-3.5", -3.5},
		{"0.75", 0.75},
		{"0", float64(0)},
		{"007", "007"},
		{"NaN", "NaN"},
		{"Inf", "Inf"},
		{"1e5", "1e5"},
		{"SBIN0001234", "SBIN0001234"},
		{"12,500.50", 12500.5},
		{"1,250,000", float64(1250000)},
		{"12,50,000", float64(1250000)},
		{"-4,500", float64(-4500)},
		{"10,20", "10,20"},
		{"1,2,3", "1,2,3"},
		{"12,5000", "12,5000"},
		{"1,250,00", "1,250,00"},
	}
	for _, tt := range tests {
		if got := csvValue(tt.in); !cmp.Equal(got, tt.want) {
			t.Errorf("csvValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestCSV_ExportRoundTrip(t *testing.T) {
	columns := []datatable.Column{
		{Key: "ref", Label: "ref"},
		{Key: "amount", Label: "amount"},
		{Key: "village", Label: "village"},
	}
	records := []datatable.Record{
		{"ref": "10,20", "amount": 12500.5, "village": "Rampur, Block 2"},
		{"ref": "7,8,9", "amount": float64(300), "village": "Sitapur"},
	}

	got, err := decodeCSV(strings.NewReader(datatable.FormatCSV(columns, records)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("records changed after export and re-import (-want +got):\n%s", diff)
	}
}

func TestFile_Unsupported(t *testing.T) {
	path := writeFile(t, t.TempDir(), "loans.xlsx", "PK")
	_, err := File(path).Load(context.Background())
	if !errors.Is(err, util.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFile_Missing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "none.json")).Load(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	villages, _ := screens.Lookup("villages")
	dir := t.TempDir()
	writeFile(t, dir, "villages.csv", "village_code\nVL0001\n")

	t.Run("sample", func(t *testing.T) {
		src, err := Open(config.Default(), villages)
		if err != nil {
			t.Fatal(err)
		}
		records, err := src.Load(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(villages.Sample(), records); diff != "" {
			t.Fatalf("sample records differ:\n%s", diff)
		}
	})

	t.Run("file directory", func(t *testing.T) {
		cfg := config.Default()
		cfg.Source.Kind, cfg.Source.Path = KindFile, dir
		src, err := Open(cfg, villages)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(src.Describe(), "villages.csv") {
			t.Fatalf("Describe() = %q", src.Describe())
		}
	})

	t.Run("file directory without screen file", func(t *testing.T) {
		cfg := config.Default()
		cfg.Source.Kind, cfg.Source.Path = KindFile, dir
		clients, _ := screens.Lookup("clients")
		if _, err := Open(cfg, clients); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected not-exist error, got %v", err)
		}
	})

	t.Run("file without path", func(t *testing.T) {
		cfg := config.Default()
		cfg.Source.Kind = KindFile
		if _, err := Open(cfg, villages); !errors.Is(err, util.ErrNoSource) {
			t.Fatalf("expected ErrNoSource, got %v", err)
		}
	})

	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv(config.DatabaseURLEnv, "")
		cfg := config.Default()
		cfg.Source.Kind = KindPostgres
		if _, err := Open(cfg, villages); !errors.Is(err, util.ErrNoSource) {
			t.Fatalf("expected ErrNoSource, got %v", err)
		}
	})

	t.Run("postgres table from screen name", func(t *testing.T) {
		t.Setenv(config.DatabaseURLEnv, "postgres://mfin@db/loans")
		cfg := config.Default()
		cfg.Source.Kind = KindPostgres
		neft, _ := screens.Lookup("neft-disbursement")
		src, err := Open(cfg, neft)
		if err != nil {
			t.Fatal(err)
		}
		if src.Describe() != "postgres table neft_disbursement" {
			t.Fatalf("Describe() = %q", src.Describe())
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		cfg := config.Default()
		cfg.Source.Kind = "ftp"
		if _, err := Open(cfg, villages); !errors.Is(err, util.ErrNoSource) {
			t.Fatalf("expected ErrNoSource, got %v", err)
		}
	})
}

func TestPostgres_ConnectError(t *testing.T) {
	refused := errors.New("connection refused")
	src := Postgres("postgres://mfin:secret@db/loans", "loans", func(context.Context, string) (*db.DB, error) {
		return nil, refused
	})
	_, err := src.Load(context.Background())
	if !errors.Is(err, refused) {
		t.Fatalf("expected connect error, got %v", err)
	}
	var appErr *util.AppError
	if !errors.As(err, &appErr) || strings.Contains(appErr.Context, "secret") {
		t.Fatalf("password should be redacted: %+v", appErr)
	}
}

func TestSample_Cancelled(t *testing.T) {
	villages, _ := screens.Lookup("villages")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Sample(villages).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
