// Package source loads the records shown on a screen: the built-in sample
// data, a JSON/YAML/CSV file, or a PostgreSQL table.
package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgerline/mfin/internal/config"
	"github.com/ledgerline/mfin/internal/datatable"
	"github.com/ledgerline/mfin/internal/db"
	"github.com/ledgerline/mfin/internal/screens"
	"github.com/ledgerline/mfin/internal/util"
)

const (
	KindSample   = "sample"
	KindFile     = "file"
	KindPostgres = "postgres"
)

// Source produces the records of one screen.
type Source interface {
	Load(ctx context.Context) ([]datatable.Record, error)
	// Describe names the source for headers and log lines.
	Describe() string
}

// Func adapts a plain function to Source.
type Func struct {
	Name string
	Fn   func(ctx context.Context) ([]datatable.Record, error)
}

func (f Func) Load(ctx context.Context) ([]datatable.Record, error) { return f.Fn(ctx) }
func (f Func) Describe() string                                     { return f.Name }

// Sample serves the screen's built-in sample records.
func Sample(s screens.Screen) Source {
	return Func{
		Name: "sample data",
		Fn: func(ctx context.Context) ([]datatable.Record, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return s.Sample(), nil
		},
	}
}

// Open picks the source for a screen from cfg. Flags are expected to have
// been folded into cfg by the caller.
func Open(cfg *config.Config, s screens.Screen) (Source, error) {
	switch cfg.Source.Kind {
	case "", KindSample:
		return Sample(s), nil

	case KindFile:
		if cfg.Source.Path == "" {
			return nil, util.NoSourceError(KindFile, "source.path")
		}
		path, err := resolveFile(util.ExpandHome(cfg.Source.Path), s.Name)
		if err != nil {
			return nil, err
		}
		return File(path), nil

	case KindPostgres:
		url := cfg.DatabaseURL()
		if url == "" {
			return nil, util.NoSourceError(KindPostgres, "source.url (or $"+config.DatabaseURLEnv+")")
		}
		table := cfg.Source.Table
		if table == "" {
			table = strings.ReplaceAll(s.Name, "-", "_")
		}
		return Postgres(url, table, db.ConnectLite), nil

	default:
		return nil, util.NewError("Unknown source kind '" + cfg.Source.Kind + "'").
			WithSuggestion("mfin config source.kind sample").
			Wrap(util.ErrNoSource)
	}
}

// resolveFile returns path itself when it is a file, or the first
// <screen>.<ext> found when it is a directory.
func resolveFile(path, screen string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", util.NewError("Cannot read data path").WithContext(path).Wrap(err)
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, ext := range []string{".json", ".yaml", ".yml", ".csv"} {
		candidate := filepath.Join(path, screen+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", util.NewError("No data file for screen '" + screen + "'").
		WithContext(path).
		WithMessage("Expected " + screen + ".json, .yaml, .yml or .csv in the directory").
		Wrap(os.ErrNotExist)
}
