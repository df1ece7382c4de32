// Package screens registers the back-office list screens: their columns,
// display formatting, table affordances and built-in sample records.
package screens

import (
	"slices"

	"go.uber.org/zap"

	"github.com/ledgerline/mfin/internal/datatable"
	"github.com/ledgerline/mfin/internal/util"
)

// Group classifies screens the way the back-office menu does.
type Group string

const (
	GroupMaster      Group = "master"
	GroupTransaction Group = "transaction"
	GroupReport      Group = "report"
)

// Screen is one list page of the back office.
type Screen struct {
	Name    string
	Title   string
	Group   Group
	Columns []datatable.Column
	// DefaultSort is the column the CLI sorts by when no --sort is given.
	DefaultSort string
	// FilterSlot is the column key of a screen-specific filter that replaces
	// the generic filter button.
	FilterSlot string
	// ReadOnly screens (reports) have no add affordance.
	ReadOnly bool
	// Sample builds the built-in sample records. It is deterministic.
	Sample func() []datatable.Record
}

// NewTable builds a table controller configured for the screen. Extra
// options are applied after the screen's own.
func (s Screen) NewTable(log *zap.Logger, opts ...datatable.Option) *datatable.Table {
	base := []datatable.Option{
		datatable.WithTitle(s.Title),
		datatable.WithAddable(!s.ReadOnly),
		datatable.WithLogger(log),
	}
	if s.FilterSlot != "" {
		base = append(base, datatable.WithFilterSlot(s.FilterSlot))
	}
	return datatable.New(s.Columns, append(base, opts...)...)
}

var registry = []Screen{
	areas, villages, clients, products, districts, insurance, pincodes, ifsc, purposes,
	loanApplications, neftDisbursement, productBranchMapping,
	loanSummary, repayments, overdue, branchDayClose,
}

// All returns every registered screen in menu order.
func All() []Screen {
	return slices.Clone(registry)
}

// Names returns the registered screen names in menu order.
func Names() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.Name
	}
	return names
}

// Lookup finds a screen by name.
func Lookup(name string) (Screen, error) {
	for _, s := range registry {
		if s.Name == name {
			return s, nil
		}
	}
	return Screen{}, util.UnknownScreenError(name)
}
