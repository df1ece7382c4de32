package screens

import (
	"fmt"
	"math"

	"github.com/ledgerline/mfin/internal/datatable"
	"github.com/ledgerline/mfin/internal/util"
)

// sampleAsOf is the reporting date of the report screens.
var sampleAsOf = sampleEpoch.AddDate(0, 6, 0)

var loanSummary = Screen{
	Name:     "loan-summary",
	Title:    "Loan Summary",
	Group:    GroupReport,
	ReadOnly: true,
	Columns: []datatable.Column{
		{Key: "branch", Label: "Branch", Sortable: true},
		{Key: "active_loans", Label: "Active Loans", Sortable: true},
		{Key: "disbursed", Label: "Disbursed", Sortable: true, Render: renderINR},
		{Key: "outstanding", Label: "Outstanding", Sortable: true, Render: renderINR},
		{Key: "par30", Label: "PAR > 30", Sortable: true, Render: renderPercent},
		{Key: "collection_efficiency", Label: "Collection Eff.", Sortable: true, Render: renderPercent},
	},
	DefaultSort: "branch",
	Sample: func() []datatable.Record {
		g := newGenerator(301)
		out := make([]datatable.Record, 0, len(branchNames))
		for _, branch := range branchNames {
			loans := g.between(400, 2600)
			disbursed := float64(loans) * g.amount(22000, 38000, 500)
			out = append(out, datatable.Record{
				"id":                    g.id(),
				"branch":                branch,
				"active_loans":          loans,
				"disbursed":             disbursed,
				"outstanding":           math.Round(disbursed * float64(g.between(35, 70)) / 100),
				"par30":                 float64(g.between(5, 85)) / 10,
				"collection_efficiency": float64(g.between(930, 998)) / 10,
			})
		}
		return out
	},
}

var repayments = Screen{
	Name:     "repayments",
	Title:    "Repayment Details",
	Group:    GroupReport,
	ReadOnly: true,
	Columns: []datatable.Column{
		{Key: "receipt_no", Label: "Receipt No", Sortable: true},
		{Key: "loan_id", Label: "Loan ID", Sortable: true},
		{Key: "client_name", Label: "Client", Sortable: true},
		{Key: "installment", Label: "Inst.", Sortable: true},
		{Key: "due_date", Label: "Due Date", Sortable: true, Render: renderDate},
		{Key: "paid_on", Label: "Paid On", Sortable: true, Render: renderDate},
		{Key: "amount", Label: "Amount", Sortable: true, Render: renderINR},
		{Key: "mode", Label: "Mode", Sortable: true},
	},
	DefaultSort: "due_date",
	FilterSlot:  "mode",
	Sample: func() []datatable.Record {
		g := newGenerator(302)
		out := make([]datatable.Record, 0, 212)
		for i := 0; i < 212; i++ {
			first, last := g.person()
			due := g.day(180)
			// Unpaid installments have no payment date.
			var paid any
			if g.rnd.Intn(9) > 0 {
				paid = due.AddDate(0, 0, g.between(-2, 6))
			}
			out = append(out, datatable.Record{
				"id":          g.id(),
				"receipt_no":  fmt.Sprintf("RC%07d", 3000000+i),
				"loan_id":     fmt.Sprintf("LN%06d", 200000+g.between(1, 9999)),
				"client_name": first + " " + last,
				"installment": g.between(1, 24),
				"due_date":    due,
				"paid_on":     paid,
				"amount":      g.amount(500, 4500, 50),
				"mode":        g.weighted([]string{"Cash", "UPI", "NACH"}, []int{6, 3, 1}),
			})
		}
		return out
	},
}

// overdueBucket groups days past due the way the portfolio-at-risk report
// does.
func overdueBucket(dpd int) string {
	switch {
	case dpd <= 30:
		return "1-30"
	case dpd <= 60:
		return "31-60"
	case dpd <= 90:
		return "61-90"
	default:
		return "90+"
	}
}

var overdue = Screen{
	Name:     "overdue",
	Title:    "Overdue Loans",
	Group:    GroupReport,
	ReadOnly: true,
	Columns: []datatable.Column{
		{Key: "loan_id", Label: "Loan ID", Sortable: true},
		{Key: "client_name", Label: "Client", Sortable: true},
		{Key: "branch", Label: "Branch", Sortable: true},
		{Key: "due_date", Label: "First Missed", Sortable: true, Render: renderDate},
		{Key: "dpd", Label: "DPD", Sortable: true},
		{Key: "bucket", Label: "Bucket", Sortable: true},
		{Key: "overdue_amount", Label: "Overdue", Sortable: true, Render: renderINR},
		{Key: "principal_outstanding", Label: "Principal O/S", Sortable: true, Render: renderINR},
		{Key: "status", Label: "Status", Sortable: true, Render: renderStatus},
	},
	DefaultSort: "dpd",
	FilterSlot:  "bucket",
	Sample: func() []datatable.Record {
		g := newGenerator(303)
		out := make([]datatable.Record, 0, 58)
		for i := 0; i < 58; i++ {
			first, last := g.person()
			due := sampleAsOf.AddDate(0, 0, -g.between(1, 150))
			dpd := util.DaysPastDue(due, sampleAsOf)
			status := "overdue"
			if dpd > 90 {
				status = "npa"
			}
			out = append(out, datatable.Record{
				"id":                    g.id(),
				"loan_id":               fmt.Sprintf("LN%06d", 200000+g.between(1, 9999)),
				"client_name":           first + " " + last,
				"branch":                g.pick(branchNames),
				"due_date":              due,
				"dpd":                   dpd,
				"bucket":                overdueBucket(dpd),
				"overdue_amount":        g.amount(500, 18000, 50),
				"principal_outstanding": g.amount(5000, 60000, 100),
				"status":                status,
			})
		}
		return out
	},
}

var branchDayClose = Screen{
	Name:     "branch-day-close",
	Title:    "Branch Day Close",
	Group:    GroupReport,
	ReadOnly: true,
	Columns: []datatable.Column{
		{Key: "branch", Label: "Branch", Sortable: true},
		{Key: "business_date", Label: "Business Date", Sortable: true, Render: renderDate},
		{Key: "collections", Label: "Collections", Sortable: true, Render: renderINR},
		{Key: "disbursements", Label: "Disbursements", Sortable: true, Render: renderINR},
		{Key: "cash_in_hand", Label: "Cash in Hand", Sortable: true, Render: renderINR},
		{Key: "closed_by", Label: "Closed By"},
		{Key: "status", Label: "Status", Sortable: true, Render: renderStatus},
	},
	DefaultSort: "business_date",
	Sample: func() []datatable.Record {
		g := newGenerator(304)
		out := make([]datatable.Record, 0, len(branchNames)*7)
		for d := 0; d < 7; d++ {
			date := sampleAsOf.AddDate(0, 0, -d)
			for _, branch := range branchNames {
				status, closedBy := "closed", any(nil)
				if d == 0 && g.rnd.Intn(3) == 0 {
					status = "open"
				} else {
					first, last := g.person()
					closedBy = first + " " + last
				}
				out = append(out, datatable.Record{
					"id":            g.id(),
					"branch":        branch,
					"business_date": date,
					"collections":   g.amount(40000, 400000, 10),
					"disbursements": g.amount(0, 600000, 1000),
					"cash_in_hand":  g.amount(2000, 50000, 10),
					"closed_by":     closedBy,
					"status":        status,
				})
			}
		}
		return out
	},
}
