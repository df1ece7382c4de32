package screens

import (
	"fmt"

	"github.com/ledgerline/mfin/internal/datatable"
)

var loanApplications = Screen{
	Name:  "loan-applications",
	Title: "Loan Applications",
	Group: GroupTransaction,
	Columns: []datatable.Column{
		{Key: "application_no", Label: "Application No", Sortable: true},
		{Key: "client_name", Label: "Client", Sortable: true},
		{Key: "branch", Label: "Branch", Sortable: true},
		{Key: "product", Label: "Product", Sortable: true},
		{Key: "purpose", Label: "Purpose", Sortable: true},
		{Key: "amount", Label: "Amount", Sortable: true, Render: renderINR},
		{Key: "applied_on", Label: "Applied On", Sortable: true, Render: renderDate},
		{Key: "status", Label: "Status", Sortable: true, Render: renderStatus},
	},
	DefaultSort: "applied_on",
	FilterSlot:  "status",
	Sample: func() []datatable.Record {
		productNames := []string{"Income Generation Loan", "Livestock Loan", "Kisan Crop Loan", "Dairy Loan", "Kirana Shop Loan"}
		purposeNames := []string{"Buffalo purchase", "Goat rearing", "Kirana stock", "Sewing machine", "Seeds and fertiliser"}
		g := newGenerator(201)
		out := make([]datatable.Record, 0, 83)
		for i := 0; i < 83; i++ {
			first, last := g.person()
			out = append(out, datatable.Record{
				"id":             g.id(),
				"application_no": fmt.Sprintf("LA/24-25/%05d", i+1),
				"client_code":    fmt.Sprintf("CL%05d", g.between(10001, 10137)),
				"client_name":    first + " " + last,
				"branch":         g.pick(branchNames),
				"product":        g.pick(productNames),
				"purpose":        g.pick(purposeNames),
				"amount":         g.amount(10000, 80000, 1000),
				"applied_on":     g.day(180),
				"status":         g.weighted([]string{"submitted", "in review", "approved", "rejected", "disbursed"}, []int{3, 3, 4, 1, 5}),
			})
		}
		return out
	},
}

var neftDisbursement = Screen{
	Name:  "neft-disbursement",
	Title: "NEFT Disbursement",
	Group: GroupTransaction,
	Columns: []datatable.Column{
		{Key: "batch_no", Label: "Batch", Sortable: true},
		{Key: "loan_id", Label: "Loan ID", Sortable: true},
		{Key: "beneficiary", Label: "Beneficiary", Sortable: true},
		{Key: "account_no", Label: "Account No", Render: renderAccount},
		{Key: "ifsc", Label: "IFSC", Sortable: true},
		{Key: "amount", Label: "Amount", Sortable: true, Render: renderINR},
		{Key: "initiated_on", Label: "Initiated On", Sortable: true, Render: renderDate},
		{Key: "utr", Label: "UTR"},
		{Key: "status", Label: "Status", Sortable: true, Render: renderStatus},
	},
	DefaultSort: "initiated_on",
	Sample: func() []datatable.Record {
		g := newGenerator(202)
		out := make([]datatable.Record, 0, 61)
		for i := 0; i < 61; i++ {
			first, last := g.person()
			b := banks[g.between(0, len(banks)-1)]
			status := g.weighted([]string{"initiated", "success", "failed"}, []int{2, 8, 1})
			var utr any
			if status == "success" {
				utr = fmt.Sprintf("%sN%s", b.code, g.digits(12))
			}
			out = append(out, datatable.Record{
				"id":           g.id(),
				"batch_no":     fmt.Sprintf("NB%03d", i/10+1),
				"loan_id":      fmt.Sprintf("LN%06d", 200000+g.between(1, 9999)),
				"beneficiary":  first + " " + last,
				"account_no":   g.digits(g.between(11, 16)),
				"ifsc":         fmt.Sprintf("%s0%s", b.code, g.digits(6)),
				"amount":       g.amount(10000, 80000, 1000),
				"initiated_on": g.day(180),
				"utr":          utr,
				"status":       status,
			})
		}
		return out
	},
}

var productBranchMapping = Screen{
	Name:  "product-branch-mapping",
	Title: "Product Branch Mapping",
	Group: GroupTransaction,
	Columns: []datatable.Column{
		{Key: "branch", Label: "Branch", Sortable: true},
		{Key: "product_code", Label: "Product Code", Sortable: true},
		{Key: "product_name", Label: "Product", Sortable: true},
		{Key: "sanction_limit", Label: "Sanction Limit", Sortable: true, Render: renderINR},
		{Key: "effective_from", Label: "Effective From", Sortable: true, Render: renderDate},
		{Key: "status", Label: "Status", Render: renderStatus},
	},
	DefaultSort: "branch",
	FilterSlot:  "branch",
	Sample: func() []datatable.Record {
		mapped := []struct{ code, name string }{
			{"PR01", "Income Generation Loan"}, {"PR02", "Livestock Loan"},
			{"PR03", "Kisan Crop Loan"}, {"PR09", "Dairy Loan"},
		}
		g := newGenerator(203)
		out := make([]datatable.Record, 0, len(branchNames)*len(mapped))
		for _, branch := range branchNames {
			for _, p := range mapped {
				out = append(out, datatable.Record{
					"id":             g.id(),
					"branch":         branch,
					"product_code":   p.code,
					"product_name":   p.name,
					"sanction_limit": g.amount(500000, 5000000, 100000),
					"effective_from": g.day(90),
					"status":         g.weighted([]string{"active", "inactive"}, []int{7, 1}),
				})
			}
		}
		return out
	},
}
