package screens

import (
	"fmt"

	"github.com/ledgerline/mfin/internal/datatable"
)

var areas = Screen{
	Name:  "areas",
	Title: "Areas",
	Group: GroupMaster,
	Columns: []datatable.Column{
		{Key: "area_code", Label: "Area Code", Sortable: true},
		{Key: "area_name", Label: "Area Name", Sortable: true},
		{Key: "branch", Label: "Branch", Sortable: true},
		{Key: "district", Label: "District", Sortable: true},
		{Key: "villages", Label: "Villages", Sortable: true},
		{Key: "status", Label: "Status", Render: renderStatus},
	},
	DefaultSort: "area_code",
	Sample: func() []datatable.Record {
		g := newGenerator(101)
		out := make([]datatable.Record, 0, 24)
		for i := 0; i < 24; i++ {
			branch := branchNames[i%len(branchNames)]
			out = append(out, datatable.Record{
				"id":        g.id(),
				"area_code": fmt.Sprintf("AR%03d", i+1),
				"area_name": fmt.Sprintf("%s %s", branch, []string{"North", "South", "East"}[i/len(branchNames)]),
				"branch":    branch,
				"district":  branch,
				"villages":  g.between(6, 22),
				"status":    g.weighted([]string{"active", "inactive"}, []int{9, 1}),
			})
		}
		return out
	},
}

var villages = Screen{
	Name:  "villages",
	Title: "Villages",
	Group: GroupMaster,
	Columns: []datatable.Column{
		{Key: "village_code", Label: "Village Code", Sortable: true},
		{Key: "village_name", Label: "Village", Sortable: true},
		{Key: "area_code", Label: "Area", Sortable: true},
		{Key: "pincode", Label: "Pincode", Sortable: true},
		{Key: "households", Label: "Households", Sortable: true},
		{Key: "distance_km", Label: "Distance (km)", Sortable: true},
		{Key: "status", Label: "Status", Render: renderStatus},
	},
	DefaultSort: "village_name",
	FilterSlot:  "area_code",
	Sample: func() []datatable.Record {
		g := newGenerator(102)
		out := make([]datatable.Record, 0, 54)
		for i := 0; i < 54; i++ {
			out = append(out, datatable.Record{
				"id":           g.id(),
				"village_code": fmt.Sprintf("VL%04d", i+1),
				"village_name": villageNames[i%len(villageNames)],
				"area_code":    fmt.Sprintf("AR%03d", g.between(1, 24)),
				"pincode":      fmt.Sprintf("2%02d%03d", g.between(41, 62), g.between(1, 400)),
				"households":   g.between(80, 1400),
				"distance_km":  float64(g.between(15, 480)) / 10,
				"status":       g.weighted([]string{"active", "inactive"}, []int{12, 1}),
			})
		}
		return out
	},
}

var clients = Screen{
	Name:  "clients",
	Title: "Clients",
	Group: GroupMaster,
	Columns: []datatable.Column{
		{Key: "client_code", Label: "Client ID", Sortable: true},
		{Key: "name", Label: "Name", Accessor: func(r datatable.Record) any {
			return fmt.Sprintf("%s %s", datatable.Stringify(r["first_name"]), datatable.Stringify(r["last_name"]))
		}},
		{Key: "village", Label: "Village", Sortable: true},
		{Key: "branch", Label: "Branch", Sortable: true},
		{Key: "mobile", Label: "Mobile"},
		{Key: "loan_cycle", Label: "Cycle", Sortable: true},
		{Key: "joined_on", Label: "Joined On", Sortable: true, Render: renderDate},
		{Key: "kyc_status", Label: "KYC", Sortable: true, Render: renderStatus},
	},
	DefaultSort: "client_code",
	FilterSlot:  "branch",
	Sample: func() []datatable.Record {
		g := newGenerator(103)
		out := make([]datatable.Record, 0, 137)
		for i := 0; i < 137; i++ {
			first, last := g.person()
			out = append(out, datatable.Record{
				"id":          g.id(),
				"client_code": fmt.Sprintf("CL%05d", 10001+i),
				"first_name":  first,
				"last_name":   last,
				"village":     g.pick(villageNames),
				"branch":      g.pick(branchNames),
				"mobile":      g.phone(),
				"loan_cycle":  g.between(1, 5),
				"joined_on":   g.day(360).AddDate(-2, 0, 0),
				"kyc_status":  g.weighted([]string{"approved", "pending", "rejected"}, []int{14, 4, 1}),
			})
		}
		return out
	},
}

var products = Screen{
	Name:  "products",
	Title: "Loan Products",
	Group: GroupMaster,
	Columns: []datatable.Column{
		{Key: "product_code", Label: "Code", Sortable: true},
		{Key: "product_name", Label: "Product", Sortable: true},
		{Key: "interest_rate", Label: "Interest", Sortable: true, Render: renderPercent},
		{Key: "tenure_months", Label: "Tenure (months)", Sortable: true},
		{Key: "repayment", Label: "Repayment", Sortable: true},
		{Key: "min_amount", Label: "Min Amount", Sortable: true, Render: renderINR},
		{Key: "max_amount", Label: "Max Amount", Sortable: true, Render: renderINR},
		{Key: "status", Label: "Status", Render: renderStatus},
	},
	DefaultSort: "product_code",
	Sample: func() []datatable.Record {
		names := []string{
			"Income Generation Loan", "Livestock Loan", "Kisan Crop Loan", "Education Loan",
			"Sanitation Loan", "Solar Lamp Loan", "Emergency Loan", "Housing Repair Loan",
			"Dairy Loan", "Kirana Shop Loan", "Tailoring Loan", "Festival Loan",
		}
		g := newGenerator(104)
		out := make([]datatable.Record, 0, len(names))
		for i, name := range names {
			lo := g.amount(5000, 20000, 5000)
			out = append(out, datatable.Record{
				"id":            g.id(),
				"product_code":  fmt.Sprintf("PR%02d", i+1),
				"product_name":  name,
				"interest_rate": float64(g.between(180, 260)) / 10,
				"tenure_months": []int{12, 18, 24, 36}[g.between(0, 3)],
				"repayment":     g.pick([]string{"Weekly", "Fortnightly", "Monthly"}),
				"min_amount":    lo,
				"max_amount":    lo + g.amount(20000, 130000, 10000),
				"status":        g.weighted([]string{"active", "inactive"}, []int{5, 1}),
			})
		}
		return out
	},
}

var districts = Screen{
	Name:  "districts",
	Title: "Districts",
	Group: GroupMaster,
	Columns: []datatable.Column{
		{Key: "district_code", Label: "Code", Sortable: true},
		{Key: "district_name", Label: "District", Sortable: true},
		{Key: "state", Label: "State", Sortable: true},
		{Key: "branches", Label: "Branches", Sortable: true},
		{Key: "opened_on", Label: "Operations Since", Sortable: true, Render: renderDate},
		{Key: "status", Label: "Status", Render: renderStatus},
	},
	DefaultSort: "district_name",
	Sample: func() []datatable.Record {
		names := append(append([]string{}, branchNames...),
			"Gorakhpur", "Basti", "Gaya", "Muzaffarpur", "Darbhanga", "Rewa", "Satna", "Sagar")
		g := newGenerator(105)
		out := make([]datatable.Record, 0, len(names))
		for i, name := range names {
			st := states[0]
			switch {
			case i >= 13:
				st = states[2]
			case i >= 10:
				st = states[1]
			}
			out = append(out, datatable.Record{
				"id":            g.id(),
				"district_code": fmt.Sprintf("%s-%02d", st.code, i+1),
				"district_name": name,
				"state":         st.name,
				"branches":      g.between(1, 6),
				"opened_on":     g.day(300).AddDate(-6, 0, 0),
				"status":        "active",
			})
		}
		return out
	},
}

var insurance = Screen{
	Name:  "insurance",
	Title: "Insurance Products",
	Group: GroupMaster,
	Columns: []datatable.Column{
		{Key: "policy_code", Label: "Code", Sortable: true},
		{Key: "policy_name", Label: "Policy", Sortable: true},
		{Key: "insurer", Label: "Insurer", Sortable: true},
		{Key: "cover_type", Label: "Cover", Sortable: true},
		{Key: "premium_rate", Label: "Premium", Sortable: true, Render: renderPercent},
		{Key: "sum_assured", Label: "Sum Assured", Sortable: true, Render: renderINR},
		{Key: "status", Label: "Status", Render: renderStatus},
	},
	DefaultSort: "policy_code",
	Sample: func() []datatable.Record {
		insurers := []string{"LIC of India", "SBI Life", "HDFC Life", "Bajaj Allianz", "IFFCO Tokio"}
		covers := []string{"Credit Life", "Health", "Livestock", "Crop", "Personal Accident"}
		g := newGenerator(106)
		out := make([]datatable.Record, 0, 15)
		for i := 0; i < 15; i++ {
			cover := covers[i%len(covers)]
			insurer := insurers[g.between(0, len(insurers)-1)]
			out = append(out, datatable.Record{
				"id":           g.id(),
				"policy_code":  fmt.Sprintf("IN%03d", i+1),
				"policy_name":  fmt.Sprintf("%s %s", insurer, cover),
				"insurer":      insurer,
				"cover_type":   cover,
				"premium_rate": float64(g.between(5, 40)) / 10,
				"sum_assured":  g.amount(25000, 200000, 25000),
				"status":       g.weighted([]string{"active", "inactive"}, []int{4, 1}),
			})
		}
		return out
	},
}

var pincodes = Screen{
	Name:  "pincodes",
	Title: "Pincodes",
	Group: GroupMaster,
	Columns: []datatable.Column{
		{Key: "pincode", Label: "Pincode", Sortable: true},
		{Key: "post_office", Label: "Post Office", Sortable: true},
		{Key: "district", Label: "District", Sortable: true},
		{Key: "state", Label: "State", Sortable: true},
		{Key: "delivery", Label: "Delivery", Sortable: true},
	},
	DefaultSort: "pincode",
	Sample: func() []datatable.Record {
		g := newGenerator(107)
		out := make([]datatable.Record, 0, 40)
		for i := 0; i < 40; i++ {
			out = append(out, datatable.Record{
				"id":          g.id(),
				"pincode":     fmt.Sprintf("2%02d%03d", 41+i%22, g.between(1, 400)),
				"post_office": villageNames[i%len(villageNames)] + " B.O",
				"district":    g.pick(branchNames),
				"state":       states[0].name,
				"delivery":    g.weighted([]string{"Delivery", "Non-Delivery"}, []int{5, 1}),
			})
		}
		return out
	},
}

var ifsc = Screen{
	Name:  "ifsc",
	Title: "IFSC Codes",
	Group: GroupMaster,
	Columns: []datatable.Column{
		{Key: "ifsc", Label: "IFSC", Sortable: true},
		{Key: "bank", Label: "Bank", Sortable: true},
		{Key: "branch", Label: "Branch", Sortable: true},
		{Key: "city", Label: "City", Sortable: true},
		{Key: "micr", Label: "MICR"},
		{Key: "neft_enabled", Label: "NEFT"},
	},
	DefaultSort: "bank",
	Sample: func() []datatable.Record {
		g := newGenerator(108)
		out := make([]datatable.Record, 0, 36)
		for i := 0; i < 36; i++ {
			b := banks[i%len(banks)]
			city := g.pick(branchNames)
			out = append(out, datatable.Record{
				"id":           g.id(),
				"ifsc":         fmt.Sprintf("%s0%s", b.code, g.digits(6)),
				"bank":         b.name,
				"branch":       city + " Main",
				"city":         city,
				"micr":         "2" + g.digits(8),
				"neft_enabled": g.weighted([]string{"Yes", "No"}, []int{8, 1}),
			})
		}
		return out
	},
}

var purposes = Screen{
	Name:  "purposes",
	Title: "Loan Purposes",
	Group: GroupMaster,
	Columns: []datatable.Column{
		{Key: "purpose_code", Label: "Code", Sortable: true},
		{Key: "purpose", Label: "Purpose", Sortable: true},
		{Key: "category", Label: "Category", Sortable: true},
		{Key: "priority_sector", Label: "Priority Sector"},
		{Key: "status", Label: "Status", Render: renderStatus},
	},
	DefaultSort: "purpose_code",
	Sample: func() []datatable.Record {
		list := []struct{ purpose, category string }{
			{"Buffalo purchase", "Animal Husbandry"}, {"Goat rearing", "Animal Husbandry"},
			{"Poultry", "Animal Husbandry"}, {"Seeds and fertiliser", "Agriculture"},
			{"Irrigation pump", "Agriculture"}, {"Kirana stock", "Trading"},
			{"Vegetable vending", "Trading"}, {"Sewing machine", "Manufacturing"},
			{"Bangle making", "Manufacturing"}, {"Toilet construction", "Sanitation"},
			{"School fees", "Education"}, {"House repair", "Housing"},
			{"E-rickshaw", "Transport"}, {"Medical treatment", "Emergency"},
		}
		g := newGenerator(109)
		out := make([]datatable.Record, 0, len(list))
		for i, p := range list {
			priority := "Yes"
			if p.category == "Emergency" || p.category == "Housing" {
				priority = "No"
			}
			out = append(out, datatable.Record{
				"id":              g.id(),
				"purpose_code":    fmt.Sprintf("PU%02d", i+1),
				"purpose":         p.purpose,
				"category":        p.category,
				"priority_sector": priority,
				"status":          g.weighted([]string{"active", "inactive"}, []int{6, 1}),
			})
		}
		return out
	},
}
