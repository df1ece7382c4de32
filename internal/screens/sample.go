package screens

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/ledgerline/mfin/internal/util"
)

// sampleEpoch is the start of the financial year the sample data covers.
var sampleEpoch = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

var (
	branchNames  = []string{"Rampur", "Sitapur", "Hardoi", "Barabanki", "Unnao", "Lakhimpur", "Bahraich", "Gonda"}
	villageNames = []string{
		"Akbarpur", "Bhagwanpur", "Chandpur", "Dhanaura", "Fatehpur", "Gangapur",
		"Hasanpur", "Jalalpur", "Kishanpur", "Lalganj", "Madhopur", "Naraini",
		"Pipri", "Rajpur", "Salempur", "Tilhar", "Umri", "Vishnupur",
	}
	firstNames = []string{
		"Sunita", "Rekha", "Kamla", "Anita", "Pushpa", "Geeta", "Savitri", "Meena",
		"Radha", "Shanti", "Lakshmi", "Usha", "Asha", "Poonam", "Kiran", "Sarita",
	}
	lastNames = []string{"Devi", "Yadav", "Verma", "Kumari", "Maurya", "Pal", "Singh", "Gupta", "Nishad", "Rawat"}
	states    = []struct{ code, name string }{
		{"UP", "Uttar Pradesh"}, {"BR", "Bihar"}, {"MP", "Madhya Pradesh"},
	}
	banks = []struct{ code, name string }{
		{"SBIN", "State Bank of India"}, {"PUNB", "Punjab National Bank"},
		{"BARB", "Bank of Baroda"}, {"CNRB", "Canara Bank"},
		{"UBIN", "Union Bank of India"}, {"BKID", "Bank of India"},
	}
)

// generator produces reproducible sample values. Every screen seeds its own
// generator so adding a screen never changes another screen's records.
type generator struct {
	rnd *rand.Rand
	ids *util.IDSequence
}

func newGenerator(seed int64) *generator {
	return &generator{
		rnd: rand.New(rand.NewSource(seed)),
		ids: util.NewIDSequence(seed, sampleEpoch.Add(10*time.Hour), 17*time.Minute),
	}
}

func (g *generator) id() string { return g.ids.Next() }

func (g *generator) pick(xs []string) string { return xs[g.rnd.Intn(len(xs))] }

// between returns an int in [lo, hi].
func (g *generator) between(lo, hi int) int { return lo + g.rnd.Intn(hi-lo+1) }

// amount returns a rupee amount in [lo, hi] rounded to step.
func (g *generator) amount(lo, hi, step int) float64 {
	return float64(g.between(lo/step, hi/step) * step)
}

// day returns a date within maxDays of the sample epoch.
func (g *generator) day(maxDays int) time.Time {
	return sampleEpoch.AddDate(0, 0, g.rnd.Intn(maxDays+1))
}

func (g *generator) digits(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(byte('0' + g.rnd.Intn(10)))
	}
	return sb.String()
}

func (g *generator) person() (string, string) {
	return g.pick(firstNames), g.pick(lastNames)
}

func (g *generator) phone() string {
	return fmt.Sprintf("%d%s", g.between(6, 9), g.digits(9))
}

// weighted picks from choices where each weight is the relative frequency.
func (g *generator) weighted(choices []string, weights []int) string {
	total := 0
	for _, w := range weights {
		total += w
	}
	n := g.rnd.Intn(total)
	for i, w := range weights {
		if n < w {
			return choices[i]
		}
		n -= w
	}
	return choices[len(choices)-1]
}
