// Package generator synthesizes a plausible submission sheet used when the
// live sheet is unavailable.
package generator

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"SurveyMonitor/internal/domain"
	"SurveyMonitor/internal/ports"
)

const (
	defaultRows     = 850
	window          = 60 * 24 * time.Hour
	timestampLayout = "1/2/2006, 15:04:05"
	centerLat       = 6.7756
	centerLon       = 3.3432
)

var (
	interviewers = []string{"INT001", "INT002", "INT003", "INT004", "INT005", "INT006", "INT007", "INT008", "INT009", "INT010", "INT011", "INT012"}
	lgas         = []string{"Abeokuta North", "Abeokuta South", "Ado-Odo/Ota", "Ewekoro", "Ifo", "Ijebu East", "Ijebu North", "Ijebu Ode", "Ikenne", "Imeko Afon"}
	statuses     = []string{"Approved", "Not Approved", "Pending"}
	paths        = []string{"Treatment", "Control"}
	ageGroups    = []string{"18-25", "26-35", "36-45", "46+"}
	genders      = []string{"Male", "Female"}
)

// Generator produces rows shaped like the survey sheet.
type Generator struct {
	rows int
	seed uint64
	now  func() time.Time
}

var _ ports.RowSource = (*Generator)(nil)

// New returns a generator of n rows. A zero seed draws a fresh dataset on every call.
func New(n int, seed uint64, now func() time.Time) *Generator {
	if n <= 0 {
		n = defaultRows
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rows: n, seed: seed, now: now}
}

// FetchRows never fails.
func (g *Generator) FetchRows(ctx context.Context) ([]domain.RawRow, error) {
	seed := g.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	now := g.now().UTC()

	rows := make([]domain.RawRow, 0, g.rows)
	for i := 0; i < g.rows; i++ {
		status := statuses[rng.IntN(100)%len(statuses)]
		flags := ""
		if status == "Not Approved" && rng.Float64() > 0.1 {
			flags = pickFlags(rng, rng.IntN(2)+1)
		}

		ts := now.Add(-time.Duration(rng.Float64() * float64(window)))
		gps := formatFloat(centerLat+(rng.Float64()-0.5)*2) + ", " + formatFloat(centerLon+(rng.Float64()-0.5)*2)

		rows = append(rows, domain.RawRowFromRecord(map[string]string{
			domain.ColumnID:            "SUB_" + strconv.Itoa(i+1),
			domain.ColumnTimestamp:     ts.Format(timestampLayout),
			domain.ColumnLGA:           lgas[i%len(lgas)],
			domain.ColumnState:         "Ogun",
			domain.ColumnInterviewerID: interviewers[i%len(interviewers)],
			domain.ColumnStatus:        status,
			domain.ColumnErrorFlags:    flags,
			domain.ColumnPath:          paths[i%len(paths)],
			domain.ColumnAgeGroup:      ageGroups[i%len(ageGroups)],
			domain.ColumnGender:        genders[i%len(genders)],
			domain.ColumnGPS:           gps,
		}))
	}

	return rows, nil
}

// pickFlags draws n flags and keeps the distinct ones in draw order.
func pickFlags(rng *rand.Rand, n int) string {
	seen := map[string]struct{}{}
	picked := make([]string, 0, n)
	for j := 0; j < n; j++ {
		flag := domain.ErrorTypes[rng.IntN(len(domain.ErrorTypes))]
		if _, ok := seen[flag]; ok {
			continue
		}
		seen[flag] = struct{}{}
		picked = append(picked, flag)
	}
	return strings.Join(picked, ", ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
