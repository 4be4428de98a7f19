package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/krisalay/pagesim/render"
	"github.com/krisalay/pagesim/types"
)

var hundred = decimal.NewFromInt(100)

// Ranked is one entry of a comparison.
type Ranked struct {
	Result types.RunResult

	// Best is true for every run with the minimum fault count.
	Best bool

	// Efficiency is minFaults / Faults: 1 for the best runs, below 1 otherwise.
	Efficiency decimal.Decimal
}

// EfficiencyLabel renders Efficiency for tables: "Best" or a percentage with one decimal.
func (r Ranked) EfficiencyLabel() string {
	if r.Best {
		return "Best"
	}
	return r.Efficiency.Mul(hundred).StringFixed(1) + "%"
}

// Comparison holds several runs over the same reference string, fewest faults first.
type Comparison struct {
	Results   []Ranked
	MinFaults int
}

/*
Rank orders results by fault count, ascending. Equal fault counts keep their
input order. Every result with the minimum count is labeled best; the others get
efficiency = minFaults / faults.
*/
func Rank(results []types.RunResult) Comparison {
	if len(results) == 0 {
		return Comparison{}
	}

	ranked := make([]Ranked, len(results))
	for i, res := range results {
		ranked[i] = Ranked{Result: res}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.Faults < ranked[j].Result.Faults
	})

	minFaults := ranked[0].Result.Faults
	for i := range ranked {
		faults := ranked[i].Result.Faults
		ranked[i].Best = faults == minFaults
		if ranked[i].Best {
			ranked[i].Efficiency = decimal.NewFromInt(1)
			continue
		}
		// faults > minFaults >= 0, so never a division by zero
		ranked[i].Efficiency = decimal.NewFromInt(int64(minFaults)).Div(decimal.NewFromInt(int64(faults)))
	}
	return Comparison{Results: ranked, MinFaults: minFaults}
}

// Best returns the best-ranked run.
func (c Comparison) Best() (types.RunResult, bool) {
	if len(c.Results) == 0 {
		return types.RunResult{}, false
	}
	return c.Results[0].Result, true
}

// Find returns the run of the named policy.
func (c Comparison) Find(policy string) (Ranked, bool) {
	for _, r := range c.Results {
		if r.Result.Policy == policy {
			return r, true
		}
	}
	return Ranked{}, false
}

// Runs returns the run results in ranked order.
func (c Comparison) Runs() []types.RunResult {
	out := make([]types.RunResult, len(c.Results))
	for i, r := range c.Results {
		out[i] = r.Result
	}
	return out
}

// Rows converts the comparison into table rows for the presentation layer.
func (c Comparison) Rows() []render.ComparisonRow {
	rows := make([]render.ComparisonRow, len(c.Results))
	for i, r := range c.Results {
		rows[i] = render.ComparisonRow{
			Policy:     r.Result.Policy,
			Faults:     r.Result.Faults,
			Efficiency: r.EfficiencyLabel(),
			Best:       r.Best,
		}
	}
	return rows
}
