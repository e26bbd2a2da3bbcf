package book

// Stage is one of the five trial-balance stages of the bookkeeping
// cycle. The adjusted and post-close stages are derived, not posted.
type Stage int

const (
	StageUnadjusted Stage = iota
	StageAdjusting
	StageAdjusted
	StageClosing
	StagePostClose
)

// NumStages is the number of worksheet columns.
const NumStages = int(StagePostClose) + 1

// Stages lists all stages in worksheet column order.
var Stages = []Stage{StageUnadjusted, StageAdjusting, StageAdjusted, StageClosing, StagePostClose}

func (s Stage) String() string {
	switch s {
	case StageUnadjusted:
		return "Unadjusted"
	case StageAdjusting:
		return "Adjusting"
	case StageAdjusted:
		return "Adjusted"
	case StageClosing:
		return "Closing"
	case StagePostClose:
		return "Post-Close"
	}
	return "Unknown"
}

// Cell is one worksheet cell: an account's totals netted to a single
// side. At most one of Debit/Credit is non-zero; a zero cell renders
// blank, including the exactly-offsetting case.
type Cell struct {
	Debit  int64 `json:"debit"`
	Credit int64 `json:"credit"`
}

// Blank reports whether the cell shows nothing in either column.
func (c Cell) Blank() bool {
	return c.Debit == 0 && c.Credit == 0
}

// netCell nets totals onto the heavier side.
func netCell(t Totals) Cell {
	switch {
	case t.Debits > t.Credits:
		return Cell{Debit: t.Debits - t.Credits}
	case t.Credits > t.Debits:
		return Cell{Credit: t.Credits - t.Debits}
	default:
		return Cell{}
	}
}

// Row is one account's worksheet line across all five stages.
type Row struct {
	Account Account          `json:"account"`
	Cells   [NumStages]Cell  `json:"cells"`
}

// Worksheet is the per-account matrix over the five stages plus the
// per-stage column totals. Rows follow chart order and include every
// account touched by at least one posted entry.
type Worksheet struct {
	Rows   []Row             `json:"rows"`
	Totals [NumStages]Totals `json:"totals"`
}

// Balanced reports whether a stage's total debit-net equals its total
// credit-net. This holds for any stage built purely from individually
// balanced posted entries.
func (w *Worksheet) Balanced(stage Stage) bool {
	t := w.Totals[stage]
	return t.Debits == t.Credits
}

// BuildWorksheet partitions posted entries into the unadjusted,
// adjusting, and closing buckets, derives the adjusted and post-close
// stages by component-wise summation, and nets every account and stage
// to a single signed cell.
func BuildWorksheet(entries []PostedEntry, chart *Chart) *Worksheet {
	unadjusted := Aggregate(entries, func(e PostedEntry) bool { return !e.IsAdjusting && !e.IsClosing })
	adjusting := Aggregate(entries, func(e PostedEntry) bool { return e.IsAdjusting && !e.IsClosing })
	closing := Aggregate(entries, func(e PostedEntry) bool { return e.IsClosing })

	stages := [NumStages]map[int]Totals{
		StageUnadjusted: unadjusted,
		StageAdjusting:  adjusting,
		StageAdjusted:   sumAggregates(unadjusted, adjusting),
		StageClosing:    closing,
	}
	stages[StagePostClose] = sumAggregates(stages[StageAdjusted], closing)

	present := make(map[int]struct{})
	for _, aggregate := range stages {
		for number := range aggregate {
			present[number] = struct{}{}
		}
	}

	w := &Worksheet{}
	for _, account := range chart.Accounts() {
		if _, ok := present[account.Number]; !ok {
			continue
		}
		row := Row{Account: account}
		for _, stage := range Stages {
			cell := netCell(stages[stage][account.Number])
			row.Cells[stage] = cell
			w.Totals[stage].Debits += cell.Debit
			w.Totals[stage].Credits += cell.Credit
		}
		w.Rows = append(w.Rows, row)
	}
	return w
}

// sumAggregates merges two aggregates by component-wise addition.
func sumAggregates(a, b map[int]Totals) map[int]Totals {
	sum := make(map[int]Totals, len(a)+len(b))
	for number, t := range a {
		sum[number] = t
	}
	for number, t := range b {
		sum[number] = sum[number].Add(t)
	}
	return sum
}
