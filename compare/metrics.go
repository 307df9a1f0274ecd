package compare

import (
	"sort"
)

// AggregateMetrics holds the corpus level comparison statistics.  A fresh
// value is computed wholesale after each comparison run and swapped into
// place, it is never patched incrementally
type AggregateMetrics struct {
	TotalImages  int     `json:"total_images"`
	TotalMachine int     `json:"total_machine"`
	TotalHuman   int     `json:"total_human"`
	Matches      int     `json:"matches"`
	Mismatches   int     `json:"mismatches"`
	Missing      int     `json:"missing"`
	Extra        int     `json:"extra"`
	Precision    float64 `json:"precision"`
	Recall       float64 `json:"recall"`
	F1           float64 `json:"f1_score"`
}

// CategoryMetrics is the per category breakdown of the same quality
// formulas, restricted to annotations sharing a category id
type CategoryMetrics struct {
	CategoryID   int     `json:"category_id"`
	TotalMachine int     `json:"total_machine"`
	TotalHuman   int     `json:"total_human"`
	Matches      int     `json:"matches"`
	Precision    float64 `json:"precision"`
	Recall       float64 `json:"recall"`
	F1           float64 `json:"f1_score"`
}

// Aggregate folds all per image matching results plus the corpus totals
// into an AggregateMetrics.  Division by zero is defined away, every
// derived metric is 0 when its denominator is 0
func Aggregate(resultsByImage map[int][]Result, totalImages, totalMachine,
	totalHuman int) AggregateMetrics {

	m := AggregateMetrics{
		TotalImages:  totalImages,
		TotalMachine: totalMachine,
		TotalHuman:   totalHuman,
	}

	for _, results := range resultsByImage {
		for _, r := range results {
			switch r.Status {
			case StatusMatch:
				m.Matches++
			case StatusMismatch:
				m.Mismatches++
			case StatusMissing:
				m.Missing++
			case StatusExtra:
				m.Extra++
			}
		}
	}

	m.Precision = safeDiv(float64(m.Matches), float64(m.TotalMachine))
	m.Recall = safeDiv(float64(m.Matches), float64(m.TotalHuman))
	m.F1 = f1Score(m.Precision, m.Recall)

	return m
}

// AggregateByCategory computes the per category breakdown over all
// results, sorted by category id for stable reporting.  An unpaired
// annotation counts against the totals of its own category, a mismatched
// pair counts against the machine side's category for precision and the
// human side's for recall
func AggregateByCategory(resultsByImage map[int][]Result) []CategoryMetrics {

	byCat := make(map[int]*CategoryMetrics)

	get := func(catID int) *CategoryMetrics {
		cm, ok := byCat[catID]
		if !ok {
			cm = &CategoryMetrics{CategoryID: catID}
			byCat[catID] = cm
		}
		return cm
	}

	for _, results := range resultsByImage {
		for _, r := range results {

			if r.Machine != nil {
				get(r.Machine.CategoryID).TotalMachine++
			}

			if r.Human != nil {
				get(r.Human.CategoryID).TotalHuman++
			}

			if r.Status == StatusMatch {
				get(r.Machine.CategoryID).Matches++
			}
		}
	}

	out := make([]CategoryMetrics, 0, len(byCat))

	for _, cm := range byCat {
		cm.Precision = safeDiv(float64(cm.Matches), float64(cm.TotalMachine))
		cm.Recall = safeDiv(float64(cm.Matches), float64(cm.TotalHuman))
		cm.F1 = f1Score(cm.Precision, cm.Recall)
		out = append(out, *cm)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CategoryID < out[j].CategoryID
	})

	return out
}

// safeDiv returns a/b, or 0 when b is 0
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// f1Score is the harmonic mean of precision and recall, 0 when both are 0
func f1Score(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}
