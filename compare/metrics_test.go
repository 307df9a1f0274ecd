package compare

import (
	"math"
	"strings"
	"testing"

	annocmp "github.com/annotools/go-annocmp"
)

func TestAggregateZeroTotals(t *testing.T) {

	m := Aggregate(nil, 0, 0, 0)

	if m.Precision != 0 || m.Recall != 0 || m.F1 != 0 {
		t.Errorf("expected all metrics 0 for empty corpus, got %+v", m)
	}
}

func TestAggregateCounts(t *testing.T) {

	results := map[int][]Result{
		1: {
			{Status: StatusMatch},
			{Status: StatusMismatch},
			{Status: StatusMissing},
		},
		2: {
			{Status: StatusMatch},
			{Status: StatusExtra},
		},
	}

	m := Aggregate(results, 2, 4, 4)

	if m.Matches != 2 || m.Mismatches != 1 || m.Missing != 1 || m.Extra != 1 {
		t.Errorf("unexpected counts: %+v", m)
	}

	if math.Abs(m.Precision-0.5) > 1e-9 || math.Abs(m.Recall-0.5) > 1e-9 {
		t.Errorf("expected precision=recall=0.5, got %+v", m)
	}

	if math.Abs(m.F1-0.5) > 1e-9 {
		t.Errorf("expected f1 0.5, got %f", m.F1)
	}
}

func TestCompareEndToEnd(t *testing.T) {

	machine := []*annocmp.Annotation{
		ann(1, 1, 1, 0, 0, 10, 10, annocmp.Machine),
	}
	human := []*annocmp.Annotation{
		ann(1, 1, 1, 1, 1, 10, 10, annocmp.Human),
	}

	run := Compare(machine, human, 1, 0.5)

	if len(run.Results[1]) != 1 || run.Results[1][0].Status != StatusMatch {
		t.Fatalf("expected a single Match for image 1, got %v", run.Results)
	}

	m := run.Metrics

	if m.Precision != 1.0 || m.Recall != 1.0 || m.F1 != 1.0 {
		t.Errorf("expected perfect scores, got %+v", m)
	}
}

func TestCompareDisjointImages(t *testing.T) {

	// machine annotations on image 1 only, human on image 2 only
	machine := []*annocmp.Annotation{
		ann(1, 1, 1, 0, 0, 10, 10, annocmp.Machine),
	}
	human := []*annocmp.Annotation{
		ann(1, 2, 1, 0, 0, 10, 10, annocmp.Human),
	}

	run := Compare(machine, human, 2, 0.5)

	if len(run.Results) != 2 {
		t.Fatalf("expected results for both images, got %v", run.Results)
	}

	if run.Results[1][0].Status != StatusExtra ||
		run.Results[2][0].Status != StatusMissing {
		t.Errorf("expected Extra on image 1 and Missing on image 2")
	}
}

func TestAggregateByCategory(t *testing.T) {

	results := map[int][]Result{
		1: {
			{
				Machine: ann(1, 1, 1, 0, 0, 10, 10, annocmp.Machine),
				Human:   ann(1, 1, 1, 0, 0, 10, 10, annocmp.Human),
				IoU:     1.0,
				Status:  StatusMatch,
			},
			{
				Human:  ann(2, 1, 2, 20, 20, 10, 10, annocmp.Human),
				Status: StatusMissing,
			},
		},
	}

	cats := AggregateByCategory(results)

	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}

	// sorted by category id
	if cats[0].CategoryID != 1 || cats[1].CategoryID != 2 {
		t.Errorf("categories not sorted by id: %v", cats)
	}

	if cats[0].Precision != 1.0 || cats[0].Recall != 1.0 {
		t.Errorf("category 1 should be perfect, got %+v", cats[0])
	}

	if cats[1].TotalHuman != 1 || cats[1].Recall != 0 {
		t.Errorf("category 2 should be a miss, got %+v", cats[1])
	}
}

func TestQualityBands(t *testing.T) {

	cases := []struct {
		f1   float64
		want string
	}{
		{0.9, "excellent"},
		{0.7, "good"},
		{0.5, "satisfactory"},
		{0.1, "low"},
	}

	for _, c := range cases {
		m := AggregateMetrics{F1: c.f1}
		if !strings.Contains(m.QualityBand(), c.want) {
			t.Errorf("f1 %.1f: expected band containing %q, got %q",
				c.f1, c.want, m.QualityBand())
		}
	}
}

func TestWriteReport(t *testing.T) {

	machine := []*annocmp.Annotation{
		ann(1, 1, 1, 0, 0, 10, 10, annocmp.Machine),
	}
	human := []*annocmp.Annotation{
		ann(1, 1, 1, 0, 0, 10, 10, annocmp.Human),
	}

	run := Compare(machine, human, 1, 0.5)

	var sb strings.Builder

	if err := run.WriteReport(&sb); err != nil {
		t.Fatalf("unexpected error writing report: %v", err)
	}

	report := sb.String()

	for _, want := range []string{
		"Total Images:        1",
		"Matches:    1",
		"Precision: 1.000",
		"F1 Score:  1.000",
		"excellent",
		"Category 1:",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}
