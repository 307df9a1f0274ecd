package compare

import (
	"fmt"
	"io"
)

// QualityBand returns a plain language interpretation of the F1 score
func (m AggregateMetrics) QualityBand() string {
	switch {
	case m.F1 >= 0.8:
		return "excellent annotation quality"
	case m.F1 >= 0.6:
		return "good annotation quality"
	case m.F1 >= 0.4:
		return "satisfactory quality"
	default:
		return "low quality, needs improvement"
	}
}

// WriteReport writes the comparison statistics as a plain text report
func (r *Run) WriteReport(w io.Writer) error {

	m := r.Metrics

	_, err := fmt.Fprintf(w, `COCO Annotation Comparison Report
=================================

Data:
  Total Images:        %d
  Machine Annotations: %d
  Human Annotations:   %d

Comparison Results:
  Matches:    %d
  Mismatches: %d
  Missing:    %d
  Extra:      %d

Quality Metrics:
  Precision: %.3f
  Recall:    %.3f
  F1 Score:  %.3f

Assessment: %s
`,
		m.TotalImages, m.TotalMachine, m.TotalHuman,
		m.Matches, m.Mismatches, m.Missing, m.Extra,
		m.Precision, m.Recall, m.F1, m.QualityBand())

	if err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}

	if len(r.Categories) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\nPer Category:\n"); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}

	for _, c := range r.Categories {
		_, err := fmt.Fprintf(w,
			"  Category %d: machine=%d human=%d matches=%d precision=%.3f recall=%.3f f1=%.3f\n",
			c.CategoryID, c.TotalMachine, c.TotalHuman, c.Matches,
			c.Precision, c.Recall, c.F1)

		if err != nil {
			return fmt.Errorf("error writing report: %w", err)
		}
	}

	return nil
}
