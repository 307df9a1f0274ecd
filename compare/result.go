// Package compare implements the annotation matching engine and the
// corpus-level quality metrics.  Machine annotations are paired against
// human reference annotations per image by greedy IoU assignment and the
// classified results are folded into precision/recall/F1 aggregates.
package compare

import (
	annocmp "github.com/annotools/go-annocmp"
)

// DefaultIoUThreshold is the minimum IoU for a machine/human pair to be
// accepted by the matcher
const DefaultIoUThreshold = 0.5

// Status classifies a single comparison result
type Status int

const (
	// StatusMatch is a pair with IoU at or above threshold and equal
	// category ids
	StatusMatch Status = iota
	// StatusMismatch is a pair whose IoU qualified but whose category
	// ids differ
	StatusMismatch
	// StatusMissing is a human annotation with no paired machine
	// annotation
	StatusMissing
	// StatusExtra is a machine annotation with no paired human
	// annotation
	StatusExtra
)

// String returns the name of the status
func (s Status) String() string {
	switch s {
	case StatusMatch:
		return "match"
	case StatusMismatch:
		return "mismatch"
	case StatusMissing:
		return "missing"
	case StatusExtra:
		return "extra"
	}
	return "unknown"
}

// Result pairs at most one machine annotation with at most one human
// annotation for the same image.  Results are created fresh on every
// comparison run and never mutated afterwards
type Result struct {
	// Machine is the machine side annotation, nil for StatusMissing
	Machine *annocmp.Annotation
	// Human is the human side annotation, nil for StatusExtra
	Human *annocmp.Annotation
	// IoU is the computed overlap score, 0 when unpaired
	IoU float64
	// Status is the classification of the pairing
	Status Status
}

// ImageID returns the image id both constituent annotations belong to
func (r *Result) ImageID() int {
	if r.Machine != nil {
		return r.Machine.ImageID
	}
	if r.Human != nil {
		return r.Human.ImageID
	}
	return 0
}
