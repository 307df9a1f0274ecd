package compare

import (
	annocmp "github.com/annotools/go-annocmp"
	"github.com/annotools/go-annocmp/geometry"
	"gonum.org/v1/gonum/mat"
)

// Match pairs machine annotations against human annotations for a single
// image.  Both lists must contain annotations of one shared image id,
// filtering is the caller's responsibility.
//
// Pairing is greedy by descending IoU: the globally best remaining pair is
// committed while its IoU stays at or above iouThreshold, then every
// unpaired human annotation becomes a Missing result and every unpaired
// machine annotation an Extra result.  Ties on IoU prefer the lower
// machine annotation id, then the lower human annotation id, so the
// output is deterministic.  Empty inputs are valid
func Match(machine, human []*annocmp.Annotation, iouThreshold float64) []Result {

	if iouThreshold <= 0 || iouThreshold > 1 {
		iouThreshold = DefaultIoUThreshold
	}

	results := make([]Result, 0, len(machine)+len(human))

	usedM := make([]bool, len(machine))
	usedH := make([]bool, len(human))

	if len(machine) > 0 && len(human) > 0 {

		cost := iouMatrix(machine, human)

		// Step 1: commit the globally best remaining pair until no
		// candidate reaches the threshold
		for {

			bestI, bestJ, bestIoU := -1, -1, 0.0

			for i := range machine {

				if usedM[i] {
					continue
				}

				for j := range human {

					if usedH[j] {
						continue
					}

					iou := cost.At(i, j)

					if betterPair(iou, machine[i].ID, human[j].ID,
						bestIoU, bestI, bestJ, machine, human) {
						bestI, bestJ, bestIoU = i, j, iou
					}
				}
			}

			if bestI < 0 || bestIoU < iouThreshold {
				break
			}

			usedM[bestI] = true
			usedH[bestJ] = true

			status := StatusMatch

			if machine[bestI].CategoryID != human[bestJ].CategoryID {
				status = StatusMismatch
			}

			results = append(results, Result{
				Machine: machine[bestI],
				Human:   human[bestJ],
				IoU:     bestIoU,
				Status:  status,
			})
		}
	}

	// Step 2: unpaired human annotations are missing from the machine set
	for j, h := range human {
		if !usedH[j] {
			results = append(results, Result{
				Human:  h,
				Status: StatusMissing,
			})
		}
	}

	// Step 3: unpaired machine annotations are extra detections
	for i, m := range machine {
		if !usedM[i] {
			results = append(results, Result{
				Machine: m,
				Status:  StatusExtra,
			})
		}
	}

	return results
}

// iouMatrix builds the dense machine x human cost matrix of effective IoU
// scores
func iouMatrix(machine, human []*annocmp.Annotation) *mat.Dense {

	cost := mat.NewDense(len(machine), len(human), nil)

	for i, m := range machine {
		for j, h := range human {
			cost.Set(i, j, geometry.EffectiveIoU(m, h))
		}
	}

	return cost
}

// betterPair reports whether the candidate pair beats the current best
// under the (IoU desc, machine id asc, human id asc) ordering
func betterPair(iou float64, mID, hID int, bestIoU float64, bestI, bestJ int,
	machine, human []*annocmp.Annotation) bool {

	if bestI < 0 {
		return iou > 0
	}

	if iou != bestIoU {
		return iou > bestIoU
	}

	bestMID := machine[bestI].ID
	bestHID := human[bestJ].ID

	if mID != bestMID {
		return mID < bestMID
	}

	return hID < bestHID
}
