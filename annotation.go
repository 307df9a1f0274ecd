package annocmp

// Provenance identifies which source produced an annotation
type Provenance int

const (
	// Machine annotations are produced by an automated detector
	Machine Provenance = iota
	// Human annotations are the reference/ground truth set
	Human
)

// String returns the name of the provenance tag
func (p Provenance) String() string {
	switch p {
	case Machine:
		return "machine"
	case Human:
		return "human"
	}
	return "unknown"
}

// Box is an axis-aligned bounding box in image pixel coordinates
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Annotation is a single object annotation attached to an image.  It is
// treated as immutable once constructed, annotations are owned by the
// dataset that produced them and shared by reference
type Annotation struct {
	// ID is the annotation identifier from the source file
	ID int
	// ImageID is the identifier of the image the annotation belongs to
	ImageID int
	// CategoryID is the object class identifier
	CategoryID int
	// Box is the bounding box in image pixel units
	Box Box
	// Polygons is the segmentation as a list of flat x,y coordinate
	// sequences, normalized with NormalizeSegmentation at ingestion.
	// Nil when the annotation carries no segmentation
	Polygons [][]float64
	// Confidence is the detector score in [0,1], 1.0 for reference data
	Confidence float64
	// Provenance records which set the annotation came from
	Provenance Provenance
}

// HasSegmentation reports whether the annotation carries at least one
// usable segmentation polygon
func (a *Annotation) HasSegmentation() bool {
	return len(a.Polygons) > 0
}

// ImageRecord describes an image referenced by the annotation sets
type ImageRecord struct {
	// ID is the image identifier shared by both annotation sets
	ID int
	// FileName is the image file name as declared in the COCO file
	FileName string
	// Width and Height are the declared pixel dimensions, 0 if unknown
	Width  int
	Height int
	// Path is the resolved file system location, empty until resolved
	Path string
}

// NormalizeSegmentation validates a list of flat polygon coordinate
// sequences.  A trailing unpaired coordinate is dropped and polygons with
// fewer than 3 points are skipped.  Returns nil when nothing usable remains
func NormalizeSegmentation(polys [][]float64) [][]float64 {

	var out [][]float64

	for _, poly := range polys {

		// drop an odd trailing coordinate that cannot be paired
		if len(poly)%2 != 0 {
			poly = poly[:len(poly)-1]
		}

		// a polygon needs at least 3 points
		if len(poly) < 6 {
			continue
		}

		out = append(out, poly)
	}

	return out
}

// ByImage groups annotations by their image id preserving input order
// within each group
func ByImage(anns []*Annotation) map[int][]*Annotation {

	groups := make(map[int][]*Annotation)

	for _, ann := range anns {
		groups[ann.ImageID] = append(groups[ann.ImageID], ann)
	}

	return groups
}
