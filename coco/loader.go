// Package coco parses COCO format annotation files into the data model
// and resolves the image files they reference.
package coco

import (
	"encoding/json"
	"os"

	annocmp "github.com/annotools/go-annocmp"
	"github.com/pkg/errors"
)

// Dataset is one parsed annotation set plus the image and category tables
// declared alongside it
type Dataset struct {
	// Annotations in file order, all tagged with the set's provenance
	Annotations []*annocmp.Annotation
	// Images maps image id to its record
	Images map[int]*annocmp.ImageRecord
	// Categories maps category id to its name
	Categories map[int]string
}

// cocoFile mirrors the subset of the COCO schema the tool consumes
type cocoFile struct {
	Images      []cocoImage      `json:"images"`
	Annotations []cocoAnnotation `json:"annotations"`
	Categories  []cocoCategory   `json:"categories"`
}

type cocoImage struct {
	ID       int    `json:"id"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type cocoAnnotation struct {
	ID         int       `json:"id"`
	ImageID    int       `json:"image_id"`
	CategoryID int       `json:"category_id"`
	Bbox       []float64 `json:"bbox"`
	// Segmentation arrives either as a flat coordinate list or a list
	// of such lists, decoded leniently below
	Segmentation json.RawMessage `json:"segmentation"`
	Confidence   *float64        `json:"confidence"`
}

type cocoCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Load reads and parses a COCO JSON file, tagging every annotation with
// the given provenance
func Load(path string, prov annocmp.Provenance) (*Dataset, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, errors.Wrapf(err, "reading %s annotations", prov)
	}

	ds, err := Parse(data, prov)

	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	return ds, nil
}

// Parse decodes COCO JSON into a Dataset.  Missing fields take the same
// defaults the COCO tooling uses, a zero id, zero box and confidence 1.0
func Parse(data []byte, prov annocmp.Provenance) (*Dataset, error) {

	var file cocoFile

	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "decoding COCO JSON")
	}

	ds := &Dataset{
		Annotations: make([]*annocmp.Annotation, 0, len(file.Annotations)),
		Images:      make(map[int]*annocmp.ImageRecord, len(file.Images)),
		Categories:  make(map[int]string, len(file.Categories)),
	}

	for _, img := range file.Images {
		ds.Images[img.ID] = &annocmp.ImageRecord{
			ID:       img.ID,
			FileName: img.FileName,
			Width:    img.Width,
			Height:   img.Height,
		}
	}

	for _, cat := range file.Categories {
		ds.Categories[cat.ID] = cat.Name
	}

	for _, raw := range file.Annotations {

		ann := &annocmp.Annotation{
			ID:         raw.ID,
			ImageID:    raw.ImageID,
			CategoryID: raw.CategoryID,
			Box:        toBox(raw.Bbox),
			Polygons:   annocmp.NormalizeSegmentation(decodeSegmentation(raw.Segmentation)),
			Confidence: 1.0,
			Provenance: prov,
		}

		if raw.Confidence != nil {
			ann.Confidence = *raw.Confidence
		}

		ds.Annotations = append(ds.Annotations, ann)
	}

	return ds, nil
}

// toBox converts a COCO [x, y, width, height] array, anything malformed
// becomes the zero box which the geometry layer treats as zero area
func toBox(bbox []float64) annocmp.Box {

	if len(bbox) != 4 {
		return annocmp.Box{}
	}

	return annocmp.Box{X: bbox[0], Y: bbox[1], W: bbox[2], H: bbox[3]}
}

// decodeSegmentation accepts both segmentation encodings found in the
// wild, a list of polygons or a single flat polygon.  Anything else (RLE
// objects, nulls) yields nil and the annotation keeps only its box
func decodeSegmentation(raw json.RawMessage) [][]float64 {

	if len(raw) == 0 {
		return nil
	}

	var nested [][]float64

	if err := json.Unmarshal(raw, &nested); err == nil {
		return nested
	}

	var flat []float64

	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return [][]float64{flat}
	}

	return nil
}
