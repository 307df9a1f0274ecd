package render

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	// LabelChipHeight is the height of a label background chip in
	// viewport pixels
	LabelChipHeight = 20.0

	// labelPad is the horizontal padding added around label text
	labelPad = 8.0
)

// labelFace is the face used to measure label text.  Measuring with a
// fixed bitmap face keeps the overlay renderer independent of the drawing
// surface, rasterizers are free to substitute their own font as long as it
// is of similar width
var labelFace font.Face = basicfont.Face7x13

// TextWidth returns the pixel width of label text under the measuring face
func TextWidth(text string) float64 {
	return float64(font.MeasureString(labelFace, text).Ceil())
}
