package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Font defines the parameters for rasterizing label text with GoCV
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
}

// DefaultFont returns the default label font settings
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     White,
		Thickness: 1,
		LineType:  gocv.LineAA,
	}
}

// Draw rasterizes a primitive list onto the image.  Boxes and polygons are
// drawn first and label chips in a second pass so labels stay the top most
// layer and don't get overlapped by geometry
func Draw(img *gocv.Mat, prims []Primitive, font Font, lineThickness int) {

	var labels []Primitive

	for _, p := range prims {

		switch p.Kind {

		case KindBox:
			gocv.Rectangle(img, rectToImage(p.Rect), p.Stroke, lineThickness)

		case KindPolygon:
			drawPolygon(img, p, lineThickness)

		case KindLabelChip:
			labels = append(labels, p)
		}
	}

	for _, p := range labels {
		drawLabelChip(img, p, font)
	}
}

// drawPolygon strokes the polygon outline and blends a translucent fill
// over the underlying pixels
func drawPolygon(img *gocv.Mat, p Primitive, lineThickness int) {

	points := make([]image.Point, 0, len(p.Points))

	for _, v := range p.Points {
		points = append(points, image.Pt(int(v.X), int(v.Y)))
	}

	if len(points) < 3 {
		return
	}

	pts := gocv.NewPointsVectorFromPoints([][]image.Point{points})
	defer pts.Close()

	// blend the fill, gocv ignores the color's alpha channel so the
	// translucency is applied by weighting a filled copy of the image
	if p.Fill.A > 0 {

		alpha := float64(p.Fill.A) / 255.0

		filled := img.Clone()
		defer filled.Close()

		gocv.FillPoly(&filled, pts, p.Fill)
		gocv.AddWeighted(filled, alpha, *img, 1-alpha, 0, img)
	}

	gocv.Polylines(img, pts, true, p.Stroke, lineThickness)
}

// drawLabelChip fills the chip rectangle and centers the label text on it
func drawLabelChip(img *gocv.Mat, p Primitive, font Font) {

	rect := rectToImage(p.Rect)

	gocv.Rectangle(img, rect, p.Fill, -1)

	textSize := gocv.GetTextSize(p.Text, font.Face, font.Scale, font.Thickness)

	textPos := image.Pt(
		rect.Min.X+(rect.Dx()-textSize.X)/2,
		rect.Min.Y+(rect.Dy()+textSize.Y)/2,
	)

	gocv.PutTextWithParams(img, p.Text, textPos, font.Face, font.Scale,
		font.Color, font.Thickness, font.LineType, false)
}

// rectToImage converts a viewport rect to integral image coordinates
func rectToImage(r Rect) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
}
