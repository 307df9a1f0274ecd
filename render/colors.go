package render

import "image/color"

var (
	// MachineColor is the fixed stroke color for machine annotations
	MachineColor = color.RGBA{R: 255, G: 50, B: 50, A: 200}

	// HumanColor is the fixed stroke color for human annotations
	HumanColor = color.RGBA{R: 50, G: 200, B: 50, A: 200}

	// Background is the canvas color behind the image
	Background = color.RGBA{R: 30, G: 30, B: 40, A: 255}

	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// polygonFillAlpha is the transparency of segmentation polygon fills
const polygonFillAlpha = 80

// fillColor derives the translucent polygon fill from a stroke color
func fillColor(c color.RGBA) color.RGBA {
	c.A = polygonFillAlpha
	return c
}
