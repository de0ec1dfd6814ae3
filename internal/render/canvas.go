// Package render typesets normalized rows into a paginated label
// document. All drawing goes through the Canvas contract so the layout
// logic stays independent of the PDF backend.
package render

import "image"

// Canvas is the drawing surface the layout engine works against.
// Coordinates are PDF points with the origin at the top-left of the
// current page; Text y is the baseline.
type Canvas interface {
	AddPage(width, height float64)
	SetFont(sizePt float64, bold bool)
	// TextWidth measures text in the current font; wrapping and
	// truncation decisions depend on it.
	TextWidth(text string) float64
	Text(x, y float64, text string)
	Image(img image.Image, x, y, width, height float64)
}

// DocumentWriter is a Canvas that can serialize the accumulated pages.
type DocumentWriter interface {
	Canvas
	Output() ([]byte, error)
}
