package render

import (
	"fmt"
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/datamatrix"
)

// CodeRenderer produces the machine-readable codes a label carries for
// content other than the pre-rendered item image.
type CodeRenderer interface {
	Linear(text string, widthPx, heightPx int) (image.Image, error)
	Matrix(text string, sizePx int) (image.Image, error)
}

type barcodeRenderer struct{}

func NewCodeRenderer() CodeRenderer {
	return barcodeRenderer{}
}

func (barcodeRenderer) Linear(text string, widthPx, heightPx int) (image.Image, error) {
	code, err := code128.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("encode code128 %q: %w", text, err)
	}
	scaled, err := barcode.Scale(code, widthPx, heightPx)
	if err != nil {
		return nil, fmt.Errorf("scale code128: %w", err)
	}
	return scaled, nil
}

func (barcodeRenderer) Matrix(text string, sizePx int) (image.Image, error) {
	code, err := datamatrix.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("encode datamatrix %q: %w", text, err)
	}
	scaled, err := barcode.Scale(code, sizePx, sizePx)
	if err != nil {
		return nil, fmt.Errorf("scale datamatrix: %w", err)
	}
	return scaled, nil
}
