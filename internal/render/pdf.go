package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"
)

// PDFWriter renders pages through fpdf using point units so the layout
// constants map straight onto the page.
type PDFWriter struct {
	doc   *fpdf.Fpdf
	names map[image.Image]string
}

func NewPDFWriter() *PDFWriter {
	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: 144, Ht: 72},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	return &PDFWriter{doc: doc, names: map[image.Image]string{}}
}

func (w *PDFWriter) AddPage(width, height float64) {
	w.doc.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
}

func (w *PDFWriter) SetFont(sizePt float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	w.doc.SetFont("Helvetica", style, sizePt)
}

func (w *PDFWriter) TextWidth(text string) float64 {
	return w.doc.GetStringWidth(text)
}

func (w *PDFWriter) Text(x, y float64, text string) {
	w.doc.Text(x, y, text)
}

// Image registers each distinct image once; quantity repeats of the same
// label reuse the embedded resource.
func (w *PDFWriter) Image(img image.Image, x, y, width, height float64) {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	name, ok := w.names[img]
	if !ok {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			w.doc.SetError(fmt.Errorf("encode label image: %w", err))
			return
		}
		name = fmt.Sprintf("img%d", len(w.names)+1)
		w.doc.RegisterImageOptionsReader(name, opts, &buf)
		w.names[img] = name
	}
	w.doc.ImageOptions(name, x, y, width, height, false, opts, 0, "")
}

func (w *PDFWriter) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
