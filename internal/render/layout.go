package render

import (
	"fmt"
	"image"
	"strings"

	"labelpress/internal"
)

// Type scale shared by both label sizes, in points.
const (
	sizeFontPt  = 10
	typeFontPt  = 10
	metaFontPt  = 4
	frontFontPt = 6
	countFontPt = 8
	binFontPt   = 10

	// Thermal printhead density used to size raster codes.
	codeDPI = 203
)

// Geometry fixes the page dimensions and layout proportions for one
// label stock size.
type Geometry struct {
	Width  float64
	Height float64
	Margin float64
	// Edge of the square code zones, points. 0.3825in at 72dpi.
	CodeSize float64
	// Share of the page width reserved for the title block.
	TitleZone   float64
	TitleLines  int
	TitleFontPt float64
	// Wide stock has room for a linear order code instead of a matrix.
	LinearOrder bool
}

func CompactGeometry() Geometry {
	return Geometry{
		Width:       144,
		Height:      72,
		Margin:      5,
		CodeSize:    27.54,
		TitleZone:   0.7,
		TitleLines:  2,
		TitleFontPt: 4,
	}
}

func WideGeometry() Geometry {
	return Geometry{
		Width:       216,
		Height:      72,
		Margin:      5,
		CodeSize:    27.54,
		TitleZone:   0.75,
		TitleLines:  3,
		TitleFontPt: 5,
		LinearOrder: true,
	}
}

// GeometryFor maps a label size name to its geometry. Anything other
// than "3x1" falls back to the compact stock.
func GeometryFor(labelSize string) Geometry {
	if labelSize == "3x1" {
		return WideGeometry()
	}
	return CompactGeometry()
}

func (g Geometry) codePixels() int {
	return int(g.CodeSize * codeDPI / 72.0)
}

// orderCodeBox is the placement box of the order code in points.
func (g Geometry) orderCodeBox() (w, h float64) {
	if g.LinearOrder {
		return g.CodeSize * 2, g.CodeSize * 0.55
	}
	return g.CodeSize, g.CodeSize
}

// PageAssets carries the raster artwork for one label. Nil fields leave
// their zone blank.
type PageAssets struct {
	ProductCode image.Image
	OrderCode   image.Image
}

// LabelPage lays out one label onto a fresh page.
type LabelPage interface {
	Draw(c Canvas, row internal.NormalizedRow, assets PageAssets)
}

// BasicPage is the layout for the four-column schema: size centered on
// top, wrapped title on the left, the item code vertically centered on
// the right.
type BasicPage struct {
	Geo Geometry
}

func (p BasicPage) Draw(c Canvas, row internal.NormalizedRow, assets PageAssets) {
	g := p.Geo
	c.AddPage(g.Width, g.Height)

	c.SetFont(sizeFontPt, true)
	c.Text((g.Width-c.TextWidth(row.Size))/2, g.Margin+sizeFontPt, row.Size)

	c.SetFont(g.TitleFontPt, false)
	maxWidth := g.Width*g.TitleZone - 2*g.Margin
	y := g.Margin + sizeFontPt + g.Margin + g.TitleFontPt
	for _, line := range wrapText(c, row.Title, maxWidth, g.TitleLines) {
		c.Text(g.Margin, y, line)
		y += g.TitleFontPt + 2
	}

	if assets.ProductCode != nil {
		c.Image(assets.ProductCode, g.Width-g.CodeSize-g.Margin, (g.Height-g.CodeSize)/2, g.CodeSize, g.CodeSize)
	}
}

// ExtendedPage is the order-aware layout: type and size on the top
// line, title block beneath, item code top-right with a FRONT caption,
// order code bottom-left, order metadata and picking annotations along
// the bottom.
type ExtendedPage struct {
	Geo Geometry
}

func (p ExtendedPage) Draw(c Canvas, row internal.NormalizedRow, assets PageAssets) {
	g := p.Geo
	c.AddPage(g.Width, g.Height)
	topY := g.Margin + typeFontPt

	// The product type yields space to the size on the shared top line
	// but never shrinks below three characters.
	c.SetFont(sizeFontPt, true)
	sizeWidth := c.TextWidth(row.Size)
	c.SetFont(typeFontPt, true)
	productType := truncateToFit(c, row.ProductType, g.Width-2*g.Margin-sizeWidth-8, 3)
	c.Text(g.Margin, topY, productType)
	typeWidth := c.TextWidth(productType)

	c.SetFont(sizeFontPt, true)
	c.Text(g.Margin+typeWidth+8, topY, row.Size)

	c.SetFont(g.TitleFontPt, true)
	titleWidth := g.Width*g.TitleZone - 2*g.Margin
	if row.OrderNumber != "" {
		// Keep clear of the order code column.
		titleWidth -= 20
	}
	y := topY + g.Margin + g.TitleFontPt
	for _, line := range wrapText(c, row.Title, titleWidth, g.TitleLines) {
		c.Text(g.Margin, y, line)
		y += g.TitleFontPt + 2
	}

	codeX := g.Width - g.CodeSize - g.Margin
	if assets.ProductCode != nil {
		c.Image(assets.ProductCode, codeX, g.Margin, g.CodeSize, g.CodeSize)
		c.SetFont(frontFontPt, true)
		c.Text(codeX+(g.CodeSize-c.TextWidth("FRONT"))/2, g.Margin+g.CodeSize+frontFontPt, "FRONT")
	}

	orderW, orderH := g.orderCodeBox()
	if assets.OrderCode != nil {
		c.Image(assets.OrderCode, g.Margin, g.Height-g.Margin-orderH, orderW, orderH)
	}

	c.SetFont(metaFontPt, true)
	metaMax := g.Width - 2*g.Margin
	metaY := g.Height - g.Margin - orderH - 2
	if line := metaLine(c, metaMax, "Store", row.StoreName, "Ship", row.ShipDate); line != "" {
		c.Text(g.Margin, metaY, line)
	}
	if line := metaLine(c, metaMax, "Order", row.OrderNumber, "SKU", row.SKU); line != "" {
		c.Text(g.Margin, metaY-(metaFontPt+2), line)
	}

	// The count annotation appears on every annotated row, "1 of 1"
	// included; only the bin line below is reserved for multi-item orders.
	if row.ItemIndex > 0 {
		c.SetFont(countFontPt, true)
		count := fmt.Sprintf("%d of %d", row.ItemIndex, row.OrderItems)
		c.Text(g.Width-c.TextWidth(count)-g.Margin, g.Height-g.Margin-2, count)
	}

	if row.HasBin() {
		c.SetFont(binFontPt, true)
		bin := row.BinOverflow
		if bin == "" {
			bin = fmt.Sprintf("BIN %d", row.BinNumber)
		}
		c.Text(g.Width-c.TextWidth(bin)-g.Margin, g.Height-g.Margin-14, bin)
	}
}

// wrapText greedily fills lines measured in the current canvas font. A
// single word that cannot fit on a line of its own is kept whole,
// trimmed to at most 20 characters.
func wrapText(c Canvas, text string, maxWidth float64, maxLines int) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if c.TextWidth(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current == "" {
			if len(word) > 20 {
				word = word[:20] + "..."
			}
			current = word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// metaLine joins label/value pairs, keeping only the pairs that carry a
// value. An all-empty line comes back "" so the caller can skip it.
func metaLine(c Canvas, maxWidth float64, pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			parts = append(parts, pairs[i]+": "+pairs[i+1])
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return truncateToFit(c, strings.Join(parts, " | "), maxWidth, 0)
}

// truncateToFit drops trailing characters until the text fits the
// width, never going below minLen characters.
func truncateToFit(c Canvas, text string, maxWidth float64, minLen int) string {
	for c.TextWidth(text) > maxWidth && len(text) > minLen {
		text = text[:len(text)-1]
	}
	return text
}
