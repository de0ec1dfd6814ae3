package render

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"labelpress/internal"
)

type drawOp struct {
	kind string
	text string
	x, y float64
	w, h float64
}

// fakeCanvas measures text at one point per character so layout
// decisions are deterministic in tests.
type fakeCanvas struct {
	pages int
	ops   []drawOp
}

func (f *fakeCanvas) AddPage(w, h float64) {
	f.pages++
	f.ops = append(f.ops, drawOp{kind: "page", w: w, h: h})
}

func (f *fakeCanvas) SetFont(sizePt float64, bold bool) {}

func (f *fakeCanvas) TextWidth(text string) float64 {
	return float64(len(text))
}

func (f *fakeCanvas) Text(x, y float64, text string) {
	f.ops = append(f.ops, drawOp{kind: "text", text: text, x: x, y: y})
}

func (f *fakeCanvas) Image(img image.Image, x, y, w, h float64) {
	f.ops = append(f.ops, drawOp{kind: "image", x: x, y: y, w: w, h: h})
}

func (f *fakeCanvas) Output() ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

func (f *fakeCanvas) texts() []string {
	var out []string
	for _, op := range f.ops {
		if op.kind == "text" {
			out = append(out, op.text)
		}
	}
	return out
}

func (f *fakeCanvas) countKind(kind string) int {
	n := 0
	for _, op := range f.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

func TestWrapText(t *testing.T) {
	c := &fakeCanvas{}
	tests := []struct {
		text     string
		maxWidth float64
		maxLines int
		want     []string
	}{
		{"short", 20, 2, []string{"short"}},
		{"two small words", 9, 3, []string{"two small", "words"}},
		{"one two three four", 7, 2, []string{"one two", "three"}},
		{"supercalifragilisticexpialidocious", 10, 2, []string{"supercalifragilistic..."}},
		{"", 10, 2, nil},
	}
	for _, tt := range tests {
		got := wrapText(c, tt.text, tt.maxWidth, tt.maxLines)
		if len(got) != len(tt.want) {
			t.Fatalf("wrap %q: got %v want %v", tt.text, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("wrap %q: got %v want %v", tt.text, got, tt.want)
			}
		}
	}
}

func TestTruncateToFit(t *testing.T) {
	c := &fakeCanvas{}
	if got := truncateToFit(c, "ABCDEFGH", 5, 3); got != "ABCDE" {
		t.Fatalf("got %q", got)
	}
	if got := truncateToFit(c, "ABCDEFGH", 1, 3); got != "ABC" {
		t.Fatalf("minimum not honored: %q", got)
	}
	if got := truncateToFit(c, "AB", 5, 3); got != "AB" {
		t.Fatalf("fitting text changed: %q", got)
	}
}

func TestGeometryFor(t *testing.T) {
	if g := GeometryFor("3x1"); g.Width != 216 || !g.LinearOrder {
		t.Fatalf("wide geometry: %+v", g)
	}
	if g := GeometryFor("2x1"); g.Width != 144 || g.LinearOrder {
		t.Fatalf("compact geometry: %+v", g)
	}
	if g := GeometryFor(""); g.Width != 144 {
		t.Fatalf("unknown size must fall back to compact: %+v", g)
	}
}

func TestBasicPageDraw(t *testing.T) {
	c := &fakeCanvas{}
	code := image.NewGray(image.Rect(0, 0, 10, 10))
	row := internal.NormalizedRow{
		ParsedItem: internal.ParsedItem{Title: "Red Mug", Size: "M"},
		Quantity:   1,
	}
	BasicPage{Geo: CompactGeometry()}.Draw(c, row, PageAssets{ProductCode: code})

	if c.pages != 1 {
		t.Fatalf("pages=%d", c.pages)
	}
	texts := c.texts()
	if texts[0] != "M" {
		t.Fatalf("size first, got %v", texts)
	}
	if c.countKind("image") != 1 {
		t.Fatal("item code missing")
	}
	// The size sits centered on the 144pt page.
	for _, op := range c.ops {
		if op.kind == "text" && op.text == "M" && op.x != (144-1)/2.0 {
			t.Fatalf("size x=%v", op.x)
		}
	}
}

func TestBasicPageBlankCodeZone(t *testing.T) {
	c := &fakeCanvas{}
	row := internal.NormalizedRow{
		ParsedItem: internal.ParsedItem{Title: "Red Mug", Size: "M"},
	}
	BasicPage{Geo: CompactGeometry()}.Draw(c, row, PageAssets{})
	if c.countKind("image") != 0 {
		t.Fatal("nil code must leave the zone blank")
	}
}

func TestExtendedPageDraw(t *testing.T) {
	c := &fakeCanvas{}
	code := image.NewGray(image.Rect(0, 0, 10, 10))
	order := image.NewGray(image.Rect(0, 0, 10, 10))
	row := internal.NormalizedRow{
		ParsedItem:  internal.ParsedItem{Title: "Summer Vibes", ProductType: "TEE", Size: "L"},
		OrderNumber: "1001",
		SKU:         "SKU-1",
		StoreName:   "My Store",
		ShipDate:    "9/26/25",
		Quantity:    1,
		BinNumber:   3,
		ItemIndex:   2,
		OrderItems:  3,
	}
	ExtendedPage{Geo: CompactGeometry()}.Draw(c, row, PageAssets{ProductCode: code, OrderCode: order})

	if c.pages != 1 {
		t.Fatalf("pages=%d", c.pages)
	}
	if c.countKind("image") != 2 {
		t.Fatalf("images=%d, want item and order codes", c.countKind("image"))
	}
	joined := strings.Join(c.texts(), "\n")
	for _, want := range []string{"TEE", "L", "Summer Vibes", "FRONT", "Order: 1001 | SKU: SKU-1", "Store: My Store | Ship: 9/26/25", "2 of 3", "BIN 3"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in:\n%s", want, joined)
		}
	}
}

func TestExtendedPageOverflowAndSingles(t *testing.T) {
	c := &fakeCanvas{}
	row := internal.NormalizedRow{
		ParsedItem:  internal.ParsedItem{Title: "X", ProductType: "TEE", Size: "S"},
		OrderNumber: "2002",
		Quantity:    1,
		BinOverflow: "THEPIT",
		ItemIndex:   1,
		OrderItems:  1,
	}
	ExtendedPage{Geo: CompactGeometry()}.Draw(c, row, PageAssets{})

	joined := strings.Join(c.texts(), "\n")
	if !strings.Contains(joined, "THEPIT") {
		t.Fatalf("overflow label missing:\n%s", joined)
	}
	if strings.Contains(joined, "FRONT") {
		t.Fatal("FRONT caption requires an item code")
	}
}

func TestExtendedPageSingleItemCount(t *testing.T) {
	c := &fakeCanvas{}
	row := internal.NormalizedRow{
		ParsedItem:  internal.ParsedItem{Title: "Solo", ProductType: "TEE", Size: "M"},
		OrderNumber: "3003",
		Quantity:    1,
		ItemIndex:   1,
		OrderItems:  1,
	}
	ExtendedPage{Geo: CompactGeometry()}.Draw(c, row, PageAssets{})

	joined := strings.Join(c.texts(), "\n")
	if !strings.Contains(joined, "1 of 1") {
		t.Fatalf("single-item orders still print their count:\n%s", joined)
	}
}

func TestExtendedPageOmitsEmptyMetadata(t *testing.T) {
	c := &fakeCanvas{}
	row := internal.NormalizedRow{
		ParsedItem:  internal.ParsedItem{Title: "Solo", ProductType: "TEE", Size: "M"},
		OrderNumber: "3003",
		Quantity:    1,
		ItemIndex:   1,
		OrderItems:  1,
	}
	ExtendedPage{Geo: CompactGeometry()}.Draw(c, row, PageAssets{})

	joined := strings.Join(c.texts(), "\n")
	if !strings.Contains(joined, "Order: 3003") {
		t.Fatalf("order metadata missing:\n%s", joined)
	}
	for _, stray := range []string{"SKU:", "Store:", "Ship:", " | \n", "| \n"} {
		if strings.Contains(joined, stray) {
			t.Fatalf("empty field leaked %q into:\n%s", stray, joined)
		}
	}
}

func TestMonochrome(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				src.SetGray(x, y, color.Gray{Y: 30})
			} else {
				src.SetGray(x, y, color.Gray{Y: 200})
			}
		}
	}
	out := Monochrome(src, 8)
	bounds := out.Bounds()
	if bounds.Dx() != 8 || bounds.Dy() != 8 {
		t.Fatalf("bounds=%v", bounds)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(out.At(x, y)).(color.Gray)
			if g.Y != 0 && g.Y != 255 {
				t.Fatalf("pixel (%d,%d)=%d is not pure black or white", x, y, g.Y)
			}
		}
	}
}
