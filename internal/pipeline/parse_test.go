package pipeline

import "testing"

func TestParseTypeThenTitle(t *testing.T) {
	p := NewParser([]string{"Classic Tee"})
	name, ok := p.Parse("<b>Classic Tee</b> - Black - Large - Summer Vibes")
	if !ok {
		t.Fatal("parse failed")
	}
	if name.Title != "Summer Vibes" {
		t.Fatalf("title=%q", name.Title)
	}
	if name.ProductType != "Classic Tee" {
		t.Fatalf("productType=%q", name.ProductType)
	}
	if name.Size != "L" {
		t.Fatalf("size=%q", name.Size)
	}
}

func TestParseTitleThenType(t *testing.T) {
	p := NewParser([]string{"Luxury Hoodie"})
	name, ok := p.Parse("Midnight Drive - Luxury Hoodie - 2XL")
	if !ok {
		t.Fatal("parse failed")
	}
	if name.Title != "Midnight Drive" {
		t.Fatalf("title=%q", name.Title)
	}
	if name.Size != "2XL" {
		t.Fatalf("size=%q", name.Size)
	}
}

func TestParseSizeTailForcesTitleFirst(t *testing.T) {
	// Type sits before the midpoint, but only a size follows it, so the
	// name is still title-then-type.
	p := NewParser([]string{"Trucker Hat"})
	name, ok := p.Parse("Sunset - Trucker Hat - Red")
	if !ok {
		t.Fatal("parse failed")
	}
	if name.Title != "Sunset" {
		t.Fatalf("title=%q", name.Title)
	}
	if name.Size != "" {
		t.Fatalf("color tail must not become a size, got %q", name.Size)
	}
}

func TestParseBigSizesNotTruncated(t *testing.T) {
	p := NewParser([]string{"Luxury Heavy Tee"})
	cases := []struct {
		input string
		want  string
	}{
		{"Road Trip - Luxury Heavy Tee - 2XL", "2XL"},
		{"Road Trip - Luxury Heavy Tee - 3X-Large", "3XL"},
		{"Road Trip - Luxury Heavy Tee - XX-Large", "2XL"},
		{"Road Trip - Luxury Heavy Tee - XL", "XL"},
		{"Road Trip - Luxury Heavy Tee - Medium", "M"},
	}
	for _, tc := range cases {
		name, ok := p.Parse(tc.input)
		if !ok {
			t.Fatalf("parse failed for %q", tc.input)
		}
		if name.Size != tc.want {
			t.Fatalf("%q: size=%q want %q", tc.input, name.Size, tc.want)
		}
	}
}

func TestParseColorCompoundExcludedFromSize(t *testing.T) {
	p := NewParser([]string{"Trucker Hat"})
	name, ok := p.Parse("Desert Run - Trucker Hat - Orange Camo")
	if !ok {
		t.Fatal("parse failed")
	}
	if name.Size != "" {
		t.Fatalf("size=%q, color compound leaked into size", name.Size)
	}
	if name.Title != "Desert Run" {
		t.Fatalf("title=%q", name.Title)
	}
}

func TestParseColorOnlyTitleRederived(t *testing.T) {
	// Title slot holds only color words; the real title precedes the
	// product type.
	p := NewParser([]string{"Luxury Heavy Tee"})
	name, ok := p.Parse("Night Owl Luxury Heavy Tee - Vintage Black - L - Black")
	if !ok {
		t.Fatal("parse failed")
	}
	if name.Title != "Night Owl" {
		t.Fatalf("title=%q", name.Title)
	}
	if name.Size != "L" {
		t.Fatalf("size=%q", name.Size)
	}
}

func TestParseCollapsesTitleWhitespace(t *testing.T) {
	p := NewParser([]string{"Classic Tee"})
	name, ok := p.Parse("<b>Classic Tee</b> - Black - Large - Summer  Vibes")
	if !ok {
		t.Fatal("parse failed")
	}
	if name.Title != "Summer Vibes" {
		t.Fatalf("title=%q, markup residue must be collapsed", name.Title)
	}
}

func TestParseDigitTailNotASize(t *testing.T) {
	// "XL2" is a style code, not a size token.
	p := NewParser([]string{"Luxury Heavy Tee"})
	name, ok := p.Parse("Road Trip - Luxury Heavy Tee - XL2")
	if !ok {
		t.Fatal("parse failed")
	}
	if name.Size != "" {
		t.Fatalf("size=%q, digit-glued token must not parse as a size", name.Size)
	}
}

func TestParseUnmatchedRejected(t *testing.T) {
	p := NewParser([]string{"Classic Tee"})
	if _, ok := p.Parse("Ceramic Mug - White - 11oz"); ok {
		t.Fatal("expected rejection")
	}
	if _, ok := p.Parse("   "); ok {
		t.Fatal("blank input must be rejected")
	}
}

func TestStripTags(t *testing.T) {
	if got := StripTags("<div><b>Classic Tee</b> - L</div>"); got != "Classic Tee - L" {
		t.Fatalf("got %q", got)
	}
	if got := StripTags("no markup here"); got != "no markup here" {
		t.Fatalf("got %q", got)
	}
}
