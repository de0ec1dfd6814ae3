package pipeline

import (
	"errors"
	"strings"
	"testing"

	"labelpress/internal"
	"labelpress/internal/tableio"
)

func mustCSV(t *testing.T, body string) *tableio.Table {
	t.Helper()
	table, err := tableio.LoadCSV(strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestDetectFormatLegacy(t *testing.T) {
	table := mustCSV(t, "Product,Size,Quantity,Datamatrix URL\nMug,M,1,http://x\n")
	format, err := DetectFormat(table)
	if err != nil {
		t.Fatal(err)
	}
	if format != internal.FormatLegacy {
		t.Fatalf("format=%s", format)
	}
}

func TestDetectFormatLegacyPartial(t *testing.T) {
	// 3 of 4 legacy columns still count as legacy.
	table := mustCSV(t, "Product,Size,Quantity\nMug,M,1\n")
	format, err := DetectFormat(table)
	if err != nil {
		t.Fatal(err)
	}
	if format != internal.FormatLegacy {
		t.Fatalf("format=%s", format)
	}
}

func TestDetectFormatExtended(t *testing.T) {
	table := mustCSV(t, "Order - Number,Item - SKU,Item - Name,Item - Qty,Item - Image URL,Market - Store Name,Date - Ship By Date\n1,S,N,1,U,Store,9/26/2025\n")
	format, err := DetectFormat(table)
	if err != nil {
		t.Fatal(err)
	}
	if format != internal.FormatExtended {
		t.Fatalf("format=%s", format)
	}
}

func TestDetectFormatExtendedWinsAtFiveColumns(t *testing.T) {
	// Missing image URL and ship date: 5 of 7 is still extended.
	table := mustCSV(t, "Order - Number,Item - SKU,Item - Name,Item - Qty,Market - Store Name\n1,S,N,1,Store\n")
	format, err := DetectFormat(table)
	if err != nil {
		t.Fatal(err)
	}
	if format != internal.FormatExtended {
		t.Fatalf("format=%s", format)
	}
}

func TestDetectFormatUnrecognized(t *testing.T) {
	table := mustCSV(t, "Foo,Bar\n1,2\n")
	if _, err := DetectFormat(table); !errors.Is(err, ErrFormatUnrecognized) {
		t.Fatalf("want ErrFormatUnrecognized, got %v", err)
	}
}
