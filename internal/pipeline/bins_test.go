package pipeline

import (
	"testing"

	"labelpress/internal"
)

func TestAssignBinsMultiItemOnly(t *testing.T) {
	rows := []internal.NormalizedRow{
		row("A", "S", 0, 0),
		row("A", "M", 0, 0),
		row("A", "L", 0, 0),
		row("B", "S", 0, 0),
	}
	AssignBins(rows, 12, "THEPIT")

	for i := 0; i < 3; i++ {
		if rows[i].BinNumber != 1 {
			t.Fatalf("row %d bin=%d, all of order A belongs in bin 1", i, rows[i].BinNumber)
		}
		if rows[i].OrderItems != 3 || rows[i].ItemIndex != i+1 {
			t.Fatalf("row %d index=%d total=%d", i, rows[i].ItemIndex, rows[i].OrderItems)
		}
	}
	if rows[3].HasBin() {
		t.Fatal("single-item order must not get a bin")
	}
	if rows[3].ItemIndex != 1 || rows[3].OrderItems != 1 {
		t.Fatalf("single row annotation: %+v", rows[3])
	}
}

func TestAssignBinsOverflowShared(t *testing.T) {
	rows := []internal.NormalizedRow{
		row("A", "S", 0, 0),
		row("A", "M", 0, 0),
		row("B", "S", 0, 0),
		row("B", "M", 0, 0),
		row("C", "S", 0, 0),
		row("C", "M", 0, 0),
	}
	AssignBins(rows, 1, "THEPIT")

	if rows[0].BinNumber != 1 {
		t.Fatalf("first multi-item order bin=%d", rows[0].BinNumber)
	}
	// Bin pool exhausted: B and C share the overflow label, they do not
	// get bins 2 and 3.
	for _, i := range []int{2, 3, 4, 5} {
		if rows[i].BinNumber != 0 || rows[i].BinOverflow != "THEPIT" {
			t.Fatalf("row %d: %+v", i, rows[i])
		}
	}
}

func TestAssignBinsFirstAppearanceOrder(t *testing.T) {
	// Sorted sequence interleaves two orders; bins follow first
	// appearance, not grouping.
	rows := []internal.NormalizedRow{
		row("X", "S", 0, 0),
		row("Y", "S", 0, 0),
		row("X", "M", 0, 0),
		row("Y", "M", 0, 0),
	}
	AssignBins(rows, 12, "THEPIT")

	if rows[0].BinNumber != 1 || rows[2].BinNumber != 1 {
		t.Fatalf("order X bins: %d, %d", rows[0].BinNumber, rows[2].BinNumber)
	}
	if rows[1].BinNumber != 2 || rows[3].BinNumber != 2 {
		t.Fatalf("order Y bins: %d, %d", rows[1].BinNumber, rows[3].BinNumber)
	}
}
