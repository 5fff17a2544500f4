package pipeline

import (
	"reflect"
	"testing"
)

func TestNormalizeSplitsAndCollapses(t *testing.T) {
	r := Normalize("  TIENDAS   D1 \r\n\r\n7702007\tARROZ DIANA 500 G  2.350\rTOTAL 2.350\n   \n")

	want := []string{"TIENDAS D1", "7702007 ARROZ DIANA 500 G 2.350", "TOTAL 2.350"}
	if !reflect.DeepEqual(r.Lines, want) {
		t.Fatalf("lines=%q", r.Lines)
	}
	if r.Text != "TIENDAS D1 7702007 ARROZ DIANA 500 G 2.350 TOTAL 2.350" {
		t.Fatalf("text=%q", r.Text)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	r := Normalize("\n\n")
	if len(r.Lines) != 0 || r.Text != "" {
		t.Fatalf("got %+v", r)
	}
}
