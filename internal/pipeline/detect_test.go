package pipeline

import (
	"testing"

	"tiquete/internal"
)

func TestClassifyFixtures(t *testing.T) {
	c := NewClassifier(nil)
	cases := map[string]internal.VendorType{
		"exito.txt":      internal.VendorExito,
		"carulla.txt":    internal.VendorCarulla,
		"d1.txt":         internal.VendorD1,
		"dollarcity.txt": internal.VendorDollarcity,
		"fruver.txt":     internal.VendorFruver,
		"farmacia.txt":   internal.VendorFarmacia,
		"carniceria.txt": internal.VendorCarniceria,
		"mayorista.txt":  internal.VendorMayorista,
		"generic.txt":    internal.VendorGeneric,
	}
	for file, want := range cases {
		got := c.Classify(Normalize(fixture(t, file)).Text, "")
		if got.Vendor != want {
			t.Fatalf("%s: vendor=%s reason=%s, want %s", file, got.Vendor, got.Reason, want)
		}
	}
}

func TestClassifyPriorityResolvesOverlap(t *testing.T) {
	text := "CARULLA FRESH MARKET GRUPO EXITO"

	if got := NewClassifier(nil).Classify(text, ""); got.Vendor != internal.VendorCarulla {
		t.Fatalf("default priority: %+v", got)
	}
	if got := NewClassifier([]internal.VendorType{internal.VendorExito}).Classify(text, ""); got.Vendor != internal.VendorExito {
		t.Fatalf("exito first: %+v", got)
	}
}

func TestClassifyHint(t *testing.T) {
	c := NewClassifier(nil)

	got := c.Classify("CARULLA FRESH MARKET", internal.VendorFruver)
	if got.Vendor != internal.VendorFruver || got.Reason != "hint" {
		t.Fatalf("hint ignored: %+v", got)
	}
	got = c.Classify("CARULLA FRESH MARKET", internal.VendorType("nope"))
	if got.Vendor != internal.VendorCarulla {
		t.Fatalf("unknown hint should fall through to detection: %+v", got)
	}
	got = c.Classify("MINIMERCADO", internal.VendorGeneric)
	if got.Vendor != internal.VendorGeneric || got.Reason != "hint" {
		t.Fatalf("generic hint: %+v", got)
	}
}

func TestClassifyIsStable(t *testing.T) {
	c := NewClassifier(nil)
	text := Normalize(fixture(t, "d1.txt")).Text
	first := c.Classify(text, "")
	for i := 0; i < 10; i++ {
		if got := c.Classify(text, ""); got != first {
			t.Fatalf("run %d: %+v != %+v", i, got, first)
		}
	}
}

func TestNewClassifierOrder(t *testing.T) {
	c := NewClassifier([]internal.VendorType{
		internal.VendorFruver, internal.VendorFruver, internal.VendorGeneric, "unknown",
	})
	order := c.Order()
	if len(order) != len(DefaultPriority) {
		t.Fatalf("order=%v", order)
	}
	if order[0] != internal.VendorFruver || order[1] != internal.VendorCarulla {
		t.Fatalf("order=%v", order)
	}

	order[0] = internal.VendorD1
	if c.Order()[0] != internal.VendorFruver {
		t.Fatal("Order must return a copy")
	}
}

func TestParseVendorList(t *testing.T) {
	vendors, unknown := ParseVendorList([]string{"Éxito", "CARULLA", "oxxo", "d1"})
	if len(vendors) != 3 || vendors[0] != internal.VendorExito || vendors[1] != internal.VendorCarulla || vendors[2] != internal.VendorD1 {
		t.Fatalf("vendors=%v", vendors)
	}
	if len(unknown) != 1 || unknown[0] != "oxxo" {
		t.Fatalf("unknown=%v", unknown)
	}
}
