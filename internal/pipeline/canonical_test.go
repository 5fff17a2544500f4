package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tiquete/internal"
	"tiquete/internal/catalog"
)

func TestCanonicalizeTruncatedName(t *testing.T) {
	got := Canonicalize("Habichuela A Gra", []string{"Habichuela A Granel"})
	if got != "Habichuela A Granel" {
		t.Fatalf("got %q", got)
	}
}

func TestCanonicalizeDifferentProductIsKept(t *testing.T) {
	got := Canonicalize("Pepino Cohombro", []string{"Pepino Calabacin"})
	if got != "Pepino Cohombro" {
		t.Fatalf("got %q", got)
	}
}

func TestCanonicalizeKeepsSuffix(t *testing.T) {
	cases := []struct {
		raw      string
		existing []string
		want     string
	}{
		{
			raw:      "Habichuela A Gra — 0,305 kg @ $6.540/kg (antes $9.340/kg, -30%) [Éxito]",
			existing: []string{"Habichuela A Granel [Éxito]"},
			want:     "Habichuela A Granel — 0,305 kg @ $6.540/kg (antes $9.340/kg, -30%) [Éxito]",
		},
		{
			raw:  "TOM CHONTO — 1,25 kg @ $3.200/kg [Fruver]",
			want: "Tomate Chonto — 1,25 kg @ $3.200/kg [Fruver]",
		},
		{
			raw:  "platano hart [Fruver]",
			want: "Plátano Hartón [Fruver]",
		},
		{
			raw:  "pan   tajado [Genérico]",
			want: "Pan Tajado [Genérico]",
		},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Canonicalize(tc.raw, tc.existing), tc.raw)
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	for _, raw := range []string{
		"Leche Entera Alqueria 1100 Ml [Éxito]",
		"tom chonto",
		"Habichuela A Gra",
		"Galleta Saltin Noel — 2 un @ $1.701 (antes $1.890, -10%) [D1]",
	} {
		once := Canonicalize(raw, nil)
		name := productName(once)
		twice := Canonicalize(once, []string{name})
		if twice != once {
			t.Fatalf("%q: %q then %q", raw, once, twice)
		}
	}
}

func TestCanonicalizeIsIdempotentAgainstExistingNames(t *testing.T) {
	cases := []struct {
		raw      string
		existing []string
		want     string
	}{
		{
			raw:      "Platano Verd",
			existing: []string{"Platano Verde"},
			want:     "Plátano Hartón",
		},
		{
			raw:      "Leche Entera Bol [Éxito]",
			existing: []string{"Leche Entera Bolsa [Éxito]"},
			want:     "Leche Entera [Éxito]",
		},
		{
			raw:      "Avena Hojuelas Premium",
			existing: []string{"Avena Hojuelas Integral", "Avena Hojuelas"},
			want:     "Avena Hojuelas",
		},
		{
			raw:      "avena hojuelas",
			existing: []string{"Avena Hojuelas Integral", "Avena Hojuelas"},
			want:     "Avena Hojuelas",
		},
		{
			raw:      "Pepino Cohombro",
			existing: []string{"Pepino Calabacin", "Tomate Chonto"},
			want:     "Pepino Cohombro",
		},
	}
	for _, tc := range cases {
		once := Canonicalize(tc.raw, tc.existing)
		if once != tc.want {
			t.Fatalf("%q: got %q, want %q", tc.raw, once, tc.want)
		}
		withResult := append(append([]string{}, tc.existing...), productName(once))
		if twice := Canonicalize(once, withResult); twice != once {
			t.Fatalf("%q: %q then %q", tc.raw, once, twice)
		}
	}
}

func TestCanonicalizeEveryPrefixResolvesToFullName(t *testing.T) {
	full := "Galleta Saltin Noel Tradicional"
	checked := 0
	for i := 1; i < len(full); i++ {
		prefix := full[:i]
		if len(defaultCanonicalizer.significantTokens(prefix)) < 2 {
			continue
		}
		checked++
		if got := Canonicalize(prefix, []string{full}); got != full {
			t.Fatalf("prefix %q: got %q", prefix, got)
		}
	}
	if checked == 0 {
		t.Fatal("no prefixes checked")
	}
}

func TestCanonicalizeSingleTokenNeverTruncates(t *testing.T) {
	got := Canonicalize("Pan", []string{"Pan Tajado"})
	if got != "Pan" {
		t.Fatalf("got %q", got)
	}
}

func TestCanonicalizeDoesNotMutateExisting(t *testing.T) {
	existing := []string{"Habichuela A Granel", "Pepino Calabacin"}
	_ = Canonicalize("Habichuela A Gra", existing)
	assert.Equal(t, []string{"Habichuela A Granel", "Pepino Calabacin"}, existing)
}

func TestCanonicalizerCustomIndex(t *testing.T) {
	index, err := catalog.NewSynonymIndex([]catalog.SynonymGroup{
		{Canonical: "Habichuela", Variants: []string{"habich", "frijol verde"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	c := NewCanonicalizer(index)
	assert.Equal(t, "Habichuela [Fruver]", c.Canonicalize("FRIJOL VERDE [Fruver]", nil))
	assert.Equal(t, "Tom Chonto", c.Canonicalize("TOM CHONTO", nil))
}

func TestCanonicalizeAllMatchesEarlierItems(t *testing.T) {
	in := []internal.Product{
		{Description: "Habichuela A Granel — 0,305 kg @ $6.540/kg [Éxito]", Price: 1995},
		{Description: "Habichuela A Gra [Éxito]", Price: 2100},
	}
	got := defaultCanonicalizer.CanonicalizeAll(in, nil)
	assert.Equal(t, "Habichuela A Granel [Éxito]", got[1].Description)
	assert.Equal(t, 2100, got[1].Price)
	assert.Equal(t, "Habichuela A Gra [Éxito]", in[1].Description)
}
