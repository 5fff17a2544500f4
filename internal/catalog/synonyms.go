package catalog

import "sync"

var defaultGroups = []SynonymGroup{
	{Canonical: "Tomate Chonto", Variants: []string{"tom chonto", "tomate chont", "tomate chonto granel"}},
	{Canonical: "Tomate Larga Vida", Variants: []string{"tom larga vida", "tomate lv"}},
	{Canonical: "Papa Pastusa", Variants: []string{"papa past", "pastusa"}},
	{Canonical: "Papa Criolla", Variants: []string{"papa crioll", "criolla"}},
	{Canonical: "Cebolla Cabezona", Variants: []string{"ceb cabezona", "cebolla cab", "cebolla blanca"}},
	{Canonical: "Cebolla Larga", Variants: []string{"ceb larga", "cebolla junca", "cebolla rama"}},
	{Canonical: "Banano", Variants: []string{"banano criollo", "banano uraba", "bananos"}},
	{Canonical: "Aguacate Hass", Variants: []string{"aguacate has", "aguac hass", "aguacate haas"}},
	{Canonical: "Plátano Hartón", Variants: []string{"platano verde", "platano hart", "platano"}},
	{Canonical: "Limón Tahití", Variants: []string{"limon", "limon tahiti granel"}},
	{Canonical: "Zanahoria", Variants: []string{"zanahoria granel", "zanah", "zanahorias"}},
	{Canonical: "Cilantro", Variants: []string{"cilantro atado", "cilantr"}},
	{Canonical: "Mango Tommy", Variants: []string{"mango tomy", "mango tommy atkins"}},
	{Canonical: "Leche Entera", Variants: []string{"lech entera", "leche ent", "leche entera bolsa"}},
	{Canonical: "Huevos AA", Variants: []string{"huevo aa", "huevos aa rojo", "huevo rojo aa"}},
	{Canonical: "Arroz Blanco", Variants: []string{"arroz bco", "arroz blanco granel"}},
	{Canonical: "Pechuga De Pollo", Variants: []string{"pechuga pollo", "pech pollo", "pechuga"}},
	{Canonical: "Carne Molida", Variants: []string{"molida de res", "carne mol", "molida"}},
}

var (
	defaultOnce  sync.Once
	defaultIndex *SynonymIndex
)

// DefaultGroups returns a copy of the built-in synonym table.
func DefaultGroups() []SynonymGroup {
	out := make([]SynonymGroup, len(defaultGroups))
	copy(out, defaultGroups)
	return out
}

// DefaultIndex is the process-wide index over the built-in table.
func DefaultIndex() *SynonymIndex {
	defaultOnce.Do(func() {
		defaultIndex, _ = NewSynonymIndex(defaultGroups)
	})
	return defaultIndex
}
