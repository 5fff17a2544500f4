package catalog

import (
	"errors"
	"fmt"

	"tiquete/internal/util"
)

var ErrDuplicateVariant = errors.New("variant registered in more than one synonym group")

type SynonymGroup struct {
	Canonical string   `mapstructure:"canonical" yaml:"canonical"`
	Variants  []string `mapstructure:"variants" yaml:"variants"`
}

// SynonymIndex maps the normalized form of every variant, and of every
// canonical name, onto its canonical name. It is read-only once built.
type SynonymIndex struct {
	ByKey          map[string]string
	CanonicalNames []string
}

// NewSynonymIndex inverts groups. On conflicting variants the first group
// keeps the key and the conflicts are returned joined under
// ErrDuplicateVariant alongside the usable index.
func NewSynonymIndex(groups []SynonymGroup) (*SynonymIndex, error) {
	idx := &SynonymIndex{
		ByKey: map[string]string{},
	}

	var errs []error
	for _, g := range groups {
		canonical := util.NormalizeSpaces(g.Canonical)
		if canonical == "" {
			continue
		}
		idx.CanonicalNames = append(idx.CanonicalNames, canonical)

		add := func(variant string) {
			key := util.NormalizeKey(variant)
			if key == "" {
				return
			}
			if prev, ok := idx.ByKey[key]; ok {
				if prev != canonical {
					errs = append(errs, fmt.Errorf("%w: %q maps to %q and %q", ErrDuplicateVariant, variant, prev, canonical))
				}
				return
			}
			idx.ByKey[key] = canonical
		}

		add(canonical)
		for _, v := range g.Variants {
			add(v)
		}
	}

	return idx, errors.Join(errs...)
}

// Lookup resolves a raw name through the index.
func (idx *SynonymIndex) Lookup(name string) (string, bool) {
	if idx == nil {
		return "", false
	}
	canonical, ok := idx.ByKey[util.NormalizeKey(name)]
	return canonical, ok
}
