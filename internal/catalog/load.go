package catalog

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadSynonymGroups reads extra groups from a YAML/JSON/TOML file shaped as
//
//	synonyms:
//	  - canonical: Tomate Chonto
//	    variants: [tom chonto]
func LoadSynonymGroups(path string) ([]SynonymGroup, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading synonyms file: %w", err)
	}

	var groups []SynonymGroup
	if err := v.UnmarshalKey("synonyms", &groups); err != nil {
		return nil, fmt.Errorf("decoding synonyms: %w", err)
	}
	return groups, nil
}

// BuildIndex indexes the built-in table followed by the groups in path.
// Built-in entries win on conflicts; the conflicts come back as an error
// wrapping ErrDuplicateVariant next to a usable index.
func BuildIndex(path string) (*SynonymIndex, error) {
	if path == "" {
		return DefaultIndex(), nil
	}
	extra, err := LoadSynonymGroups(path)
	if err != nil {
		return nil, err
	}
	return NewSynonymIndex(append(DefaultGroups(), extra...))
}
