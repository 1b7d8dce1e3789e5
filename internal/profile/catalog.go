package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed profiles.json
var rawCatalog []byte

// UnknownProfileError is returned when a requested profile name is absent
// from the catalog.
type UnknownProfileError struct {
	Name string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown profile: %q", e.Name)
}

// Catalog is a versioned, read-only mapping from profile name to its
// thresholds and the guideline documents they were derived from. It is safe
// for concurrent reads; nothing mutates it after load.
type Catalog struct {
	Version    string              `json:"version"`
	Profiles   map[string]*Profile `json:"profiles"`
	Guidelines map[string][]string `json:"guidelines"`
}

// LoadCatalog parses the catalog embedded in the binary.
func LoadCatalog() (*Catalog, error) {
	var catalog Catalog
	if err := json.Unmarshal(rawCatalog, &catalog); err != nil {
		return nil, fmt.Errorf("parse embedded profile catalog: %w", err)
	}
	return &catalog, nil
}

// Get looks up a profile by name.
func (c *Catalog) Get(name string) (*Profile, error) {
	prof, ok := c.Profiles[name]
	if !ok {
		return nil, &UnknownProfileError{Name: name}
	}
	return prof, nil
}

// Names lists all profile names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sources returns the guideline URLs a profile was derived from, if any.
func (c *Catalog) Sources(name string) []string {
	return c.Guidelines[name]
}
