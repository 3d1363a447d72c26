// Package schema holds the warehouse table registry: column lists,
// primary keys and the foreign-key dependency order used for loading.
package schema

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

type Table struct {
	Name       string   `yaml:"name"`
	PrimaryKey []string `yaml:"primary_key"`
	Columns    []string `yaml:"columns"`
}

type registry struct {
	Tables []Table `yaml:"tables"`
}

var (
	loadOrder []string
	byName    map[string]Table
)

func init() {
	var reg registry
	if err := yaml.Unmarshal(tablesYAML, &reg); err != nil {
		panic(fmt.Sprintf("schema: invalid embedded tables.yaml: %v", err))
	}
	byName = make(map[string]Table, len(reg.Tables))
	for _, t := range reg.Tables {
		loadOrder = append(loadOrder, t.Name)
		byName[t.Name] = t
	}
}

// LoadOrder returns table names in foreign-key dependency order.
func LoadOrder() []string {
	out := make([]string, len(loadOrder))
	copy(out, loadOrder)
	return out
}

// Get returns the registry entry for a table.
func Get(name string) (Table, bool) {
	t, ok := byName[name]
	return t, ok
}
