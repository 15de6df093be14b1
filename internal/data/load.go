package data

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

type materialYAMLEntry struct {
	Metal string `yaml:"metal"`
	Item  string `yaml:"item"`
}

type tableFile struct {
	Armour         []string            `yaml:"armour"`
	Weapon         []string            `yaml:"weapon"`
	Elixir         []string            `yaml:"elixir"`
	Tincture       []string            `yaml:"tincture"`
	MaterialArmour []materialYAMLEntry `yaml:"material_armour"`
	MaterialWeapon []materialYAMLEntry `yaml:"material_weapon"`
}

// LoadDefaultRegistry builds the registry from the tables compiled into the
// binary.
func LoadDefaultRegistry() (*Registry, error) {
	return ParseRegistry(defaultTables)
}

// LoadRegistry loads loot tables from a YAML file.
func LoadRegistry(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read loot tables: %w", err)
	}
	return ParseRegistry(raw)
}

// ParseRegistry builds a registry from YAML. Every table must be non-empty
// and every entry must name a known item.
func ParseRegistry(raw []byte) (*Registry, error) {
	var f tableFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse loot tables: %w", err)
	}

	var (
		r   Registry
		err error
	)
	if r.armour, err = buildTable("armour", f.Armour, armours); err != nil {
		return nil, err
	}
	if r.weapon, err = buildTable("weapon", f.Weapon, weapons); err != nil {
		return nil, err
	}
	if r.elixir, err = buildTable("elixir", f.Elixir, elixirs); err != nil {
		return nil, err
	}
	if r.tincture, err = buildTable("tincture", f.Tincture, tinctures); err != nil {
		return nil, err
	}
	if r.materialArmour, err = buildMaterialTable("material_armour", f.MaterialArmour, armours); err != nil {
		return nil, err
	}
	if r.materialWeapon, err = buildMaterialTable("material_weapon", f.MaterialWeapon, weapons); err != nil {
		return nil, err
	}
	return &r, nil
}

type enumLabel interface {
	~uint8
	Label
}

func buildTable[T enumLabel](name string, keys []string, e enum[T]) (*Table[T], error) {
	entries := make([]T, 0, len(keys))
	for i, k := range keys {
		v, err := e.parse(k)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		entries = append(entries, v)
	}
	return newTable(name, entries)
}

func buildMaterialTable[T enumLabel](name string, raw []materialYAMLEntry, e enum[T]) (*Table[Material[T]], error) {
	entries := make([]Material[T], 0, len(raw))
	for i, m := range raw {
		if m.Metal == "" || m.Item == "" {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, ErrIncompleteEntry)
		}
		metal, err := metals.parse(m.Metal)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		item, err := e.parse(m.Item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		entries = append(entries, Material[T]{Metal: metal, Item: item})
	}
	return newTable(name, entries)
}
