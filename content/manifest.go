// ABOUTME: Slot manifest declaring every editable content slot with its kind and default value.
// ABOUTME: Parsed from YAML; the shipped manifest is embedded so the binary is self-contained.

package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var embeddedManifest []byte

// Kind classifies how a slot's value is edited and rendered.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Slot declares one editable content slot: its stable key, where it appears,
// how it is edited, and the compiled-in default used when no override exists.
type Slot struct {
	Key     string `yaml:"key"`
	Kind    Kind   `yaml:"kind"`
	Section string `yaml:"section"`
	Label   string `yaml:"label"`
	Default string `yaml:"default"`
}

// Manifest is the full set of editable slots, keyed lookup plus declaration
// order for listings.
type Manifest struct {
	slots map[string]Slot
	order []string
}

type manifestDoc struct {
	Slots []Slot `yaml:"slots"`
}

// ParseManifest parses a YAML slot manifest and validates it: keys must be
// unique and non-empty, kinds known, and every slot must carry a non-empty
// default so pages never render an empty field.
func ParseManifest(data []byte) (*Manifest, error) {
	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	m := &Manifest{
		slots: make(map[string]Slot, len(doc.Slots)),
		order: make([]string, 0, len(doc.Slots)),
	}

	for _, slot := range doc.Slots {
		if slot.Key == "" {
			return nil, fmt.Errorf("manifest slot with empty key")
		}
		if _, dup := m.slots[slot.Key]; dup {
			return nil, fmt.Errorf("duplicate slot key %q", slot.Key)
		}
		switch slot.Kind {
		case KindText, KindImage:
		default:
			return nil, fmt.Errorf("slot %q: unknown kind %q", slot.Key, slot.Kind)
		}
		if slot.Default == "" {
			return nil, fmt.Errorf("slot %q: missing default value", slot.Key)
		}

		m.slots[slot.Key] = slot
		m.order = append(m.order, slot.Key)
	}

	return m, nil
}

// LoadManifestFile reads and parses a slot manifest from disk.
func LoadManifestFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data)
}

// DefaultManifest parses the embedded manifest shipped with the binary.
func DefaultManifest() (*Manifest, error) {
	return ParseManifest(embeddedManifest)
}

// Slot returns the declaration for key and whether it exists.
func (m *Manifest) Slot(key string) (Slot, bool) {
	s, ok := m.slots[key]
	return s, ok
}

// Slots returns all slots in declaration order.
func (m *Manifest) Slots() []Slot {
	out := make([]Slot, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.slots[key])
	}
	return out
}

// Len returns the number of declared slots.
func (m *Manifest) Len() int {
	return len(m.order)
}
