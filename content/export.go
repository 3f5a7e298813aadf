// ABOUTME: YAML export and import of the current override set for operator download/restore.
// ABOUTME: Import only accepts keys declared in the manifest; unknown keys are skipped.

package content

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

type overridesDoc struct {
	Overrides map[string]string `yaml:"overrides"`
}

// ExportYAML serializes the store's current overrides as a YAML document the
// operator can download. The export is an explicit operator action; the
// process itself never persists content.
func ExportYAML(s *Store) ([]byte, error) {
	doc := overridesDoc{Overrides: s.Snapshot()}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("export overrides: %w", err)
	}
	return out, nil
}

// ImportYAML applies overrides from a previously exported YAML document.
// Only keys declared in the manifest are applied; the rest are reported back
// so the UI can tell the operator what was skipped. Returns the applied keys
// in sorted order.
func ImportYAML(s *Store, m *Manifest, data []byte) (applied []string, skipped []string, err error) {
	var doc overridesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("import overrides: %w", err)
	}

	for key, value := range doc.Overrides {
		if _, ok := m.Slot(key); !ok {
			skipped = append(skipped, key)
			continue
		}
		s.Set(key, value)
		applied = append(applied, key)
	}

	sort.Strings(applied)
	sort.Strings(skipped)
	return applied, skipped, nil
}
