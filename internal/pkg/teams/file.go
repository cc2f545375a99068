package teams

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type tableFile struct {
	Teams Table `yaml:"teams"`
}

// LoadTable reads an alias table from a YAML file:
//
//	teams:
//	  - name: Flamengo
//	    aliases: [flamengo, fla, mengão]
//
// Entries keep the file order.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read teams file: %w", err)
	}
	return ParseTable(data)
}

// ParseTable decodes and validates a YAML alias table.
func ParseTable(data []byte) (Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse teams file: %w", err)
	}
	if len(f.Teams) == 0 {
		return nil, fmt.Errorf("teams file has no entries")
	}

	seen := make(map[string]bool, len(f.Teams))
	for i, e := range f.Teams {
		if e.Name == "" {
			return nil, fmt.Errorf("team entry %d has no name", i)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("team %q listed twice", e.Name)
		}
		seen[e.Name] = true
		if len(e.Aliases) == 0 {
			return nil, fmt.Errorf("team %q has no aliases", e.Name)
		}
	}
	return f.Teams, nil
}
