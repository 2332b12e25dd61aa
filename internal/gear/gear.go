// Package gear loads the gear-id to display-name mapping file. The map is
// passed explicitly to whoever needs it; nothing reads it from shared state.
package gear

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadMap reads a JSON object of gear id to name. A missing path returns an
// empty map: the mapping is optional.
func LoadMap(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading gear map %s: %w", path, err)
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding gear map %s: %w", path, err)
	}
	return m, nil
}
