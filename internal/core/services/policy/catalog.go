package policy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lcalzada-xor/dot11ingest/internal/core/domain"
)

//go:embed builtin_bandits.json
var builtinBanditsJSON []byte

// BuiltInBandits returns the bandit catalog shipped with the binary.
func BuiltInBandits() ([]domain.Bandit, error) {
	var bandits []domain.Bandit
	if err := json.Unmarshal(builtinBanditsJSON, &bandits); err != nil {
		return nil, fmt.Errorf("failed to decode built-in bandits: %w", err)
	}
	return bandits, nil
}

// LoadBanditCatalog reads additional built-in bandits from a JSON file in the
// same format as the embedded catalog. Entries are never marked custom.
func LoadBanditCatalog(path string) ([]domain.Bandit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bandit catalog: %w", err)
	}

	var bandits []domain.Bandit
	if err := json.Unmarshal(data, &bandits); err != nil {
		return nil, fmt.Errorf("failed to decode bandit catalog %s: %w", path, err)
	}
	for i := range bandits {
		bandits[i].IsCustom = false
	}
	return bandits, nil
}
