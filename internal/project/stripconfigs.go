package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Cangaroo007/stonehenge-v2-sub009/internal/model"
)

// DefaultStripConfigsPath returns the default file path for the strip
// configuration table, at ~/.slabnest/stripconfigs.json.
func DefaultStripConfigsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".slabnest", "stripconfigs.json"), nil
}

// SaveStripConfigs writes the strip configuration table to the specified
// JSON file, creating parent directories if they do not exist.
func SaveStripConfigs(path string, configs map[string]model.StripConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(configs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadStripConfigs reads the strip configuration table from the specified
// JSON file. If the file does not exist, it returns the default table and
// saves it. The STANDARD and WIDE entries are restored if a saved table is
// missing them, since strip generation depends on both.
func LoadStripConfigs(path string) (map[string]model.StripConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			configs := model.DefaultStripConfigs()
			if saveErr := SaveStripConfigs(path, configs); saveErr != nil {
				return configs, saveErr
			}
			return configs, nil
		}
		return nil, err
	}
	var configs map[string]model.StripConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, err
	}
	for name, cfg := range model.DefaultStripConfigs() {
		if _, ok := configs[name]; !ok {
			configs[name] = cfg
		}
	}
	return configs, nil
}
