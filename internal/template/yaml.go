package template

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadTemplatesFromFile reads template definitions from a YAML or JSON file.
// The file may contain a single template or a list of templates. Every
// template is validated; the first invalid one fails the whole load.
func LoadTemplatesFromFile(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewTemplateLoadError(path, err)
	}

	templates, err := decodeTemplates(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, NewTemplateLoadError(path, err)
	}

	for i := range templates {
		if err := templates[i].Validate(); err != nil {
			return nil, NewTemplateLoadError(path, err)
		}
	}
	return templates, nil
}

// LoadTemplatesFromDirectory reads every .yaml, .yml, and .json file in dir
// (non-recursively) and returns all templates found.
func LoadTemplatesFromDirectory(dir string) ([]Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, NewTemplateLoadError(dir, err)
	}

	var all []Template
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}

		templates, err := LoadTemplatesFromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return all, err
		}
		all = append(all, templates...)
	}
	return all, nil
}

// decodeTemplates tries a list first, then a single document.
func decodeTemplates(data []byte, isJSON bool) ([]Template, error) {
	if isJSON {
		var list []Template
		if err := json.Unmarshal(data, &list); err == nil {
			return list, nil
		}
		var single Template
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, err
		}
		return []Template{single}, nil
	}

	var list []Template
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var single Template
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	return []Template{single}, nil
}
