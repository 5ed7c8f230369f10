package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	View    viewSchema    `toml:"view"`
	API     backendSchema `toml:"api"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported preferences schema version %d (current %d)", s.Version, currentSchemaVersion)
	}
	return nil
}

type viewSchema struct {
	PageSize int `toml:"page_size,omitempty"`
}

type backendSchema struct {
	BaseURL string `toml:"base_url,omitempty"`
}
