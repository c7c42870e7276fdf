package out

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"tutorcast/internal/modules/worksheet/domain"
)

type jsonEnvelope struct {
	Mode              string          `json:"mode"`
	DRMProtectedPages domain.DRMPages `json:"drmProtectedPages"`
	Data              json.RawMessage `json:"data"`
}

type yamlEnvelope struct {
	Mode              string          `yaml:"mode"`
	DRMProtectedPages domain.DRMPages `yaml:"drmProtectedPages"`
	Data              yaml.Node       `yaml:"data"`
}

// DecodeJSON decodes the metadata contract. An unknown mode yields metadata without content.
func DecodeJSON(raw []byte) (domain.Metadata, error) {
	env := jsonEnvelope{}
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.Metadata{}, fmt.Errorf("decode worksheet metadata: %w", err)
	}
	meta := domain.Metadata{Mode: domain.Mode(env.Mode), DRMProtectedPages: env.DRMProtectedPages}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return meta, nil
	}
	switch meta.Mode {
	case domain.ModeRegions:
		if err := json.Unmarshal(env.Data, &meta.Regions); err != nil {
			return domain.Metadata{}, fmt.Errorf("decode regions: %w", err)
		}
	case domain.ModeAuto:
		if err := json.Unmarshal(env.Data, &meta.Pages); err != nil {
			return domain.Metadata{}, fmt.Errorf("decode guidance pages: %w", err)
		}
	}
	return meta, nil
}

func DecodeYAML(raw []byte) (domain.Metadata, error) {
	env := yamlEnvelope{}
	if err := yaml.Unmarshal(raw, &env); err != nil {
		return domain.Metadata{}, fmt.Errorf("decode worksheet metadata: %w", err)
	}
	meta := domain.Metadata{Mode: domain.Mode(env.Mode), DRMProtectedPages: env.DRMProtectedPages}
	if env.Data.Kind == 0 {
		return meta, nil
	}
	switch meta.Mode {
	case domain.ModeRegions:
		if err := env.Data.Decode(&meta.Regions); err != nil {
			return domain.Metadata{}, fmt.Errorf("decode regions: %w", err)
		}
	case domain.ModeAuto:
		if err := env.Data.Decode(&meta.Pages); err != nil {
			return domain.Metadata{}, fmt.Errorf("decode guidance pages: %w", err)
		}
	}
	return meta, nil
}
