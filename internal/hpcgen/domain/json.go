package domain

import (
	"encoding/json"
	"os"

	"hpcgen/pkg/errors"
)

// ToJSON writes the configuration to path as pretty-printed UTF-8 JSON.
// The file content is exactly the ToMap serialization (keys sorted,
// two-space indent), so repeated calls for identical state are
// byte-identical.
func (j *JobConfig) ToJSON(path string) error {
	data, err := json.MarshalIndent(j.ToMap(), "", "  ")
	if err != nil {
		return errors.WrapDocumentError(path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapDocumentError(path, err)
	}
	return nil
}

// FromJSON reads a configuration previously written by ToJSON (or an
// equivalent document produced by the caller).
func FromJSON(path string) (*JobConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapDocumentError(path, err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapDocumentError(path, err)
	}

	j, err := FromMap(m)
	if err != nil {
		return nil, errors.WrapDocumentError(path, err)
	}
	return j, nil
}
