package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRequest reads a SchedulingRequest from a JSON or YAML file.
func LoadRequest(path string) (SchedulingRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return SchedulingRequest{}, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var req SchedulingRequest
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &req)
	case ".json":
		err = json.Unmarshal(b, &req)
	default:
		return SchedulingRequest{}, fmt.Errorf("unsupported request format: %s", ext)
	}
	return req, err
}

// DecodeRequest reads from r to decode a SchedulingRequest.
func DecodeRequest(r io.Reader, format string) (SchedulingRequest, error) {
	var req SchedulingRequest
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		if err := dec.Decode(&req); err != nil {
			return req, err
		}
	case "json":
		dec := json.NewDecoder(r)
		if err := dec.Decode(&req); err != nil {
			return req, err
		}
	default:
		return req, fmt.Errorf("unsupported format: %s", format)
	}
	return req, nil
}
