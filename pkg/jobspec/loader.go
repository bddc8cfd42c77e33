package jobspec

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a job description from the given file path.
//
// The format is YAML; JSON works too since YAML is a superset of it.
//
// Returns an error if:
//   - The file cannot be read (not found, permission denied, etc.)
//   - The content is not valid YAML
//   - Required fields (name, command) are missing
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("job file not found: %s", path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("permission denied reading job file: %s", path)
		}
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses and validates a job description from raw bytes.
func LoadFromBytes(data []byte) (*Job, error) {
	if len(data) == 0 {
		return nil, errors.New("job file is empty")
	}

	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("invalid YAML in job file: %w", err)
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// LoadFromReader reads and validates a job description from an io.Reader.
func LoadFromReader(r io.Reader) (*Job, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read job description: %w", err)
	}
	return LoadFromBytes(data)
}
