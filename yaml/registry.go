// Package yaml loads the tradition registry from YAML.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/encounter"
	"gopkg.in/yaml.v3"
)

// registryFile is the on-disk shape of a registry:
//
//	traditions:
//	  - slug: norse
//	    name: Norse
type registryFile struct {
	Traditions []encounter.Tradition `yaml:"traditions"`
}

// LoadRegistry decodes and validates a registry. Unknown keys are rejected
// so that typos surface instead of silently dropping a tradition.
func LoadRegistry(r io.Reader) (encounter.Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file registryFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, encounter.Errorf(encounter.EINVALID, "registry is empty")
		}
		return nil, encounter.Errorf(encounter.EFORMAT, "parse registry: %v", err)
	}

	if len(file.Traditions) == 0 {
		return nil, encounter.Errorf(encounter.EINVALID, "registry lists no traditions")
	}

	registry := encounter.Registry(file.Traditions)
	if err := registry.Validate(); err != nil {
		return nil, err
	}
	return registry, nil
}

// LoadRegistryFile reads the registry at path.
func LoadRegistryFile(path string) (encounter.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, encounter.Errorf(encounter.ENOTFOUND, "registry file %s not found", path)
		}
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()

	return LoadRegistry(f)
}
