package profile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// derivationsFile formato YAML de PROFILES_FILE:
//
//	profiles:
//	  - key: School/Fiscal
//	    base: School
//	    overrides:
//	      fiscal: {active: true}
type derivationsFile struct {
	Profiles []Derivation `yaml:"profiles"`
}

// LoadDerivations lee derivaciones adicionales en YAML. Un documento vacío no es error.
func LoadDerivations(r io.Reader) ([]Derivation, error) {
	var f derivationsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decodificar perfiles: %w", err)
	}
	return f.Profiles, nil
}

// LoadCatalog devuelve Default() extendido con las derivaciones de path.
// path vacío devuelve Default() sin cambios.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer fh.Close()

	derived, err := LoadDerivations(fh)
	if err != nil {
		return nil, err
	}
	return Default().Extend(derived...)
}
