// Package config reads and writes YAML container schemas.
//
// A schema lists the variables of a container together with their encoding
// configuration:
//
//	format: enhanced
//	endian: little
//	variables:
//	  - name: temperature
//	    type: float
//	    length: 1000
//	    chunk: 256
//	    quantize: {mode: bitgroom, nsd: 3}
//	    filters:
//	      - name: shuffle
//	      - name: deflate
//	        params: [6]
//
// Filters are named by their built-in name or, for registered third-party
// filters, by numeric id.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/arloliu/ncpipe/container"
	"github.com/arloliu/ncpipe/errs"
	"github.com/arloliu/ncpipe/format"
)

// Schema describes a container.
type Schema struct {
	Format    string     `yaml:"format,omitempty"`
	Endian    string     `yaml:"endian,omitempty"`
	Variables []Variable `yaml:"variables"`
}

// Variable describes one variable and its encoding configuration.
type Variable struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"`
	Length   int       `yaml:"length"`
	Chunk    int       `yaml:"chunk,omitempty"`
	Quantize *Quantize `yaml:"quantize,omitempty"`
	Filters  []Filter  `yaml:"filters,omitempty"`
}

// Quantize is a variable's quantization setting.
type Quantize struct {
	Mode string `yaml:"mode"`
	NSD  int    `yaml:"nsd"`
}

// Filter is one pipeline entry. Name takes precedence over ID.
type Filter struct {
	Name   string   `yaml:"name,omitempty"`
	ID     uint32   `yaml:"id,omitempty"`
	Params []uint32 `yaml:"params,omitempty,flow"`
}

// Load reads a schema from a YAML file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes a schema from YAML. Unknown keys are rejected.
func Parse(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := yaml.UnmarshalStrict(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidSchema, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Marshal encodes the schema as YAML.
func (s *Schema) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Validate checks that every name in the schema resolves. Range checks are
// left to the container so the same rules apply everywhere.
func (s *Schema) Validate() error {
	if _, err := s.Options(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(s.Variables))
	for _, v := range s.Variables {
		if _, dup := seen[v.Name]; dup {
			return fmt.Errorf("%w: duplicate variable %q", errs.ErrInvalidSchema, v.Name)
		}
		seen[v.Name] = struct{}{}

		if _, err := format.ParseDataType(v.Type); err != nil {
			return fmt.Errorf("%w: variable %q: %v", errs.ErrInvalidSchema, v.Name, err)
		}
		if v.Quantize != nil {
			if _, err := format.ParseQuantizeMode(v.Quantize.Mode); err != nil {
				return fmt.Errorf("%w: variable %q: %v", errs.ErrInvalidSchema, v.Name, err)
			}
		}
		for _, f := range v.Filters {
			if _, err := f.FilterID(); err != nil {
				return fmt.Errorf("%w: variable %q: %v", errs.ErrInvalidSchema, v.Name, err)
			}
		}
	}

	return nil
}

// Options returns the container options selected by the schema.
func (s *Schema) Options() ([]container.Option, error) {
	var opts []container.Option

	if s.Format != "" {
		kind, err := format.ParseKind(s.Format)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidSchema, err)
		}
		opts = append(opts, container.WithFormat(kind))
	}

	switch strings.ToLower(s.Endian) {
	case "", "little":
		opts = append(opts, container.WithLittleEndian())
	case "big":
		opts = append(opts, container.WithBigEndian())
	default:
		return nil, fmt.Errorf("%w: unknown endian %q", errs.ErrInvalidSchema, s.Endian)
	}

	return opts, nil
}

// FilterID resolves the filter's id.
func (f Filter) FilterID() (format.FilterID, error) {
	if f.Name != "" {
		return format.ParseFilterID(f.Name)
	}
	if f.ID == 0 {
		return 0, fmt.Errorf("filter needs a name or an id")
	}

	return format.FilterID(f.ID), nil
}
