package asset

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Type is the asset kind declared in a manifest entry
type Type string

const (
	TypeFont    Type = "font"
	TypeTexture Type = "texture"
	TypeMusic   Type = "music"
	TypeSound   Type = "sound"
	TypeShader  Type = "shader"
)

// Valid reports whether t is a known asset type
func (t Type) Valid() bool {
	switch t {
	case TypeFont, TypeTexture, TypeMusic, TypeSound, TypeShader:
		return true
	}
	return false
}

// Manifest is the root document: named bundles of typed assets
//
//	bundles:
//	  - name: menu
//	    assets:
//	      - { name: title, path: fonts/title.ttf, type: font }
type Manifest struct {
	Bundles []BundleDef `yaml:"bundles"`
}

type BundleDef struct {
	Name   string     `yaml:"name"`
	Assets []AssetDef `yaml:"assets"`
}

type AssetDef struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Type Type   `yaml:"type"`
}

// ErrNoBundles is returned for a document without a bundles key
var ErrNoBundles = errors.New("manifest has no bundles")

// ParseManifest decodes a manifest document
// Entry-level problems are left for the loader to report and skip
func ParseManifest(data []byte) (*Manifest, error) {
	var raw struct {
		Bundles *[]BundleDef `yaml:"bundles"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if raw.Bundles == nil {
		return nil, ErrNoBundles
	}
	return &Manifest{Bundles: *raw.Bundles}, nil
}

// Validate returns the first problem with the entry, nil if it can be loaded
func (d AssetDef) Validate() error {
	switch {
	case d.Name == "":
		return errors.New("missing name")
	case d.Path == "":
		return errors.New("missing path")
	case d.Type == "":
		return errors.New("missing type")
	case !d.Type.Valid():
		return fmt.Errorf("unknown type %q", d.Type)
	}
	return nil
}
