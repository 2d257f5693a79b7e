// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package catalog provides type metadata from descriptor catalogs written at
// build time. A catalog lists types with their members as plain data and can
// be stored as YAML, TOML or JSON.
package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-json-experiment/json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a catalog file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Catalog is the decoded content of one catalog file.
type Catalog struct {
	Types []TypeSpec `yaml:"types" toml:"types" json:"types"`
}

// TypeSpec describes one type. Type expressions are strings parsed with
// ParseTypeExpr.
type TypeSpec struct {
	Name       string          `yaml:"name" toml:"name" json:"name"`
	Namespace  string          `yaml:"namespace,omitempty" toml:"namespace,omitempty" json:"namespace,omitempty"`
	Kind       string          `yaml:"kind" toml:"kind" json:"kind"`
	Modifiers  []string        `yaml:"modifiers,omitempty" toml:"modifiers,omitempty" json:"modifiers,omitempty"`
	TypeParams []TypeParamSpec `yaml:"typeParams,omitempty" toml:"typeParams,omitempty" json:"typeParams,omitempty"`
	Extends    string          `yaml:"extends,omitempty" toml:"extends,omitempty" json:"extends,omitempty"`
	Implements []string        `yaml:"implements,omitempty" toml:"implements,omitempty" json:"implements,omitempty"`
	Fields     []FieldSpec     `yaml:"fields,omitempty" toml:"fields,omitempty" json:"fields,omitempty"`
	Methods    []MethodSpec    `yaml:"methods,omitempty" toml:"methods,omitempty" json:"methods,omitempty"`
	Constants  []ConstantSpec  `yaml:"constants,omitempty" toml:"constants,omitempty" json:"constants,omitempty"`
}

// TypeParamSpec is a generic parameter with optional bounds.
type TypeParamSpec struct {
	Name   string   `yaml:"name" toml:"name" json:"name"`
	Bounds []string `yaml:"bounds,omitempty" toml:"bounds,omitempty" json:"bounds,omitempty"`
}

// FieldSpec is a field. Value is the constant value of a static constant.
type FieldSpec struct {
	Name      string   `yaml:"name" toml:"name" json:"name"`
	Type      string   `yaml:"type" toml:"type" json:"type"`
	Modifiers []string `yaml:"modifiers,omitempty" toml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Static    bool     `yaml:"static,omitempty" toml:"static,omitempty" json:"static,omitempty"`
	Value     any      `yaml:"value,omitempty" toml:"value,omitempty" json:"value,omitempty"`
}

// MethodSpec is a method signature.
type MethodSpec struct {
	Name    string   `yaml:"name" toml:"name" json:"name"`
	Returns string   `yaml:"returns,omitempty" toml:"returns,omitempty" json:"returns,omitempty"`
	Params  []string `yaml:"params,omitempty" toml:"params,omitempty" json:"params,omitempty"`
	Throws  []string `yaml:"throws,omitempty" toml:"throws,omitempty" json:"throws,omitempty"`
}

// ConstantSpec is an enum constant. Values align with the instance fields of
// the enclosing type in declaration order.
type ConstantSpec struct {
	Name   string `yaml:"name" toml:"name" json:"name"`
	Values []any  `yaml:"values,omitempty" toml:"values,omitempty" json:"values,omitempty"`
}

// FormatOf picks the catalog format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.Newf("unsupported catalog extension %q", filepath.Ext(path))
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*Catalog, error) {
	var c Catalog
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &c)
	case FormatTOML:
		err = toml.Unmarshal(data, &c)
	case FormatJSON:
		err = json.Unmarshal(data, &c)
	default:
		return nil, errors.Newf("unknown catalog format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s catalog", format)
	}
	return &c, nil
}

// ReadFile reads and decodes one catalog file.
func ReadFile(path string) (*Catalog, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog %s", path)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return c, nil
}

// Load reads every catalog file and merges them into one provider. A path
// naming a directory loads every catalog file directly inside it.
func Load(paths ...string) (*Provider, error) {
	var catalogs []*Catalog
	for _, path := range paths {
		files, err := expand(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			c, err := ReadFile(f)
			if err != nil {
				return nil, err
			}
			catalogs = append(catalogs, c)
		}
	}
	return New(catalogs...)
}

func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading catalog %s", path)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", path)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatOf(e.Name()); err == nil {
			out = append(out, filepath.Join(path, e.Name()))
		}
	}
	return out, nil
}
