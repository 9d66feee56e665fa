package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source is where a setting's value came from.
type Source struct {
	Kind   SourceKind
	File   string
	Line   int
	Column int
}

type LoadResult struct {
	Config *Config
	// Sources maps dotted keys set in the file to their position.
	Sources  map[string]Source
	File     string // empty when the file does not exist
	Warnings []Warning
}

// LoadFromPath loads the config file at path. A missing file yields defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	var raw RawConfig
	sources := map[string]Source{}
	file := ""

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	default:
		file = canonicalPath(path)
		if raw, sources, err = parseFile(file, data); err != nil {
			return nil, err
		}
	}

	cfg, warnings, err := BuildEffectiveConfig(raw)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Source = sources[verr.Path]
		}
		return nil, err
	}
	for i := range warnings {
		warnings[i].Source = sources[warnings[i].Path]
	}

	return &LoadResult{
		Config:   cfg,
		Sources:  sources,
		File:     file,
		Warnings: warnings,
	}, nil
}

func parseFile(file string, data []byte) (RawConfig, map[string]Source, error) {
	var raw RawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && err != io.EOF {
		return RawConfig{}, nil, fmt.Errorf("%s: %w", file, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RawConfig{}, nil, fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}
	sources := map[string]Source{}
	if len(doc.Content) > 0 {
		collectSources(doc.Content[0], file, "", sources)
	}
	return raw, sources, nil
}

// canonicalPath resolves path to an absolute path without symlinks where
// possible, so reported sources match what the watcher sees.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

func collectSources(node *yaml.Node, file, prefix string, out map[string]Source) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		path := key.Value
		if prefix != "" {
			path = prefix + "." + path
		}
		out[path] = Source{Kind: SourceFile, File: file, Line: val.Line, Column: val.Column}
		collectSources(val, file, path, out)
	}
}
