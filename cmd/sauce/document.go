package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sambeau/sauce/config"
	"github.com/sambeau/sauce/pkg/sauce"
)

// readDocument decodes the file at path into an Object. An empty path or an
// empty file gives an empty Object.
func readDocument(path string, shell config.ShellConfig) (*sauce.Object, error) {
	if path == "" {
		return sauce.NewObject(nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	format := shell.Format
	if format == "auto" {
		format = formatFromExt(path)
	}
	value, err := sauce.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if shell.Recursive {
		return sauce.NewRecursiveObject(value), nil
	}
	return sauce.NewObject(value), nil
}

// openDocument loads the document the shell works on, denying writes when
// the shell is read only.
func openDocument(path string, shell config.ShellConfig) (any, error) {
	doc, err := readDocument(path, shell)
	if err != nil {
		return nil, err
	}
	if shell.ReadOnly {
		return sauce.NewImmutableObject(doc), nil
	}
	return doc, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	return "auto"
}
