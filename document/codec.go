package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/draganimate/rig"
)

// WriteJSON writes g as indented JSON.
func WriteJSON(w io.Writer, g *Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("document: encode json: %w", err)
	}
	return nil
}

// ReadJSON reads a graph written by WriteJSON or by the Drag Animate editor.
func ReadJSON(r io.Reader) (*Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("document: decode json: %w", err)
	}
	return &g, nil
}

// WriteYAML writes g as YAML.
func WriteYAML(w io.Writer, g *Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("document: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("document: close yaml: %w", err)
	}
	return nil
}

// ReadYAML reads a graph written by WriteYAML.
func ReadYAML(r io.Reader) (*Graph, error) {
	var g Graph
	if err := yaml.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("document: decode yaml: %w", err)
	}
	return &g, nil
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Save encodes scene and writes it to path. The format follows the file
// extension: .json, .yaml or .yml.
func Save(path string, scene *rig.Scene) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	g, err := Encode(scene)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch f {
	case formatJSON:
		err = WriteJSON(&buf, g)
	case formatYAML:
		err = WriteYAML(&buf, g)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("document: write %s: %w", path, err)
	}
	rig.Logger().Info("document saved", "path", path, "objects", len(g.Objects))
	return nil
}

// Load reads and decodes the scene stored at path. The format follows the
// file extension, as for Save.
func Load(path string, opts ...rig.Option) (*rig.Scene, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("document: open %s: %w", path, err)
	}
	defer file.Close()

	var g *Graph
	switch f {
	case formatJSON:
		g, err = ReadJSON(file)
	case formatYAML:
		g, err = ReadYAML(file)
	}
	if err != nil {
		return nil, err
	}
	return Decode(g, opts...)
}
