package maze

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Maze-Combat/internal/sim"
)

// Document is the on-disk map format:
//
//	name: crossroads
//	tile_size: 50
//	layout: |
//	  #####
//	  #...#
//	  #####
type Document struct {
	Name     string  `yaml:"name"`
	TileSize float64 `yaml:"tile_size,omitempty"`
	Layout   string  `yaml:"layout"`
}

// DecodeDocument reads a YAML map document. Unknown keys are rejected.
func DecodeDocument(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, fmt.Errorf("%w: empty document", ErrBadLayout)
		}
		return doc, fmt.Errorf("maze: decode document: %w", err)
	}
	if doc.TileSize < 0 {
		return doc, fmt.Errorf("%w: negative tile_size", ErrBadLayout)
	}
	return doc, nil
}

// Grid builds the document's grid. A document without tile_size uses the
// fallback.
func (d Document) Grid(fallbackTile float64) (*sim.Grid, error) {
	tile := d.TileSize
	if tile == 0 {
		tile = fallbackTile
	}
	g, err := ParseGrid(d.Layout, tile)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", d.Name, err)
	}
	return g, nil
}

// Encode writes the document as YAML.
func (d Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("maze: encode document: %w", err)
	}
	return enc.Close()
}

// LoadDocument reads a map file. Files ending in .txt are plain layouts;
// anything else is parsed as YAML.
func LoadDocument(path string) (Document, error) {
	f, err := os.Open(path) // #nosec G304 -- user-selected map file
	if err != nil {
		return Document{}, fmt.Errorf("maze: open %s: %w", path, err)
	}
	defer f.Close()

	if filepath.Ext(path) == ".txt" {
		b, err := io.ReadAll(f)
		if err != nil {
			return Document{}, fmt.Errorf("maze: read %s: %w", path, err)
		}
		return Document{Name: path, Layout: string(b)}, nil
	}
	doc, err := DecodeDocument(f)
	if err != nil {
		return doc, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = path
	}
	return doc, nil
}
