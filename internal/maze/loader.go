package maze

import "github.com/Garsondee/Maze-Combat/internal/sim"

// TextLoader loads a grid from an in-memory layout. An empty layout loads
// DefaultLayout.
type TextLoader struct {
	Layout   string
	TileSize float64
}

func (l TextLoader) LoadGrid() (*sim.Grid, error) {
	if l.Layout == "" {
		return DefaultGrid(l.TileSize)
	}
	return ParseGrid(l.Layout, l.TileSize)
}

// FileLoader loads a grid from a YAML map document or a .txt layout.
type FileLoader struct {
	Path     string
	TileSize float64 // used when the document has no tile_size
}

func (l FileLoader) LoadGrid() (*sim.Grid, error) {
	doc, err := LoadDocument(l.Path)
	if err != nil {
		return nil, err
	}
	return doc.Grid(l.TileSize)
}

// GeneratedLoader builds a fresh procedural maze.
type GeneratedLoader struct {
	GenConfig
	TileSize float64
}

func (l GeneratedLoader) LoadGrid() (*sim.Grid, error) {
	return GenerateGrid(l.GenConfig, l.TileSize)
}

// Loader picks the loader for the usual command-line inputs: a map file
// wins over generation, which wins over the built-in layout.
func Loader(path string, generate bool, gen GenConfig, tileSize float64) sim.MapLoader {
	switch {
	case path != "":
		return FileLoader{Path: path, TileSize: tileSize}
	case generate:
		return GeneratedLoader{GenConfig: gen, TileSize: tileSize}
	default:
		return TextLoader{TileSize: tileSize}
	}
}
