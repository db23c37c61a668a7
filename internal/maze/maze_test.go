package maze

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Maze-Combat/internal/sim"
)

// connected reports whether every walkable cell is 4-connected to the
// first one.
func connected(g *sim.Grid) bool {
	cells := g.Walkable()
	seen := map[sim.Cell]bool{cells[0]: true}
	stack := []sim.Cell{cells[0]}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := sim.Cell{Col: c.Col + d[0], Row: c.Row + d[1]}
			if !seen[n] && g.IsWalkable(n.Col, n.Row) {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return len(seen) == len(cells)
}

func TestParse(t *testing.T) {
	rows, err := Parse(strings.NewReader("\n#.1\n0 #\n\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]bool{{true, false, true}, {false, false, true}}, rows)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"ragged":     "###\n##\n",
		"bad char":   "#x#\n",
		"empty":      "\n\n",
		"blank line": "###\n\n###\n",
	}
	for name, layout := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(layout))
			assert.ErrorIs(t, err, ErrBadLayout)
		})
	}
}

func TestDefaultGrid(t *testing.T) {
	g, err := DefaultGrid(50)
	require.NoError(t, err)
	assert.Equal(t, 24, g.Cols())
	assert.Equal(t, 18, g.Rows())
	assert.Equal(t, 210, g.WalkableCount())
	assert.True(t, connected(g), "default layout must be one connected region")

	// Border is solid.
	for c := 0; c < g.Cols(); c++ {
		assert.True(t, g.IsBlocked(c, 0))
		assert.True(t, g.IsBlocked(c, g.Rows()-1))
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	g, err := DefaultGrid(50)
	require.NoError(t, err)
	again, err := ParseGrid(Format(g), 50)
	require.NoError(t, err)
	assert.Equal(t, Format(g), Format(again))
	assert.Equal(t, strings.TrimSpace(DefaultLayout), strings.TrimSpace(Format(g)))
}

func TestGenerate(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g, err := GenerateGrid(GenConfig{Cols: 24, Rows: 18, Braid: 0.4, Seed: seed}, 50)
		require.NoError(t, err)
		assert.Equal(t, 23, g.Cols())
		assert.Equal(t, 17, g.Rows())
		assert.True(t, connected(g), "seed %d produced a disconnected maze", seed)
		assert.True(t, g.IsWalkable(1, 1))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := GenConfig{Cols: 31, Rows: 21, Braid: 0.3, Seed: 99}
	assert.Equal(t, Generate(cfg), Generate(cfg))
	cfg2 := cfg
	cfg2.Seed = 100
	assert.NotEqual(t, Generate(cfg), Generate(cfg2))
}

func TestGenerate_BraidAddsFloor(t *testing.T) {
	count := func(b float64) int {
		g, err := GenerateGrid(GenConfig{Cols: 41, Rows: 31, Braid: b, Seed: 5}, 50)
		require.NoError(t, err)
		return g.WalkableCount()
	}
	assert.Greater(t, count(1), count(0))
}

func TestGenerate_TinySizesClamp(t *testing.T) {
	walls := Generate(GenConfig{Cols: 1, Rows: 2})
	assert.Len(t, walls, 5)
	assert.Len(t, walls[0], 5)
}

func TestDocument_DecodeAndGrid(t *testing.T) {
	src := "name: box\ntile_size: 40\nlayout: |\n  #####\n  #...#\n  #####\n"
	doc, err := DecodeDocument(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "box", doc.Name)

	g, err := doc.Grid(50)
	require.NoError(t, err)
	assert.Equal(t, 40.0, g.TileSize())
	assert.Equal(t, 3, g.WalkableCount())
}

func TestDocument_FallbackTile(t *testing.T) {
	doc := Document{Name: "x", Layout: "..\n"}
	g, err := doc.Grid(50)
	require.NoError(t, err)
	assert.Equal(t, 50.0, g.TileSize())
}

func TestDocument_Errors(t *testing.T) {
	_, err := DecodeDocument(strings.NewReader("name: a\nwalls: 3\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = DecodeDocument(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrBadLayout)

	_, err = DecodeDocument(strings.NewReader("layout: '#'\ntile_size: -1\n"))
	assert.ErrorIs(t, err, ErrBadLayout)

	_, err = Document{Name: "bad", Layout: "#?#"}.Grid(50)
	assert.ErrorIs(t, err, ErrBadLayout)
}

func TestDocument_EncodeRoundTrip(t *testing.T) {
	doc := Document{Name: "ring", TileSize: 50, Layout: "###\n#.#\n###\n"}
	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	back, err := DecodeDocument(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestLoaders(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "arena.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("layout: |\n  ....\n  .##.\n"), 0o600))
	txtPath := filepath.Join(dir, "arena.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("#..#\n"), 0o600))

	tests := []struct {
		name     string
		loader   sim.MapLoader
		walkable int
	}{
		{"default text", TextLoader{TileSize: 50}, 210},
		{"inline text", TextLoader{Layout: "..#", TileSize: 50}, 2},
		{"yaml file", FileLoader{Path: yamlPath, TileSize: 50}, 6},
		{"txt file", FileLoader{Path: txtPath, TileSize: 50}, 2},
		{"generated", GeneratedLoader{GenConfig: GenConfig{Cols: 11, Rows: 11, Seed: 1}, TileSize: 50}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := tt.loader.LoadGrid()
			require.NoError(t, err)
			if tt.walkable >= 0 {
				assert.Equal(t, tt.walkable, g.WalkableCount())
			}
			assert.True(t, connected(g) || tt.name == "txt file")
		})
	}

	_, err := FileLoader{Path: filepath.Join(dir, "missing.yaml"), TileSize: 50}.LoadGrid()
	assert.Error(t, err)
}

func TestLoader_Selection(t *testing.T) {
	assert.IsType(t, FileLoader{}, Loader("a.yaml", true, GenConfig{}, 50))
	assert.IsType(t, GeneratedLoader{}, Loader("", true, GenConfig{}, 50))
	assert.IsType(t, TextLoader{}, Loader("", false, GenConfig{}, 50))
}
