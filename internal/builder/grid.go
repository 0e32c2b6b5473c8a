package builder

import (
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/image-builder-mcp/internal/palette"
)

// Location is a block coordinate in the world.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Add returns l offset by (dx, dy, dz).
func (l Location) Add(dx, dy, dz int) Location {
	return Location{X: l.X + dx, Y: l.Y + dy, Z: l.Z + dz}
}

// Grid is a width × height grid of labels indexed by (x, z). Image column x
// and row y map to grid cell (x, z=y).
type Grid struct {
	width, height int
	cells         []string
}

// NewGrid returns an unfilled grid. Zero-sized grids are allowed.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{width: width, height: height, cells: make([]string, width*height)}
}

// Width returns the number of columns (x).
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows (z).
func (g *Grid) Height() int { return g.height }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// At returns the label at (x, z).
func (g *Grid) At(x, z int) string {
	return g.cells[g.index(x, z)]
}

// Set stores label at (x, z).
func (g *Grid) Set(x, z int, label string) {
	g.cells[g.index(x, z)] = label
}

func (g *Grid) index(x, z int) int {
	if x < 0 || x >= g.width || z < 0 || z >= g.height {
		panic(fmt.Sprintf("builder: grid index (%d,%d) out of range %dx%d", x, z, g.width, g.height))
	}
	return z*g.width + x
}

// Rows returns the labels row by row: Rows()[z][x].
func (g *Grid) Rows() [][]string {
	rows := make([][]string, g.height)
	for z := range rows {
		rows[z] = append([]string(nil), g.cells[z*g.width:(z+1)*g.width]...)
	}
	return rows
}

// Placement is one block to place.
type Placement struct {
	Location Location `json:"location"`
	Label    string   `json:"label"`
}

// Placements lists one placement per cell at origin + (x, 0, z), in x-major
// order (all of column 0, then column 1, ...).
func (g *Grid) Placements(origin Location) []Placement {
	out := make([]Placement, 0, len(g.cells))
	for x := 0; x < g.width; x++ {
		for z := 0; z < g.height; z++ {
			out = append(out, Placement{Location: origin.Add(x, 0, z), Label: g.At(x, z)})
		}
	}
	return out
}

// LabelCount is the number of cells carrying a label.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Counts returns per-label cell counts, most frequent first, ties by label.
func (g *Grid) Counts() []LabelCount {
	m := make(map[string]int)
	for _, c := range g.cells {
		m[c]++
	}
	out := make([]LabelCount, 0, len(m))
	for label, n := range m {
		out = append(out, LabelCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Render paints the grid back into an image using each label's palette
// color. Labels missing from p are drawn transparent.
func (g *Grid) Render(p *palette.Palette) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	colors := make(map[string]palette.Color)
	for x := 0; x < g.width; x++ {
		for z := 0; z < g.height; z++ {
			label := g.At(x, z)
			c, ok := colors[label]
			if !ok {
				c, _ = p.ColorOf(label)
				colors[label] = c
			}
			img.Set(x, z, c)
		}
	}
	return img
}
