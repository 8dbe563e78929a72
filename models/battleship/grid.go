package battleship

import "strings"

const GridSize int = 10

const (
	ValidLowerBound int = 0
	ValidUpperBound int = GridSize - 1
)

// Marker is the character a cell is rendered with.
// The zero value marks an overlay cell that was never attacked.
type Marker byte

const (
	MarkerNone       Marker = 0
	MarkerWater      Marker = '_'
	MarkerHit        Marker = 'X'
	MarkerMiss       Marker = 'O'
	MarkerCarrier    Marker = 'C'
	MarkerBattleship Marker = 'B'
	MarkerCruiser    Marker = 'R'
	MarkerSubmarine  Marker = 'S'
	MarkerDestroyer  Marker = 'D'
)

// IsLayoutMarker reports whether m may appear in a board layout file.
func (m Marker) IsLayoutMarker() bool {
	if m == MarkerWater {
		return true
	}
	_, ok := ShipTypeFromMarker(m)
	return ok
}

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

func (c Coordinates) InBounds() bool {
	return c.X >= ValidLowerBound && c.X <= ValidUpperBound &&
		c.Y >= ValidLowerBound && c.Y <= ValidUpperBound
}

// Grid is indexed as grid[x][y]; x selects the row.
type Grid [GridSize][GridSize]Marker

// Creates a grid with every cell set to water
func NewWaterGrid() Grid {
	var grid Grid
	for x := range grid {
		for y := range grid[x] {
			grid[x][y] = MarkerWater
		}
	}
	return grid
}

func (g Grid) At(c Coordinates) Marker {
	return g[c.X][c.Y]
}

// Rows returns every row as its concatenated cell characters.
// Unattacked cells are rendered as water.
func (g Grid) Rows() []string {
	rows := make([]string, GridSize)
	for x := range g {
		var sb strings.Builder
		sb.Grow(GridSize)
		for _, m := range g[x] {
			if m == MarkerNone {
				m = MarkerWater
			}
			sb.WriteByte(byte(m))
		}
		rows[x] = sb.String()
	}
	return rows
}

func (g Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
