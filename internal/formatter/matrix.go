package formatter

import (
	"strings"

	"github.com/fatih/color"
)

// Cell is one styled character of a rendered world.
type Cell struct {
	Repr  rune
	Style *color.Color
}

// NewCell creates a styled cell.
func NewCell(repr rune, style *color.Color) Cell {
	return Cell{Repr: repr, Style: style}
}

// PlainCell creates an unstyled cell.
func PlainCell(repr rune) Cell {
	return Cell{Repr: repr}
}

func (c Cell) render() string {
	if c.Style == nil {
		return string(c.Repr)
	}
	return c.Style.Sprint(string(c.Repr))
}

func spaceCell() Cell {
	return PlainCell(' ')
}

// Matrix is a rectangular grid of cells. The first dimension is the
// y-axis, top row first.
type Matrix struct {
	cells  [][]Cell
	width  int
	height int
}

// NewMatrix creates a matrix of spaces.
func NewMatrix(width, height int) *Matrix {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = spaceCell()
		}
	}
	return &Matrix{cells: cells, width: width, height: height}
}

// Set writes the cell at (x, y).
func (m *Matrix) Set(x, y int, cell Cell) {
	m.cells[y][x] = cell
}

// Get reads the cell at (x, y).
func (m *Matrix) Get(x, y int) Cell {
	return m.cells[y][x]
}

// Width returns the matrix width.
func (m *Matrix) Width() int {
	return m.width
}

// Height returns the matrix height.
func (m *Matrix) Height() int {
	return m.height
}

// Resize grows or shrinks the matrix, padding with spaces.
func (m *Matrix) Resize(width, height int) {
	for len(m.cells) < height {
		m.cells = append(m.cells, nil)
	}
	m.cells = m.cells[:height]

	for y := range m.cells {
		for len(m.cells[y]) < width {
			m.cells[y] = append(m.cells[y], spaceCell())
		}
		m.cells[y] = m.cells[y][:width]
	}

	m.width, m.height = width, height
}

// Join appends the other matrix to the right, padding the shorter one.
func (m *Matrix) Join(other *Matrix) *Matrix {
	height := m.height
	if other.height > height {
		height = other.height
	}
	m.Resize(m.width, height)
	other.Resize(other.width, height)

	for y := 0; y < height; y++ {
		m.cells[y] = append(m.cells[y], other.cells[y]...)
	}
	m.width += other.width
	return m
}

// Render produces the terminal text, one line per row.
func (m *Matrix) Render() string {
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			sb.WriteString(m.cells[y][x].render())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// MatrixBuilder accumulates rows of cells and pads them to a rectangle.
type MatrixBuilder struct {
	rows  [][]Cell
	width int
}

// NewMatrixBuilder creates an empty builder.
func NewMatrixBuilder() *MatrixBuilder {
	return &MatrixBuilder{}
}

// PushCell appends a cell to the current row.
func (b *MatrixBuilder) PushCell(cell Cell) {
	if len(b.rows) == 0 {
		b.PushNewline()
	}
	last := len(b.rows) - 1
	b.rows[last] = append(b.rows[last], cell)
	if len(b.rows[last]) > b.width {
		b.width = len(b.rows[last])
	}
}

// PushSpace appends an unstyled space.
func (b *MatrixBuilder) PushSpace() {
	b.PushCell(spaceCell())
}

// PushString appends the characters of the string as plain cells.
func (b *MatrixBuilder) PushString(s string) {
	for _, r := range s {
		b.PushCell(PlainCell(r))
	}
}

// PushNewline starts a new row.
func (b *MatrixBuilder) PushNewline() {
	b.rows = append(b.rows, nil)
}

// Build pads every row to the widest and returns the matrix.
func (b *MatrixBuilder) Build() *Matrix {
	cells := make([][]Cell, len(b.rows))
	for y, row := range b.rows {
		padded := make([]Cell, b.width)
		copy(padded, row)
		for x := len(row); x < b.width; x++ {
			padded[x] = spaceCell()
		}
		cells[y] = padded
	}
	return &Matrix{cells: cells, width: b.width, height: len(cells)}
}
