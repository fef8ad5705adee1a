package formatter

import (
	"github.com/fatih/color"

	"nestbox/internal/engine"
)

// CellFmt maps block keys to their rendered character and style. The
// caller owns the mapping; the formatter only draws.
type CellFmt interface {
	Repr(key engine.BlockKey) rune
	Style(key engine.BlockKey) []color.Attribute
}

// Formatter renders the hollow blocks of a world side by side. Each
// hollow block is drawn as its interior rectangle with the y-axis
// pointing up, labeled on the west edge with the block's own cell at
// mid-height.
type Formatter struct {
	world      *engine.World
	cells      CellFmt
	background []color.Attribute
}

// New creates a formatter over the world with the given cell mapping.
func New(world *engine.World, cells CellFmt) *Formatter {
	return &Formatter{world: world, cells: cells}
}

// WithBackground adds background attributes to every rendered cell.
func (f *Formatter) WithBackground(background ...color.Attribute) *Formatter {
	f.background = background
	return f
}

func (f *Formatter) formatCell(key engine.BlockKey) Cell {
	return NewCell(f.cells.Repr(key), f.style(f.cells.Style(key)))
}

func (f *Formatter) blankCell() Cell {
	return NewCell(' ', f.style(nil))
}

func (f *Formatter) style(attrs []color.Attribute) *color.Color {
	combined := append(append([]color.Attribute(nil), attrs...), f.background...)
	if len(combined) == 0 {
		return nil
	}
	return color.New(combined...)
}

// FormatBlock renders one hollow block.
func (f *Formatter) FormatBlock(key engine.BlockKey) *Matrix {
	builder := NewMatrixBuilder()

	block := f.world.Block(key)
	size := block.Proto.InteriorSize()

	for y := size.Height - 1; y >= 0; y-- {
		builder.PushNewline()

		if y == size.Height/2 {
			builder.PushCell(f.formatCell(key))
			builder.PushSpace()
		} else {
			builder.PushSpace()
			builder.PushSpace()
		}

		for x := 0; x < size.Width; x++ {
			if occupant := block.State.Interior[x][y]; !occupant.IsZero() {
				builder.PushCell(f.formatCell(occupant))
			} else {
				builder.PushCell(f.blankCell())
			}
		}
	}

	return builder.Build()
}

// Format renders every hollow block, joined with the given spacing.
func (f *Formatter) Format(spaceBetween int) *Matrix {
	var joined *Matrix
	for _, block := range f.world.Blocks() {
		if !block.Proto.IsHollow() {
			continue
		}
		rendered := f.FormatBlock(block.Key)
		if joined == nil {
			joined = rendered
		} else {
			joined = joined.Join(NewMatrix(spaceBetween, 0)).Join(rendered)
		}
	}
	if joined == nil {
		return NewMatrix(0, 0)
	}
	return joined
}
