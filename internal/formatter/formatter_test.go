package formatter

import (
	"testing"

	"github.com/fatih/color"

	"nestbox/internal/engine"
)

// runeFmt maps keys to fixed characters without styling.
type runeFmt map[engine.BlockKey]rune

func (f runeFmt) Repr(key engine.BlockKey) rune {
	if r, ok := f[key]; ok {
		return r
	}
	return '?'
}

func (f runeFmt) Style(engine.BlockKey) []color.Attribute {
	return nil
}

func TestFormatBlock(t *testing.T) {
	w := engine.NewWorld()
	container := w.Insert(engine.BoxProto(engine.Size{Width: 3, Height: 3}))
	wall := w.Insert(engine.WallProto())
	box := w.Insert(engine.BoxProto(engine.Size{Width: 1, Height: 1}))

	w.Place(wall, engine.Inside(container, 0, 0))
	w.Place(box, engine.Inside(container, 1, 1))

	cells := runeFmt{container: '0', wall: '#', box: 'b'}
	rendered := New(w, cells).FormatBlock(container).Render()

	// Rows run top down (y = 2 first); the container's own cell labels
	// the west edge at mid-height.
	want := "     \n" +
		"0  b \n" +
		"  #  \n"
	if rendered != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, rendered)
	}
}

func TestFormatJoinsHollowBlocks(t *testing.T) {
	w := engine.NewWorld()
	first := w.Insert(engine.BoxProto(engine.Size{Width: 1, Height: 1}))
	w.Insert(engine.WallProto())
	second := w.Insert(engine.BoxProto(engine.Size{Width: 1, Height: 1}))

	cells := runeFmt{first: 'a', second: 'b'}
	rendered := New(w, cells).Format(2).Render()

	// Solid blocks are not drawn on their own; the two hollow blocks
	// are joined with two columns of spacing.
	want := "a    b  \n"
	if rendered != want {
		t.Errorf("expected %q, got %q", want, rendered)
	}
}
