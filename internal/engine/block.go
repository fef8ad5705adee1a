package engine

import "fmt"

// BlockKey is the opaque, copyable handle of a block. Keys are
// generational: they stay valid across insertions and removals of other
// blocks and go stale when their own block is removed. The zero key never
// refers to a block.
type BlockKey struct {
	index uint32
	gen   uint32
}

// IsZero reports whether the key is the zero key.
func (k BlockKey) IsZero() bool {
	return k == BlockKey{}
}

func (k BlockKey) String() string {
	if k.IsZero() {
		return "key(nil)"
	}
	return fmt.Sprintf("key(%d.%d)", k.index, k.gen)
}

// Position locates a block: a container key plus cell coordinates. A
// position with the zero container key is orphan, the top of the
// containment forest.
type Position struct {
	Container BlockKey
	X, Y      int
}

// Inside returns the position at cell (x, y) of the given container.
func Inside(container BlockKey, x, y int) Position {
	return Position{Container: container, X: x, Y: y}
}

// Orphan returns the orphan position.
func Orphan() Position {
	return Position{}
}

// IsOrphan reports whether the position has no container.
func (p Position) IsOrphan() bool {
	return p.Container.IsZero()
}

func (p Position) String() string {
	if p.IsOrphan() {
		return "orphan"
	}
	return fmt.Sprintf("(%d, %d) in %v", p.X, p.Y, p.Container)
}

// State is the mutable part of a block: where it is, and what its
// interior cells hold. The interior is indexed [x][y]; the zero key marks
// an empty cell.
type State struct {
	Position Position
	Interior [][]BlockKey
}

func newState(size Size) State {
	interior := make([][]BlockKey, size.Width)
	for x := range interior {
		interior[x] = make([]BlockKey, size.Height)
	}
	return State{Interior: interior}
}

// Info holds the back-references populated when a referring block is
// inserted: the set of aliases pointing at this block, and the at most
// one infinity and one epsilon referrer.
type Info struct {
	References map[BlockKey]struct{}
	Infinity   BlockKey
	Epsilon    BlockKey
}

// Block is a block record in the world.
type Block struct {
	Key   BlockKey
	Proto Proto
	State State
	Info  Info
}

func newBlock(key BlockKey, proto Proto) *Block {
	return &Block{
		Key:   key,
		Proto: proto,
		State: newState(proto.InteriorSize()),
		Info:  Info{References: make(map[BlockKey]struct{})},
	}
}
