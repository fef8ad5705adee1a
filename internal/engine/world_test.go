package engine

import (
	"testing"

	"github.com/kr/pretty"
)

// blockSnap is a deep copy of the observable state of one block, used to
// compare worlds across operations.
type blockSnap struct {
	Key      BlockKey
	Kind     ProtoKind
	Position Position
	Interior [][]BlockKey
}

func snapshot(w *World) []blockSnap {
	var snaps []blockSnap
	for _, block := range w.Blocks() {
		interior := make([][]BlockKey, len(block.State.Interior))
		for x, column := range block.State.Interior {
			interior[x] = append([]BlockKey(nil), column...)
		}
		snaps = append(snaps, blockSnap{
			Key:      block.Key,
			Kind:     block.Proto.Kind,
			Position: block.State.Position,
			Interior: interior,
		})
	}
	return snaps
}

func assertUnchanged(t *testing.T, before, after []blockSnap) {
	t.Helper()
	if diff := pretty.Diff(before, after); len(diff) > 0 {
		t.Errorf("expected the world to be unchanged:")
		for _, line := range diff {
			t.Errorf("  %s", line)
		}
	}
}

func assertPosition(t *testing.T, w *World, key BlockKey, want Position) {
	t.Helper()
	if got := w.Position(key); got != want {
		t.Errorf("expected position %v, got %v", want, got)
	}
}

// checkIntegrity verifies position/interior agreement, bounds and
// occupant uniqueness for every live block.
func checkIntegrity(t *testing.T, w *World) {
	t.Helper()

	for _, block := range w.Blocks() {
		pos := block.State.Position
		if !pos.IsOrphan() {
			container := w.Block(pos.Container)
			if container == nil {
				t.Errorf("%v is contained in a stale key", block.Key)
				continue
			}
			if !container.Proto.contains(pos.X, pos.Y) {
				t.Errorf("%v sits out of bounds at %v", block.Key, pos)
				continue
			}
			if got := container.State.Interior[pos.X][pos.Y]; got != block.Key {
				t.Errorf("interior cell at %v holds %v, not %v", pos, got, block.Key)
			}
		}

		for x, column := range block.State.Interior {
			for y, child := range column {
				if child.IsZero() {
					continue
				}
				childBlock := w.Block(child)
				if childBlock == nil {
					t.Errorf("interior of %v holds stale key %v", block.Key, child)
					continue
				}
				if want := Inside(block.Key, x, y); childBlock.State.Position != want {
					t.Errorf("%v recorded at %v but found in cell %v",
						child, childBlock.State.Position, want)
				}
			}
		}
	}
}

func TestWorldInsert(t *testing.T) {
	w := NewWorld()
	key := w.Insert(WallProto())

	if w.Len() != 1 {
		t.Fatalf("expected 1 block, got %d", w.Len())
	}
	if w.Block(key).Proto.Kind != Wall {
		t.Errorf("expected a wall, got %v", w.Block(key).Proto.Kind)
	}
	if !w.Position(key).IsOrphan() {
		t.Error("a fresh block must start orphan")
	}
}

func TestWorldRemove(t *testing.T) {
	w := NewWorld()
	key := w.Insert(WallProto())
	w.Remove(key)

	if w.Len() != 0 {
		t.Fatalf("expected 0 blocks, got %d", w.Len())
	}
	if w.Block(key) != nil {
		t.Error("a removed key must go stale")
	}
}

func TestWorldPlace(t *testing.T) {
	w := NewWorld()
	container1 := w.Insert(BoxProto(Size{5, 5}))
	container2 := w.Insert(BoxProto(Size{5, 5}))
	block := w.Insert(BoxProto(Size{5, 5}))

	w.Place(block, Inside(container1, 2, 1))
	if got := w.Block(container1).State.Interior[2][1]; got != block {
		t.Errorf("expected cell (2, 1) to hold the block, got %v", got)
	}
	assertPosition(t, w, block, Inside(container1, 2, 1))

	w.Place(block, Inside(container2, 3, 3))
	if got := w.Block(container1).State.Interior[2][1]; !got.IsZero() {
		t.Errorf("expected the old cell to be cleared, got %v", got)
	}
	if got := w.Block(container2).State.Interior[3][3]; got != block {
		t.Errorf("expected cell (3, 3) to hold the block, got %v", got)
	}
	assertPosition(t, w, block, Inside(container2, 3, 3))

	// A block may be placed inside itself.
	w.Place(block, Inside(block, 1, 1))
	if got := w.Block(container2).State.Interior[3][3]; !got.IsZero() {
		t.Errorf("expected the old cell to be cleared, got %v", got)
	}
	if got := w.Block(block).State.Interior[1][1]; got != block {
		t.Errorf("expected the block to contain itself, got %v", got)
	}
	assertPosition(t, w, block, Inside(block, 1, 1))

	checkIntegrity(t, w)
}

func TestWorldKeysAreStable(t *testing.T) {
	w := NewWorld()
	a := w.Insert(WallProto())
	b := w.Insert(WallProto())
	w.Remove(a)

	if w.Block(b) == nil {
		t.Fatal("removing one block must not invalidate others")
	}

	c := w.Insert(WallProto())
	if w.Block(a) != nil {
		t.Error("a stale key must not resolve after its slot is reused")
	}
	if c == a {
		t.Error("a reused slot must produce a distinct key")
	}
}

func TestWorldBackReferences(t *testing.T) {
	w := NewWorld()
	target := w.Insert(BoxProto(Size{2, 2}))
	alias1 := w.Insert(AliasProto(target))
	alias2 := w.Insert(AliasProto(target))
	infinity := w.Insert(InfinityProto(target))
	epsilon := w.Insert(EpsilonProto(Size{1, 1}, target))

	info := w.Block(target).Info
	if len(info.References) != 2 {
		t.Errorf("expected 2 alias references, got %d", len(info.References))
	}
	for _, alias := range []BlockKey{alias1, alias2} {
		if _, ok := info.References[alias]; !ok {
			t.Errorf("expected %v among the references", alias)
		}
	}
	if info.Infinity != infinity {
		t.Errorf("expected infinity back-reference %v, got %v", infinity, info.Infinity)
	}
	if info.Epsilon != epsilon {
		t.Errorf("expected epsilon back-reference %v, got %v", epsilon, info.Epsilon)
	}
}

func TestWorldRemoveUnregistersBackReference(t *testing.T) {
	w := NewWorld()
	target := w.Insert(BoxProto(Size{2, 2}))
	alias := w.Insert(AliasProto(target))
	infinity := w.Insert(InfinityProto(target))

	w.Remove(alias)
	if _, ok := w.Block(target).Info.References[alias]; ok {
		t.Error("removing an alias must unregister it from its target")
	}

	w.Remove(infinity)
	if !w.Block(target).Info.Infinity.IsZero() {
		t.Error("removing an infinity must unregister it from its target")
	}
}

func TestWorldRemoveCascades(t *testing.T) {
	w := NewWorld()
	target := w.Insert(BoxProto(Size{2, 2}))
	alias := w.Insert(AliasProto(target))
	infinity := w.Insert(InfinityProto(target))
	epsilon := w.Insert(EpsilonProto(Size{1, 1}, target))
	child := w.Insert(WallProto())
	w.Place(child, Inside(target, 0, 1))

	w.Remove(target)

	for _, key := range []BlockKey{target, alias, infinity, epsilon} {
		if w.Block(key) != nil {
			t.Errorf("expected %v to be removed in cascade", key)
		}
	}
	if w.Block(child) == nil {
		t.Fatal("children must be orphaned, not removed")
	}
	if !w.Position(child).IsOrphan() {
		t.Errorf("expected the child to be orphan, got %v", w.Position(child))
	}
}

func TestWorldRemoveSelfContained(t *testing.T) {
	w := NewWorld()
	block := w.Insert(BoxProto(Size{1, 1}))
	w.Place(block, Inside(block, 0, 0))

	w.Remove(block)
	if w.Len() != 0 {
		t.Fatalf("expected an empty world, got %d blocks", w.Len())
	}
}

func TestWorldBlocksOrderIsDeterministic(t *testing.T) {
	build := func() *World {
		w := NewWorld()
		w.Insert(BoxProto(Size{2, 2}))
		w.Insert(WallProto())
		w.Insert(BoxProto(Size{3, 3}))
		return w
	}

	first := build()
	second := build()
	if diff := pretty.Diff(snapshot(first), snapshot(second)); len(diff) > 0 {
		t.Errorf("identical histories must produce identical worlds: %v", diff)
	}
}
