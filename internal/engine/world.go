package engine

import "github.com/golang/glog"

// World holds all the blocks and implements the game operations. The only
// verb that runs game rules is Push; Insert, Remove and Place are for
// building scenarios.
//
// A World is not safe for concurrent use; callers serialize Push with any
// other mutation.
type World struct {
	blocks store
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// Insert creates a block with the given prototype, returning its key. The
// block starts orphan with an empty interior. If the prototype refers to
// another block, the back-reference on the target is registered here.
func (w *World) Insert(proto Proto) BlockKey {
	key := w.blocks.insert(func(key BlockKey) *Block {
		return newBlock(key, proto)
	})

	switch proto.Kind {
	case Alias:
		w.mustBlock(proto.Reference).Info.References[key] = struct{}{}
	case Infinity:
		w.mustBlock(proto.Reference).Info.Infinity = key
	case Epsilon:
		w.mustBlock(proto.Reference).Info.Epsilon = key
	}

	glog.V(2).Infof("insert %v as %v", proto.Kind, key)
	return key
}

// Remove deletes the block. Its children are orphaned, the back-reference
// it may hold on another block is unregistered, and every block referring
// to it (aliases, infinity, epsilon) is removed in cascade.
func (w *World) Remove(key BlockKey) {
	block := w.mustBlock(key)

	// Clear the interior cell of the container, if any.
	if container := w.blocks.get(block.State.Position.Container); container != nil {
		container.State.Interior[block.State.Position.X][block.State.Position.Y] = BlockKey{}
	}

	w.blocks.remove(key)
	glog.V(2).Infof("remove %v", key)

	// Unregister the back-reference this block held on its target.
	if ref, ok := block.Proto.Ref(); ok {
		if target := w.blocks.get(ref); target != nil {
			switch block.Proto.Kind {
			case Alias:
				delete(target.Info.References, key)
			case Infinity:
				if target.Info.Infinity == key {
					target.Info.Infinity = BlockKey{}
				}
			case Epsilon:
				if target.Info.Epsilon == key {
					target.Info.Epsilon = BlockKey{}
				}
			}
		}
	}

	// Orphan the children.
	for _, column := range block.State.Interior {
		for _, child := range column {
			if !child.IsZero() {
				w.Place(child, Orphan())
			}
		}
	}

	// Cascade to the reference owners.
	for alias := range block.Info.References {
		if w.blocks.get(alias) != nil {
			w.Remove(alias)
		}
	}
	if !block.Info.Infinity.IsZero() && w.blocks.get(block.Info.Infinity) != nil {
		w.Remove(block.Info.Infinity)
	}
	if !block.Info.Epsilon.IsZero() && w.blocks.get(block.Info.Epsilon) != nil {
		w.Remove(block.Info.Epsilon)
	}
}

// Place moves the block to the position, updating the interior cells on
// both sides. Place does not run game rules; placing outside a
// container's bounds or onto an occupied cell is a programmer error.
func (w *World) Place(key BlockKey, position Position) {
	block := w.mustBlock(key)

	if current := w.blocks.get(block.State.Position.Container); current != nil {
		current.State.Interior[block.State.Position.X][block.State.Position.Y] = BlockKey{}
	}

	if target := w.blocks.get(position.Container); target != nil {
		target.State.Interior[position.X][position.Y] = key
	}

	block.State.Position = position
}

// Position returns the block's recorded position.
func (w *World) Position(key BlockKey) Position {
	return w.mustBlock(key).State.Position
}

// Block returns the block record for the key, or nil for a stale key.
func (w *World) Block(key BlockKey) *Block {
	return w.blocks.get(key)
}

// Blocks returns the live blocks in a deterministic order.
func (w *World) Blocks() []*Block {
	return w.blocks.all()
}

// Len returns the number of live blocks.
func (w *World) Len() int {
	return w.blocks.len()
}

func (w *World) mustBlock(key BlockKey) *Block {
	block := w.blocks.get(key)
	if block == nil {
		panic("engine: invalid block key " + key.String())
	}
	return block
}
