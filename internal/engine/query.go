package engine

// positionState classifies a position for the movement algorithm.
type positionState uint8

const (
	// stateVoid is an orphan position, never a legal destination.
	stateVoid positionState = iota
	// stateOutOfBound is outside the container's interior.
	stateOutOfBound
	// stateEmpty is an unoccupied in-bounds cell.
	stateEmpty
	// statePresent is an in-bounds cell holding a block.
	statePresent
)

// positionState classifies the position, additionally returning the
// occupant when present.
func (w *World) positionState(position Position) (positionState, BlockKey) {
	if position.IsOrphan() {
		return stateVoid, BlockKey{}
	}

	container := w.mustBlock(position.Container)
	if !container.Proto.contains(position.X, position.Y) {
		return stateOutOfBound, BlockKey{}
	}

	occupant := container.State.Interior[position.X][position.Y]
	if occupant.IsZero() {
		return stateEmpty, BlockKey{}
	}
	return statePresent, occupant
}

// inVoid reports whether the position is directly inside a void block.
func (w *World) inVoid(position Position) bool {
	if position.IsOrphan() {
		return false
	}
	return w.mustBlock(position.Container).Proto.IsVoid()
}
