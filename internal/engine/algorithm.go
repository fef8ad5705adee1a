package engine

import "github.com/golang/glog"

// algorithm is the per-push state of the movement resolver. The traversal
// reads the world and accumulates tentative movements; nothing is written
// back before commit, so a failed or erroring push leaves the world
// exactly as it was.
type algorithm struct {
	world *World

	// trace records every block in the push recursion, so a push chain
	// that loops back onto itself is detected and collapsed into a
	// rotation.
	trace *cycle[BlockKey, struct{}]
	// movements is the ordered list of tentative relocations.
	movements []movement
	// positioned is the set of target positions already claimed.
	positioned map[Position]struct{}
}

func newAlgorithm(world *World) *algorithm {
	return &algorithm{
		world:      world,
		trace:      newCycle[BlockKey, struct{}](),
		positioned: make(map[Position]struct{}),
	}
}

// Push pushes the block in the direction.
//
// It returns true if some movement occurred, false if the push was
// blocked, and an error when the traversal hit an unresolvable
// configuration (see MoveError). On false or error the world is
// unchanged.
func (w *World) Push(key BlockKey, direction Direction) (bool, error) {
	a := newAlgorithm(w)

	moved, err := a.push(key, direction)
	if err != nil {
		return false, err
	}
	if moved {
		a.commit()
	}
	return moved, nil
}

// push starts a push of one block: static blocks never move, orphan
// blocks have nowhere to be pushed, everything else resolves through
// pushFrom with a centered crossing fraction.
func (a *algorithm) push(key BlockKey, direction Direction) (bool, error) {
	block := a.world.mustBlock(key)
	if block.Proto.IsStatic() {
		return false, nil
	}
	position := block.State.Position
	if position.IsOrphan() {
		return false, &MoveError{Kind: ErrOrphan, Key: key}
	}

	glog.V(2).Infof("push %v %v from %v", key, direction, position)
	return a.pushFrom(key, sourceArrow{position: position, direction: direction, precise: Half})
}

// sourceToTarget steps the source arrow one cell in its direction. When
// the step stays inside the container it yields the target arrow;
// otherwise it yields the exit descriptor, whose fraction folds the
// perpendicular coordinate of the crossing into the next larger scale.
func (a *algorithm) sourceToTarget(source sourceArrow) (targetArrow, exitInfo, bool) {
	dx, dy := source.direction.Delta()
	x, y := source.position.X+dx, source.position.Y+dy

	container := source.position.Container
	size := a.world.mustBlock(container).Proto.InteriorSize()

	if x < 0 || y < 0 || x >= size.Width || y >= size.Height {
		// The perpendicular coordinate is never the displaced one, so
		// offset stays within [0, total).
		var offset, total int
		switch source.direction {
		case North, South:
			offset, total = x, size.Width
		default:
			offset, total = y, size.Height
		}

		precise := source.precise.AddNat(offset).DivNat(total)
		return targetArrow{}, exitInfo{from: container, direction: source.direction, precise: precise}, false
	}

	target := targetArrow{
		position:  Inside(container, x, y),
		direction: source.direction,
		precise:   source.precise,
	}
	return target, exitInfo{}, true
}

// pushFrom resolves exits. As long as the source arrow points off its
// container's edge, the block exits: the container becomes the moving
// block one level up. Containers revisited during the walk form an exit
// cycle, resolved by substituting the container's infinity reference; the
// fraction then restarts from the value stored at the container's first
// crossing, so repeated loops produce successive scales without drift.
// Exits from a void are forbidden.
func (a *algorithm) pushFrom(key BlockKey, source sourceArrow) (bool, error) {
	exits := newCycle[BlockKey, Rational]()
	current := source

	for {
		target, info, inside := a.sourceToTarget(current)
		if inside {
			return a.pushInto(key, target, false)
		}

		for {
			stored, looped := exits.push(info.from, info.precise)
			if !looped {
				break
			}
			glog.V(2).Infof("exit cycle at %v", info.from)
			resolved, err := a.world.resolveInfinity(exitInfo{
				from:      info.from,
				direction: info.direction,
				precise:   *stored,
			})
			if err != nil {
				return false, err
			}
			info = resolved
		}

		if a.world.mustBlock(info.from).Proto.IsVoid() {
			return false, nil
		}

		next, err := a.world.exitSource(info)
		if err != nil {
			return false, err
		}
		current = next
	}
}

// pushInto resolves pushes, enterings and eatings toward a target cell.
//
// An empty target confirms directly. An occupied one first tries to push
// the resident ahead, then to enter it (chasing aliases, resolving enter
// cycles with epsilon), descending one scale per iteration. When every
// entering fails, the enter candidates are tried as eat targets in
// reverse order, most deeply nested first.
//
// eating is true while this call realizes an eating: the eaten block
// entering the eater. The first iteration then must not push the eater
// out of its own cell, and the outermost eat candidate is skipped so a
// block cannot eat the block that is eating it.
func (a *algorithm) pushInto(key BlockKey, target targetArrow, eating bool) (bool, error) {
	if _, looped := a.trace.push(key, struct{}{}); looped {
		// The push chain came back around. Confirming starts from here:
		// every block in the cycle confirms its movement on the way out
		// of the recursion, in reverse order of discovery, so the
		// confirmed subset is exactly the rotation's closed loop.
		glog.V(2).Infof("push cycle at %v", key)
		return true, nil
	}

	enters := newCycle[enterInfo, struct{}]()
	current := target
	canPush := !eating

	for {
		state, resident := a.world.positionState(current.position)

		if state == stateEmpty {
			return a.confirm(movement{key: key, target: current.position}, false), nil
		}
		if state != statePresent {
			panic("engine: target position is not valid")
		}

		m := movement{key: key, target: current.position}

		if canPush {
			moved, err := a.push(resident, current.direction)
			if err != nil {
				return false, err
			}
			if moved {
				return a.confirm(m, true), nil
			}
		}
		canPush = true

		// Entering a cell directly inside a void is forbidden.
		if a.world.inVoid(m.target) {
			break
		}

		info := a.world.chaseAlias(enterInfo{
			into:      resident,
			direction: current.direction,
			precise:   current.precise,
		})

		for {
			if _, looped := enters.push(info, struct{}{}); !looped {
				break
			}
			glog.V(2).Infof("enter cycle at %v", info.into)
			resolved, err := a.world.resolveEpsilon(info)
			if err != nil {
				return false, err
			}
			info = resolved
		}

		next, ok := a.world.enterTarget(info)
		if !ok {
			break
		}
		current = next
	}

	for {
		info, _, ok := enters.pop()
		if !ok {
			break
		}
		// The last candidate is the first enter target; while eating it
		// is the eater itself one level up, which must not be eaten back.
		if eating && enters.empty() {
			break
		}

		if a.world.mustBlock(info.into).Proto.IsStatic() {
			continue
		}

		enter := eatToEnter(eatInfo{eat: key, ate: info.into, direction: info.direction})
		enterTarget := targetArrow{
			position:  a.world.mustBlock(enter.into).State.Position,
			direction: enter.direction,
			precise:   enter.precise,
		}

		ate, err := a.pushInto(info.into, enterTarget, true)
		if err != nil {
			return false, err
		}
		if ate {
			glog.V(2).Infof("%v eats %v", key, info.into)
			return a.confirm(movement{
				key:    key,
				target: a.world.mustBlock(info.into).State.Position,
			}, true), nil
		}
	}

	a.trace.pop()
	return false, nil
}

// confirm records the movement, returning true for the caller to
// propagate. With cycling set the movement belongs to a rotation: the
// vacating block is known to move, so the movement is dropped only when
// another block of the same cycle already claimed the cell. Confirmations
// run in reverse cycle order, so the recorded subset closes the loop.
func (a *algorithm) confirm(m movement, cycling bool) bool {
	_, claimed := a.positioned[m.target]
	blocked := cycling && claimed
	glog.V(2).Infof("confirm %v -> %v (blocked: %t)", m.key, m.target, blocked)

	if !blocked {
		a.movements = append(a.movements, m)
		a.positioned[m.target] = struct{}{}
	}

	return true
}

// commit applies the tentative movements. All vacated cells are cleared
// before any new cell is written, so rotations cannot collide; positions
// and interiors stay in agreement.
func (a *algorithm) commit() {
	for _, m := range a.movements {
		block := a.world.mustBlock(m.key)
		if container := a.world.blocks.get(block.State.Position.Container); container != nil {
			container.State.Interior[block.State.Position.X][block.State.Position.Y] = BlockKey{}
		}
	}

	for _, m := range a.movements {
		block := a.world.mustBlock(m.key)
		block.State.Position = m.target
		if container := a.world.blocks.get(m.target.Container); container != nil {
			container.State.Interior[m.target.X][m.target.Y] = m.key
		}
	}
}
