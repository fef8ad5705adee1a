// Package engine implements a world made entirely of blocks and the
// rules for pushing them.
//
// Hollow blocks contain a grid of other blocks, and containment may be
// cyclic: a block can transitively contain itself. Pushing a block
// composes four primitive movements. A pushed block pushes the chain in
// front of it; pushed off its container's edge it exits and becomes a
// sibling of the container; pushed into a blocked neighbor it enters
// that neighbor's interior; and when entering fails too, it eats the
// neighbor by letting it enter from the opposite side. Two reference
// kinds resolve the infinite recursions these rules can produce:
// infinity blocks catch exits that loop through the same container, and
// epsilon blocks catch enterings that loop into the same target.
//
// A World is driven with Insert, Place and Remove to build a scenario,
// and Push to run the rules. Push either commits a consistent set of
// relocations or leaves the world untouched.
package engine
