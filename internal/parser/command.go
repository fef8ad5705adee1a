package parser

import (
	"fmt"

	"nestbox/internal/engine"
)

// MetaProtoType is the name-level version of a prototype: the reference
// is a block name instead of a key. Scripts talk in names; the executor
// converts them to keys against its table.
type MetaProtoType struct {
	Kind      engine.ProtoKind
	Size      engine.Size
	Reference string
}

// Ref returns the reference name for referring kinds.
func (p MetaProtoType) Ref() (string, bool) {
	switch p.Kind {
	case engine.Alias, engine.Infinity, engine.Epsilon:
		return p.Reference, true
	default:
		return "", false
	}
}

// MetaPosition is the name-level version of a position. An empty
// container name means orphan.
type MetaPosition struct {
	Container string
	X, Y      int
}

// IsOrphan reports whether the position has no container.
func (p MetaPosition) IsOrphan() bool {
	return p.Container == ""
}

func (p MetaPosition) String() string {
	if p.IsOrphan() {
		return "orphan"
	}
	return fmt.Sprintf("at (%d, %d) in #%s", p.X, p.Y, p.Container)
}

// Assertion is the optional outcome check of a push command.
type Assertion int

const (
	// AssertNone makes no assertion.
	AssertNone Assertion = iota
	// AssertMoved asserts that the push succeeded.
	AssertMoved
	// AssertStatic asserts that the push was blocked.
	AssertStatic
)

func (a Assertion) String() string {
	switch a {
	case AssertMoved:
		return "moved"
	case AssertStatic:
		return "static"
	default:
		return "none"
	}
}

// Operation is the operation of a command.
type Operation interface {
	isOperation()
}

// DefineOp defines a new block with the prototype.
type DefineOp struct {
	Proto MetaProtoType
}

// PlaceOp places a block at the position.
type PlaceOp struct {
	Position MetaPosition
}

// PushOp pushes a block in a direction with an assertion.
type PushOp struct {
	Direction engine.Direction
	Assertion Assertion
}

// ExpectOp expects a block at the position.
type ExpectOp struct {
	Position MetaPosition
}

func (DefineOp) isOperation() {}
func (PlaceOp) isOperation()  {}
func (PushOp) isOperation()   {}
func (ExpectOp) isOperation() {}

// Command is one command to execute: a target block name plus an
// operation.
type Command struct {
	Block string
	Op    Operation
}

// Define builds a define command.
func Define(block string, proto MetaProtoType) Command {
	return Command{Block: block, Op: DefineOp{Proto: proto}}
}

// Place builds a place command; an empty container means orphan.
func Place(block, container string, x, y int) Command {
	return Command{Block: block, Op: PlaceOp{Position: MetaPosition{Container: container, X: x, Y: y}}}
}

// Push builds a push command.
func Push(block string, direction engine.Direction, assertion Assertion) Command {
	return Command{Block: block, Op: PushOp{Direction: direction, Assertion: assertion}}
}

// Expect builds an expect command; an empty container means orphan.
func Expect(block, container string, x, y int) Command {
	return Command{Block: block, Op: ExpectOp{Position: MetaPosition{Container: container, X: x, Y: y}}}
}
