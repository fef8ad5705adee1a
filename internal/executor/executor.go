package executor

import (
	"fmt"
	"strings"

	"github.com/golang/glog"

	"nestbox/internal/engine"
	"nestbox/internal/errors"
	"nestbox/internal/parser"
)

// Executor runs parsed commands against a world, keeping the table of
// block names as it goes. Sources are queued with PushSource and
// executed with Step or RunAll.
type Executor struct {
	world *engine.World
	meta  *MetaTable
	queue []parser.SpannedCommand
	next  int
}

// New creates an executor over a fresh world.
func New() *Executor {
	return &Executor{
		world: engine.NewWorld(),
		meta:  NewMetaTable(),
	}
}

// PushSource parses the source and appends its commands to the queue.
func (e *Executor) PushSource(source parser.Source) error {
	commands, err := parser.Parse(source)
	if err != nil {
		return err
	}
	e.queue = append(e.queue, commands...)
	return nil
}

// HasNext reports whether commands remain to execute.
func (e *Executor) HasNext() bool {
	return e.next < len(e.queue)
}

// Step executes the next command, returning its span.
func (e *Executor) Step() (parser.Span, error) {
	if !e.HasNext() {
		return parser.Span{}, fmt.Errorf("no commands left to execute")
	}
	command := e.queue[e.next]
	e.next++

	glog.V(1).Infof("execute: %s", strings.TrimSpace(command.Span.Text()))
	if err := e.execute(command); err != nil {
		return command.Span, err
	}
	return command.Span, nil
}

// RunAll executes every queued command.
func (e *Executor) RunAll() error {
	for e.HasNext() {
		if _, err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

// World returns the executor's world.
func (e *Executor) World() *engine.World {
	return e.world
}

// Meta returns the executor's name table.
func (e *Executor) Meta() *MetaTable {
	return e.meta
}

// Take returns the world and the table, leaving the executor empty.
func (e *Executor) Take() (*engine.World, *MetaTable) {
	world, meta := e.world, e.meta
	e.world = engine.NewWorld()
	e.meta = NewMetaTable()
	e.queue = nil
	e.next = 0
	return world, meta
}

// FormatPositions renders one line per named block, sorted by name.
func (e *Executor) FormatPositions() string {
	var sb strings.Builder
	for _, name := range e.meta.Names() {
		key, _ := e.meta.GetKey(name)
		sb.WriteString("#")
		sb.WriteString(name)
		sb.WriteString(" ")
		sb.WriteString(e.describePosition(e.world.Position(key)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (e *Executor) describePosition(position engine.Position) string {
	if position.IsOrphan() {
		return "orphan"
	}
	return fmt.Sprintf("at (%d, %d) in %s", position.X, position.Y,
		e.describeKey(position.Container))
}

func (e *Executor) describeKey(key engine.BlockKey) string {
	if name, ok := e.meta.GetName(key); ok {
		return "#" + name
	}
	return key.String()
}

func (e *Executor) execute(command parser.SpannedCommand) error {
	switch op := command.Command.Op.(type) {
	case parser.DefineOp:
		return e.executeDefine(command, op)
	case parser.PlaceOp:
		return e.executePlace(command, op)
	case parser.PushOp:
		return e.executePush(command, op)
	case parser.ExpectOp:
		return e.executeExpect(command, op)
	default:
		return e.errorAt(command, errors.SyntaxError, "unknown operation")
	}
}

func (e *Executor) executeDefine(command parser.SpannedCommand, op parser.DefineOp) error {
	name := command.Command.Block
	if e.meta.ContainsName(name) {
		return e.errorAt(command, errors.DefineError,
			fmt.Sprintf("block #%s is already defined", name))
	}

	var proto engine.Proto
	switch op.Proto.Kind {
	case engine.Wall:
		proto = engine.WallProto()
	case engine.Box:
		proto = engine.BoxProto(op.Proto.Size)
	case engine.Void:
		proto = engine.VoidProto(op.Proto.Size)
	case engine.Alias, engine.Infinity, engine.Epsilon:
		reference, err := e.resolveReference(command, op.Proto)
		if err != nil {
			return err
		}
		switch op.Proto.Kind {
		case engine.Alias:
			proto = engine.AliasProto(reference)
		case engine.Infinity:
			proto = engine.InfinityProto(reference)
		default:
			proto = engine.EpsilonProto(op.Proto.Size, reference)
		}
	}

	key := e.world.Insert(proto)
	e.meta.Insert(name, key)
	return nil
}

// resolveReference looks up the reference target and checks that it
// accepts this kind of referrer; a block carries at most one infinity
// and one epsilon.
func (e *Executor) resolveReference(command parser.SpannedCommand, proto parser.MetaProtoType) (engine.BlockKey, error) {
	refName, _ := proto.Ref()
	reference, ok := e.meta.GetKey(refName)
	if !ok {
		return engine.BlockKey{}, e.errorAt(command, errors.NameError,
			fmt.Sprintf("unknown block #%s", refName))
	}

	target := e.world.Block(reference)
	switch proto.Kind {
	case engine.Alias:
		if !target.Proto.CanAlias() {
			return engine.BlockKey{}, e.errorAt(command, errors.DefineError,
				fmt.Sprintf("block #%s cannot be aliased", refName))
		}
	case engine.Infinity:
		if !target.Proto.CanInfinity() {
			return engine.BlockKey{}, e.errorAt(command, errors.DefineError,
				fmt.Sprintf("block #%s cannot take an infinity reference", refName))
		}
		if !target.Info.Infinity.IsZero() {
			return engine.BlockKey{}, e.errorAt(command, errors.DefineError,
				fmt.Sprintf("block #%s already has an infinity reference", refName))
		}
	case engine.Epsilon:
		if !target.Proto.CanEpsilon() {
			return engine.BlockKey{}, e.errorAt(command, errors.DefineError,
				fmt.Sprintf("block #%s cannot take an epsilon reference", refName))
		}
		if !target.Info.Epsilon.IsZero() {
			return engine.BlockKey{}, e.errorAt(command, errors.DefineError,
				fmt.Sprintf("block #%s already has an epsilon reference", refName))
		}
	}

	return reference, nil
}

func (e *Executor) executePlace(command parser.SpannedCommand, op parser.PlaceOp) error {
	key, err := e.lookup(command, command.Command.Block)
	if err != nil {
		return err
	}

	position, err := e.resolvePosition(command, op.Position)
	if err != nil {
		return err
	}

	if !position.IsOrphan() {
		container := e.world.Block(position.Container)
		if !container.Proto.IsHollow() {
			return e.errorAt(command, errors.PlacementError,
				fmt.Sprintf("block #%s has no interior", op.Position.Container))
		}
		size := container.Proto.InteriorSize()
		if position.X >= size.Width || position.Y >= size.Height {
			return e.errorAt(command, errors.PlacementError,
				fmt.Sprintf("(%d, %d) is outside #%s, which is (%d, %d)",
					position.X, position.Y, op.Position.Container, size.Width, size.Height))
		}
		occupant := container.State.Interior[position.X][position.Y]
		if !occupant.IsZero() && occupant != key {
			return e.errorAt(command, errors.PlacementError,
				fmt.Sprintf("(%d, %d) in #%s is already taken by %s",
					position.X, position.Y, op.Position.Container, e.describeKey(occupant)))
		}
	}

	e.world.Place(key, position)
	return nil
}

func (e *Executor) executePush(command parser.SpannedCommand, op parser.PushOp) error {
	key, err := e.lookup(command, command.Command.Block)
	if err != nil {
		return err
	}

	moved, pushErr := e.world.Push(key, op.Direction)
	if pushErr != nil {
		return e.errorAt(command, errors.MoveError, e.describeMoveError(pushErr))
	}

	switch op.Assertion {
	case parser.AssertMoved:
		if !moved {
			return e.errorAt(command, errors.AssertionError,
				fmt.Sprintf("expected #%s to move", command.Command.Block))
		}
	case parser.AssertStatic:
		if moved {
			return e.errorAt(command, errors.AssertionError,
				fmt.Sprintf("expected #%s to stay", command.Command.Block))
		}
	}
	return nil
}

func (e *Executor) executeExpect(command parser.SpannedCommand, op parser.ExpectOp) error {
	key, err := e.lookup(command, command.Command.Block)
	if err != nil {
		return err
	}

	expected, err := e.resolvePosition(command, op.Position)
	if err != nil {
		return err
	}

	if actual := e.world.Position(key); actual != expected {
		return e.errorAt(command, errors.AssertionError,
			fmt.Sprintf("expected #%s %s, but it is %s",
				command.Command.Block, op.Position, e.describePosition(actual)))
	}
	return nil
}

func (e *Executor) lookup(command parser.SpannedCommand, name string) (engine.BlockKey, error) {
	key, ok := e.meta.GetKey(name)
	if !ok {
		return engine.BlockKey{}, e.errorAt(command, errors.NameError,
			fmt.Sprintf("unknown block #%s", name))
	}
	return key, nil
}

func (e *Executor) resolvePosition(command parser.SpannedCommand, position parser.MetaPosition) (engine.Position, error) {
	if position.IsOrphan() {
		return engine.Orphan(), nil
	}
	container, ok := e.meta.GetKey(position.Container)
	if !ok {
		return engine.Position{}, e.errorAt(command, errors.NameError,
			fmt.Sprintf("unknown block #%s", position.Container))
	}
	return engine.Inside(container, position.X, position.Y), nil
}

func (e *Executor) describeMoveError(err error) string {
	moveErr, ok := err.(*engine.MoveError)
	if !ok {
		return err.Error()
	}
	name := e.describeKey(moveErr.Key)
	switch moveErr.Kind {
	case engine.ErrOrphan:
		return fmt.Sprintf("cannot exit the orphan block %s", name)
	case engine.ErrNoInfinity:
		return fmt.Sprintf("infinite exit from %s with no infinity reference", name)
	case engine.ErrNoEpsilon:
		return fmt.Sprintf("infinite entering into %s with no epsilon reference", name)
	default:
		return err.Error()
	}
}

func (e *Executor) errorAt(command parser.SpannedCommand, typ errors.ErrorType, message string) error {
	span := command.Span
	line, column := span.Locate()
	return errors.New(typ, message, span.Source().Name(), line, column).
		WithSource(span.Text())
}
