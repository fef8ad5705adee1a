package repl

import (
	"bufio"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"nestbox/internal/engine"
	"nestbox/internal/executor"
	"nestbox/internal/formatter"
	"nestbox/internal/parser"
)

// The legend assigns one digit per hollow block.
const maxLegend = 10

var legendColors = [maxLegend]color.Attribute{
	color.FgRed,
	color.FgGreen,
	color.FgBlue,
	color.FgYellow,
	color.FgCyan,
	color.FgMagenta,
	color.FgWhite,
	color.FgHiBlack,
	color.FgHiRed,
	color.FgHiGreen,
}

// session is one interactive game: a persistent executor plus the hollow
// blocks in discovery order, which fixes their legend digits.
type session struct {
	exec  *executor.Executor
	names []engine.BlockKey
}

func newSession() *session {
	return &session{exec: executor.New()}
}

func (s *session) execute(text string) error {
	if err := s.exec.PushSource(parser.NewStringSource(text)); err != nil {
		return err
	}
	if err := s.exec.RunAll(); err != nil {
		return err
	}

	for _, block := range s.exec.World().Blocks() {
		if !block.Proto.IsHollow() || s.indexOf(block.Key) >= 0 {
			continue
		}
		if len(s.names) >= maxLegend {
			return fmt.Errorf("too many hollow blocks to display (max %d)", maxLegend)
		}
		s.names = append(s.names, block.Key)
	}
	return nil
}

func (s *session) indexOf(key engine.BlockKey) int {
	for i, k := range s.names {
		if k == key {
			return i
		}
	}
	return -1
}

// Repr renders reference blocks with their referent's digit; everything
// unnumbered is a wall.
func (s *session) Repr(key engine.BlockKey) rune {
	block := s.exec.World().Block(key)
	if reference, ok := block.Proto.Ref(); ok {
		key = reference
	}
	if i := s.indexOf(key); i >= 0 {
		return rune('0' + i)
	}
	return '#'
}

func (s *session) Style(key engine.BlockKey) []color.Attribute {
	block := s.exec.World().Block(key)

	var attrs []color.Attribute
	if repr := s.Repr(key); repr >= '0' && repr <= '9' {
		attrs = append(attrs, legendColors[repr-'0'])
	}

	switch block.Proto.Kind {
	case engine.Alias:
		attrs = append(attrs, color.Italic)
	case engine.Infinity:
		attrs = append(attrs, color.Italic, color.Bold)
	case engine.Epsilon:
		attrs = append(attrs, color.Italic, color.Bold, color.Underline)
	}
	return attrs
}

func (s *session) format() string {
	var buffer string
	for i, key := range s.names {
		if name, ok := s.exec.Meta().GetName(key); ok {
			buffer += fmt.Sprintf("  %d: %s", i, name)
		}
	}
	buffer += "\n\n"
	buffer += formatter.New(s.exec.World(), s).Format(4).Render()
	return buffer
}

// Start runs the interactive terminal game on stdin. Each input line is
// executed as script text; after a successful batch the world is drawn.
func Start() {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if interactive {
		fmt.Println("nestbox | type 'exit' to quit")
	}

	scanner := bufio.NewScanner(os.Stdin)
	s := newSession()

	for {
		if interactive {
			fmt.Print(">>> ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" || line == "quit" {
			break
		}

		if err := s.execute(line); err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println()
		fmt.Print(s.format())
	}
}
