package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"nestbox/internal/executor"
	"nestbox/internal/parser"
	"nestbox/internal/repl"
)

const version = "1.0.0"

// Command aliases mapping
var commandAliases = map[string]string{
	"r": "run",
	"c": "check",
	"i": "repl",
}

func main() {
	flag.Parse()
	defer glog.Flush()

	args := flag.Args()
	if len(args) == 0 {
		showUsage()
		return
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "help":
		showUsage()
	case "version":
		showVersion()
	case "run":
		runScript(args[1:])
	case "check":
		checkScript(args[1:])
	case "repl":
		repl.Start()
	default:
		suggestCommand(cmd)
	}
}

func runScript(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: nestbox run <file.nbs>")
		os.Exit(1)
	}

	source, err := parser.OpenFileSource(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	exec := executor.New()
	if err := exec.PushSource(source); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := exec.RunAll(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Print(exec.FormatPositions())
}

func checkScript(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: nestbox check <file.nbs>")
		os.Exit(1)
	}

	source, err := parser.OpenFileSource(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := parser.Parse(source); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: syntax is valid\n", args[0])
}

func showUsage() {
	fmt.Println("Nestbox - recursive block pushing")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  nestbox run <file.nbs>     Run a script                 (alias: r)")
	fmt.Println("  nestbox check <file.nbs>   Check syntax without running (alias: c)")
	fmt.Println("  nestbox repl               Start the interactive game   (alias: i)")
	fmt.Println()
	fmt.Println("Help:")
	fmt.Println("  nestbox help               Show this message")
	fmt.Println("  nestbox version            Show the version")
	fmt.Println()
	fmt.Println("Logging is configured with the standard glog flags, e.g.")
	fmt.Println("  nestbox -v=2 -logtostderr run level.nbs")
}

func showVersion() {
	fmt.Printf("nestbox %s\n", version)
}

// suggestCommand suggests similar commands when an unknown command is entered
func suggestCommand(cmd string) {
	allCommands := []string{"run", "check", "repl", "help", "version"}

	fmt.Fprintf(os.Stderr, "Error: Unknown command '%s'\n", cmd)

	var suggestions []string
	for _, candidate := range allCommands {
		if levenshteinDistance(cmd, candidate) <= 3 {
			suggestions = append(suggestions, candidate)
		}
	}

	if len(suggestions) > 0 {
		fmt.Fprintf(os.Stderr, "\nDid you mean one of these?\n")
		for _, suggestion := range suggestions {
			alias := ""
			for a, full := range commandAliases {
				if full == suggestion {
					alias = fmt.Sprintf(" (alias: %s)", a)
					break
				}
			}
			fmt.Fprintf(os.Stderr, "  nestbox %s%s\n", suggestion, alias)
		}
	}

	fmt.Fprintf(os.Stderr, "\nRun 'nestbox help' to see all available commands\n")
	os.Exit(1)
}

// levenshteinDistance calculates the Levenshtein distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}
