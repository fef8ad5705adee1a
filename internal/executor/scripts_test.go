package executor

import (
	"path/filepath"
	"testing"

	"nestbox/internal/parser"
)

// TestRunScriptFiles runs every script under testdata/. The scripts
// assert their own outcomes with MOVED, STATIC and EXPECT.
func TestRunScriptFiles(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("testdata", "*.nbs"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 0 {
		t.Fatal("no test scripts found")
	}

	for _, path := range matches {
		t.Run(filepath.Base(path), func(t *testing.T) {
			source, err := parser.OpenFileSource(path)
			if err != nil {
				t.Fatal(err)
			}

			exec := New()
			if err := exec.PushSource(source); err != nil {
				t.Fatalf("parse failed:\n%v", err)
			}
			if err := exec.RunAll(); err != nil {
				t.Logf("positions so far:\n%s", exec.FormatPositions())
				t.Fatalf("execution failed:\n%v", err)
			}
		})
	}
}
