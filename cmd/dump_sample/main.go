// dump_sample runs the seed, annotates every sample relation and prints the
// index jump list, writing all output to cmd/sample_run_output.txt.
// Run from repo root: go run ./cmd/dump_sample
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"PageLens/bootstrap"
)

const (
	baseDir    = "databases/sample"
	outputFile = "cmd/sample_run_output.txt"
)

func main() {
	outPath := outputFile
	// If run from cmd/dump_sample, output next to binary
	if _, err := os.Stat("cmd"); os.IsNotExist(err) {
		outPath = "sample_run_output.txt"
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	base := filepath.Join(repoRoot(), baseDir)

	// Clean previous run so seed starts fresh
	os.RemoveAll(base)

	// 1) Run seed: capture stdout/stderr to file
	fmt.Fprintln(f, "========== SEED ==========")
	if err := goRun(f, "./cmd/seed", "-dir", base); err != nil {
		fmt.Fprintf(f, "seed exited with error: %v\n", err)
	}

	// 2) Annotate each relation with checksums verified
	streams := bootstrap.Streams{Stdout: f, Stderr: f}
	for _, name := range []string{"16384", "16384.1", "16390", "16400"} {
		path := filepath.Join(base, name)
		fmt.Fprintf(f, "\n========== ANNOTATE %s ==========\n", name)
		if status := bootstrap.Run([]string{"-k", "-log-level", "warn", path}, streams); status != bootstrap.ExitOK {
			fmt.Fprintf(f, "exit status %d\n", status)
		}
	}

	// 3) Jump list of the index
	fmt.Fprintln(f, "\n========== JUMP LIST 16390 ==========")
	if err := goRun(f, "./cmd/jump_list", "-json", filepath.Join(base, "16390")); err != nil {
		fmt.Fprintf(f, "jump_list exited with error: %v\n", err)
	}

	fmt.Printf("Output written to %s\n", outPath)
}

func goRun(f *os.File, args ...string) error {
	cmd := exec.Command("go", append([]string{"run"}, args...)...)
	cmd.Stdout = f
	cmd.Stderr = f
	cmd.Dir = repoRoot()
	return cmd.Run()
}

func repoRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
