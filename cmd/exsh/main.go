package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ex/interpreter-go/pkg/driver"
	"ex/interpreter-go/pkg/interpreter"
	"ex/interpreter-go/pkg/parser"
)

const cliToolVersion = "exsh 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return runShell()
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "deps":
		return runDeps(args[1:])
	default:
		if strings.HasSuffix(args[0], ".ex") {
			return runEntry(args)
		}
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage()
		return 1
	}
}

func runEntry(args []string) int {
	if len(args) == 0 {
		manifest, err := loadManifestFrom(".")
		if err != nil {
			if errors.Is(err, errManifestNotFound) {
				fmt.Fprintln(os.Stderr, "exsh run requires a source file or a manifest target (package.yml not found)")
			} else {
				fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			}
			return 1
		}
		target, err := manifest.DefaultTarget()
		if err != nil {
			fmt.Fprintf(os.Stderr, "manifest error: %v\n", err)
			return 1
		}
		if _, err := loadLockfileForManifest(manifest); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		return executeFile(resolveTargetMain(manifest, target))
	}

	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	candidate := args[0]
	if strings.HasSuffix(candidate, ".ex") {
		return executeFile(candidate)
	}

	manifest, err := loadManifestFrom(".")
	if err != nil {
		if errors.Is(err, errManifestNotFound) {
			fmt.Fprintf(os.Stderr, "unknown target %q (package.yml not found)\n", candidate)
		} else {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		}
		return 1
	}
	target, ok := manifest.FindTarget(candidate)
	if !ok {
		fmt.Fprintf(os.Stderr, "manifest defines no target %q\n", candidate)
		return 1
	}
	if _, err := loadLockfileForManifest(manifest); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return executeFile(resolveTargetMain(manifest, target))
}

// executeFile batch-runs one .ex file in a fresh interpreter. Unlike the
// interactive shell, any failure turns into a non-zero exit code.
func executeFile(path string) int {
	source, ok := readSourceFile(path)
	if !ok {
		return 1
	}
	statements, err := parser.ParseSource(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := interpreter.New().Interpret(statements); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// readSourceFile checks existence and the .ex extension, then reads the
// file. Failures are reported to stderr.
func readSourceFile(path string) (string, bool) {
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "File not found: %s\n", path)
		return "", false
	}
	if filepath.Ext(path) != ".ex" {
		fmt.Fprintf(os.Stderr, "exsh only supports .ex files. Got: %s\n", path)
		return "", false
	}
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %s\n", path, err)
		return "", false
	}
	return string(source), true
}

func resolveTargetMain(manifest *driver.Manifest, target *driver.Target) string {
	main := filepath.FromSlash(target.Main)
	if filepath.IsAbs(main) {
		return filepath.Clean(main)
	}
	return filepath.Join(filepath.Dir(manifest.Path), main)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  exsh")
	fmt.Fprintln(os.Stderr, "  exsh run [target]")
	fmt.Fprintln(os.Stderr, "  exsh run <file.ex>")
	fmt.Fprintln(os.Stderr, "  exsh <file.ex>")
	fmt.Fprintln(os.Stderr, "  exsh deps install")
	fmt.Fprintln(os.Stderr, "  exsh deps update [dependency ...]")
	fmt.Fprintln(os.Stderr, "  exsh version")
}
