package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
)

const historyFile = ".exsh_history"

// runShell drives the interactive loop. One commandInterpreter lives for
// the whole session, so EX state survives between lines.
func runShell() int {
	shell := newCommandInterpreter()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	// Restore the terminal before dying on a termination signal; liner
	// leaves raw mode behind otherwise.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	for {
		line, err := ln.Prompt(shellPrompt())
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			continue
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		ln.AppendHistory(input)

		command, err := parseShellLine(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error: %s\n", err)
			continue
		}
		if shell.execute(command) == exitShell {
			return 0
		}
	}
}

// shellPrompt renders the cwd/user prompt, with # marking a root shell.
func shellPrompt() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "?> "
	}
	mark := "%"
	if os.Geteuid() == 0 {
		mark = "#"
	}
	return fmt.Sprintf("PATH=[%s] USER=[%s]%s ", cwd, currentUsername(), mark)
}

func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
