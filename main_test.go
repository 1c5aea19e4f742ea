package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	var buf bytes.Buffer
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan bool)
	go func() {
		_, _ = io.Copy(&buf, r)
		done <- true
	}()

	f()
	_ = w.Close()
	os.Stdout = oldStdout
	<-done

	return buf.String()
}

func callMain() (int, string) {
	var exitCode int
	oldExit := exit
	defer func() { exit = oldExit }()
	exit = func(code int) {
		exitCode = code
		panic("exit")
	}

	output := captureOutput(func() {
		defer func() {
			if r := recover(); r != nil {
				if r != "exit" {
					panic(r)
				}
			}
		}()
		RealMain()
	})

	return exitCode, output
}

func TestRealMain(t *testing.T) {
	// Save original args
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tests := []struct {
		name           string
		args           []string
		expectedExit   int
		expectedOutput string
	}{
		{
			name:           "no arguments",
			args:           []string{"bloghouse"},
			expectedExit:   1,
			expectedOutput: "Usage: bloghouse <command>",
		},
		{
			name:           "help command",
			args:           []string{"bloghouse", "help"},
			expectedExit:   0,
			expectedOutput: "Usage: bloghouse <command> [options]",
		},
		{
			name:           "version command",
			args:           []string{"bloghouse", "version"},
			expectedExit:   0,
			expectedOutput: "bloghouse version " + CliVersion,
		},
		{
			name:           "unknown command",
			args:           []string{"bloghouse", "unknown"},
			expectedExit:   1,
			expectedOutput: "Unknown command: unknown",
		},
		{
			name:           "restore without file",
			args:           []string{"bloghouse", "restore"},
			expectedExit:   1,
			expectedOutput: "Error: backup file path required for restore",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Set up test args
			os.Args = tt.args

			exitCode, output := callMain()

			// Verify output and exit code
			assert.Contains(t, output, tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestPrintHelp(t *testing.T) {
	output := captureOutput(func() {
		printHelp()
	})

	// Verify help text contains all commands
	assert.Contains(t, output, "Usage: bloghouse")
	for _, cmd := range []string{"help", "version", "serve", "init", "promote", "users", "backup", "restore", "clean"} {
		assert.Contains(t, output, cmd)
	}
	assert.Contains(t, output, "BLOG_DB_PATH")
}
