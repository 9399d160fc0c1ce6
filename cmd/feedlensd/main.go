// Package main implements the entry point for the feedlens daemon,
// which annotates discovered posts and comment threads with AI-generated
// tags and summaries from a local Ollama-compatible service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file (optional)")
	inputFile := flag.String("input", "", "JSON-lines discovery input file; '-' or empty reads stdin")
	flag.Parse()

	if err := run(*configFile, *inputFile); err != nil {
		log.Fatalf("feedlensd: %v", err)
	}
}

// run owns the full application lifecycle: build everything, consume the
// discovery stream until EOF or a termination signal, then shut down.
func run(configFile, inputFile string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := buildApplication(ctx, configFile)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.close()

	app.startAPIServer(ctx)

	input, closeInput, err := openInput(inputFile)
	if err != nil {
		return err
	}
	defer closeInput()

	if err := app.consume(ctx, input); err != nil {
		return fmt.Errorf("discovery stream failed: %w", err)
	}

	return nil
}

// openInput resolves the discovery source: a file path, or stdin when the
// path is empty or "-".
func openInput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open discovery input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
