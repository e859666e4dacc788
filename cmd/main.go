package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"

	"lineterp/internal/logger"
	"lineterp/internal/runner"
	"lineterp/pkg/color"
)

// Main entry point for the lineterp interpreter.
func main() {
	options := runner.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.BoolVar(&options.Truncate, "t", false, "Truncate oversize scripts instead of failing")
	flag.IntVar(&options.MaxSteps, "s", 0, "Maximum executed lines (0 = config value)")
	flag.StringVar(&options.ConfigFile, "c", "", "YAML config file")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <file>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if options.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.SourceFile = args[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	status, err := options.Run(ctx)
	if err != nil {
		stop()
		log.Fatal("Execution failed", "error", err)
	}

	stop()
	os.Exit(status)
}
