package main

import (
	"brewin/internal/config"
	"brewin/internal/logger"
	"brewin/internal/runner"
	"brewin/pkg/color"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// Main entry point for the Brewin interpreter.
func main() {
	options := runner.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode (print the decoded program)")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.BoolVar(&options.Trace, "t", false, "Trace every executed statement")
	flag.IntVar(&options.MaxSteps, "s", 0, "Maximum number of steps (0 = unlimited)")
	flag.StringVar(&options.ConfigFile, "c", "", "Config file (default "+config.DefaultFile+" if present)")

	flag.Parse()
	args := flag.Args()

	if options.Help {
		fmt.Printf("Usage: %s [options] <file>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	cfg, err := config.Load(options.ConfigFile)
	if err != nil {
		logger.Init(false, options.NoColor)
		log.Fatal("Invalid configuration", "error", err)
	}
	mergeConfig(&options, cfg)

	logger.Init(options.Verbose || options.Trace, options.NoColor)

	if options.NoColor {
		color.EnableColor(false)
	}

	if len(args) == 0 {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.SourceFile = args[0]

	if err := options.Run(); err != nil {
		log.Fatal("Run failed", "error", err)
	}
}

// mergeConfig fills options that were not given on the command line.
func mergeConfig(options *runner.Runner, cfg *config.Config) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["v"] {
		options.Verbose = cfg.Verbose
	}
	if !set["n"] {
		options.NoColor = cfg.NoColor
	}
	if !set["t"] {
		options.Trace = cfg.Trace
	}
	if !set["s"] {
		options.MaxSteps = cfg.MaxSteps
	}
}
