// Command errorsgen generates the errors module evaluated by the bridge: one
// exception class per kind, all deriving from the base class.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
)

var (
	output    string
	baseClass string
	check     bool
)

func init() {
	flag.StringVar(&output, "o", "-", "output file, - for stdout")
	flag.StringVar(&baseClass, "base", "", "name of the base class (default: "+NewGenerator().BaseClass+")")
	flag.BoolVar(&check, "check", false, "fail if the output file is not up to date instead of writing it")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	g := NewGenerator()
	if baseClass != "" {
		g.BaseClass = baseClass
	}

	if check {
		upToDate, err := g.UpToDate(output)
		if err != nil {
			slog.Error("Failed to check errors module", "output", output, "error", err)
			os.Exit(1)
		}
		if !upToDate {
			slog.Error("Errors module is out of date", "output", output)
			slog.Info("Run errorsgen without -check to regenerate it")
			os.Exit(1)
		}
		return
	}

	if err := g.Write(output); err != nil {
		slog.Error("Failed to generate errors module", "error", err)
		os.Exit(1)
	}
	if output != "-" {
		slog.Info("Errors module generated", "output", output, "kinds", len(g.Kinds))
	}
}
