//go:build cgo
// +build cgo

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/redshift-arcade/ascent/internal/engine"
	"github.com/redshift-arcade/ascent/internal/gui"
	"github.com/redshift-arcade/ascent/internal/tui"
)

// version, commit, date are injected at build time (see .goreleaser.yaml).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		terminal    bool
		savePath    string
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&terminal, "terminal", false, "run the terminal client instead of the desktop window")
	flag.StringVar(&savePath, "save", "", "override the save file path")
	flag.Parse()

	if showVersion {
		fmt.Printf("Ascent %s (%s) %s\n", version, commit, date)
		return
	}

	cfg, err := engine.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if savePath != "" {
		cfg.SavePath = savePath
	}

	if terminal {
		err = tui.Run(tui.AppConfig{
			Version:   version,
			Commit:    commit,
			BuildDate: date,
			Engine:    cfg,
		})
	} else {
		app := gui.NewApp(gui.AppConfig{
			Version:   version,
			Commit:    commit,
			BuildDate: date,
			Engine:    cfg,
		})
		err = app.Run()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
