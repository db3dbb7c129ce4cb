//go:build !cgo
// +build !cgo

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/redshift-arcade/ascent/internal/engine"
	"github.com/redshift-arcade/ascent/internal/tui"
)

// version, commit, date are injected at build time (see .goreleaser.yaml).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Without cgo there is no raylib window, so the terminal client is the
// only front end this build can offer.
func main() {
	var (
		showVersion bool
		savePath    string
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
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

	if err := tui.Run(tui.AppConfig{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
		Engine:    cfg,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
