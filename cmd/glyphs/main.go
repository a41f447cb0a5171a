/*
Command glyphs is an interactive shell for loading fonts, rasterizing glyphs
and querying kerning.

Usage:

	glyphs [-trace level] [-fonts dir] [-font name] [-size px]

Type 'help' at the prompt for a list of commands.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/npillmayer/glyphbridge/core/font"
	"github.com/npillmayer/glyphbridge/core/font/fontregistry"
	"github.com/npillmayer/glyphbridge/core/parameters"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/uax/grapheme"
	"github.com/pterm/pterm"
)

// tracer traces with key 'glyphs.cli'
func tracer() tracing.Trace {
	return tracing.Select("glyphs.cli")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	fontsdir := flag.String("fonts", "fonts", "Directory to search for fonts")
	fontname := flag.String("font", "", "Font to load at start")
	size := flag.Float64("size", 24, "Pixel height of glyphs")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":        "go",
		"trace.glyphs.cli":       *tlevel,
		"trace.glyphs.font":      *tlevel,
		"trace.glyphs.resources": *tlevel,
		"fonts-dir":              *fontsdir,
		"trace-level":            *tlevel,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	params := parameters.FromConfig(conf)
	tracer().Infof("Trace level is %s", params.S(parameters.P_TRACELEVEL))
	grapheme.SetupGraphemeClasses()
	pterm.Info.Println("Welcome to the glyphs CLI") // colored welcome message
	//
	// set up interpreter and REPL
	ledger := font.NewCountingLedger()
	intp := NewIntp(params, fontregistry.NewRegistry(font.WithLedger(ledger)), ledger)
	intp.px = float32(*size)
	repl, err := readline.NewEx(&readline.Config{
		Prompt:       "glyphs > ",
		AutoComplete: intp.completer(),
		HistoryFile:  historyFile(),
	})
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	//
	// load font to use
	if *fontname != "" {
		if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D or 'quit'") // inform user how to stop the CLI
	intp.REPL()                                       // go into interactive mode
	intp.registry.ReleaseAll()
	if !ledger.Balanced() {
		tracer().Errorf("buffers not released: %s", ledger)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "glyphs-cli.history")
}
