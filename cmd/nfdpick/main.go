package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/integrii/flaggy"
)

var (
	commit  string
	version = "unversioned"
	date    string

	debugFlag       = false
	printConfigFlag = false
	overrides       flagOverrides
)

func addDialogFlags(sc *flaggy.Subcommand, cfg *Config, withFilter bool) {
	if withFilter {
		sc.String(&cfg.Filter, "f", "filter", "Filter list, e.g. \"png,jpg;pdf\"")
	}
	sc.String(&cfg.DefaultPath, "d", "dir", "Directory the dialog starts in")
	sc.String(&cfg.Backend, "b", "backend", "Dialog backend")
	sc.Bool(&cfg.CopyToClipboard, "c", "copy", "Also copy the selection to the clipboard")
	sc.Bool(&cfg.NullSeparated, "z", "null", "End each printed path with NUL instead of newline")
	sc.Bool(&overrides.NoCopy, "", "no-copy", "Do not copy to the clipboard, even if config.yml says so")
	sc.Bool(&overrides.NoNull, "", "no-null", "End each printed path with a newline, even if config.yml says otherwise")
}

func main() {
	cfg, err := LoadConfig(configDir())
	if err != nil {
		log.Fatal(err.Error())
	}

	parser := flaggy.NewParser("nfdpick")
	parser.Description = "Pick files with the native file dialog and print their paths"
	parser.Version = fmt.Sprintf("%s\nDate: %s\nCommit: %s\nOS: %s\nArch: %s", version, date, commit, runtime.GOOS, runtime.GOARCH)
	parser.Bool(&debugFlag, "", "debug", "Log to stderr")
	parser.Bool(&printConfigFlag, "", "print-config", "Print the effective config and exit")

	open := flaggy.NewSubcommand(cmdOpen)
	open.Description = "Select one existing file"
	addDialogFlags(open, &cfg, true)

	save := flaggy.NewSubcommand(cmdSave)
	save.Description = "Select a file to write"
	addDialogFlags(save, &cfg, true)

	multiple := flaggy.NewSubcommand(cmdOpenMultiple)
	multiple.Description = "Select one or more existing files"
	addDialogFlags(multiple, &cfg, true)

	folder := flaggy.NewSubcommand(cmdPickFolder)
	folder.Description = "Select a directory"
	addDialogFlags(folder, &cfg, false)

	gui := flaggy.NewSubcommand("gui")
	gui.Description = "Open a window with buttons for every dialog"
	addDialogFlags(gui, &cfg, true)

	for _, sc := range []*flaggy.Subcommand{open, save, multiple, folder, gui} {
		parser.AttachSubcommand(sc, 1)
	}

	if err := parser.ParseArgs(os.Args[1:]); err != nil {
		log.Fatal(err.Error())
	}
	overrides.apply(&cfg)

	if printConfigFlag {
		out, err := cfg.Encode()
		if err != nil {
			log.Fatal(err.Error())
		}
		fmt.Print(out)
		os.Exit(exitOK)
	}

	logger := newLogger(debugFlag, cfg.Backend)

	app, err := NewApp(cfg, logger, os.Stdout)
	if err != nil {
		log.Fatal(err.Error())
	}

	var command string
	switch {
	case open.Used:
		command = cmdOpen
	case save.Used:
		command = cmdSave
	case multiple.Used:
		command = cmdOpenMultiple
	case folder.Used:
		command = cmdPickFolder
	case gui.Used:
		if err := runGUI(app); err != nil {
			log.Fatal(err.Error())
		}
		return
	default:
		parser.ShowHelpAndExit("")
	}

	code, err := app.Run(command)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nfdpick:", err)
	}
	os.Exit(code)
}
