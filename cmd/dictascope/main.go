package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/snanayakkara/dictascope/internal/analyzer"
	"github.com/snanayakkara/dictascope/internal/cli"
	"github.com/snanayakkara/dictascope/internal/ui"
	"github.com/snanayakkara/dictascope/internal/watch"
)

var (
	version = "0.0.1"
)

// CLI defines the command-line interface
type CLI struct {
	Version   bool     `short:"v" help:"Show version information"`
	Config    string   `short:"c" type:"path" help:"Path to TOML config file (optional)"`
	Logs      bool     `help:"Save a per-clip analysis report next to each clip"`
	Watch     string   `short:"w" type:"existingdir" help:"Inbox directory to watch for new clips" optional:""`
	ExportDir string   `short:"o" type:"existingdir" help:"Destination directory for saved clips" default:"."`
	Files     []string `arg:"" name:"files" help:"Dictation clips to review" type:"existingfile" optional:""`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("dictascope"),
		kong.Description("Quality analyser and review player for clinical dictation clips"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if len(cliArgs.Files) == 0 && cliArgs.Watch == "" {
		cli.PrintError("No input clips specified (pass files or --watch)")
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	// Debug log file: the terminal belongs to the TUI
	log := zerolog.Nop()
	debugLog, err := os.Create("dictascope-debug.log")
	if err == nil {
		defer debugLog.Close()
		log = zerolog.New(debugLog).With().Timestamp().Logger()
	}

	config := analyzer.DefaultConfig()
	if cliArgs.Config != "" {
		config, err = analyzer.LoadConfig(cliArgs.Config)
		if err != nil {
			cli.PrintError(fmt.Sprintf("Failed to load config: %v", err))
			os.Exit(1)
		}
	}

	model := ui.NewModel(cliArgs.Files, ui.Options{
		Config:    config,
		Logs:      cliArgs.Logs,
		ExportDir: cliArgs.ExportDir,
		WatchDir:  cliArgs.Watch,
		Logger:    log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	var watcher *watch.Watcher
	if cliArgs.Watch != "" {
		watcher, err = watch.New(cliArgs.Watch, log)
		if err != nil {
			cli.PrintError(fmt.Sprintf("Failed to watch %s: %v", cliArgs.Watch, err))
			os.Exit(1)
		}
		go func() {
			for path := range watcher.Clips() {
				p.Send(ui.ClipFoundMsg{Path: path})
			}
		}()
	}

	_, err = p.Run()
	if watcher != nil {
		watcher.Close()
	}
	if err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		os.Exit(1)
	}
}
