package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidyasagar/tpopup/internal/app"
	"github.com/vidyasagar/tpopup/internal/logging"
	"github.com/vidyasagar/tpopup/internal/source"
	"github.com/vidyasagar/tpopup/internal/storage"
	"github.com/vidyasagar/tpopup/internal/theme"
)

var (
	version = "0.1.0"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the exit code so deferred cleanup happens before main exits.
func run(args []string) int {
	var (
		themeName   string
		configPath  string
		contentPath string
		logDir      string
		debug       bool
		showVersion bool
	)

	fs := flag.NewFlagSet("tpopup", flag.ContinueOnError)
	fs.StringVar(&themeName, "theme", "", "color theme ("+strings.Join(theme.List(), ", ")+")")
	fs.StringVar(&configPath, "config", "", "config file (default: user config dir, then ./tpopup.toml)")
	fs.StringVar(&contentPath, "content", "", "HTML or text file, or http(s) URL, to show in a popup at start")
	fs.StringVar(&logDir, "log-dir", "", "write logs to this directory (overrides [log] dir)")
	fs.BoolVar(&debug, "debug", false, "enable debug logging")
	fs.BoolVar(&showVersion, "version", false, "show version")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "tpopup - modal dialogs with history for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tpopup [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tpopup                          # file list demo\n")
		fmt.Fprintf(os.Stderr, "  tpopup --content page.html      # open a page in a popup\n")
		fmt.Fprintf(os.Stderr, "  tpopup --content https://go.dev # readable part of a web page\n")
		fmt.Fprintf(os.Stderr, "  tpopup --theme nord --debug     # nord theme, debug log in ./tpopup.log\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Printf("tpopup %s\n", version)
		return 0
	}

	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := logging.Init(cfg.LoggingConfig(logDir, debug)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logging.Shutdown()
	log := logging.ForComponent(logging.CompApp)

	// Flag wins over config.
	if themeName == "" {
		themeName = cfg.Theme
	}
	if !theme.Set(themeName) {
		log.Error("unknown theme", "theme", themeName)
		fmt.Fprintf(os.Stderr, "Unknown theme: %s\nAvailable: %s\n", themeName, strings.Join(theme.List(), ", "))
		return 1
	}

	var doc *source.Document
	if contentPath != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		doc, err = source.NewLoader().Load(ctx, contentPath)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: loading content: %v\n", err)
			return 1
		}
		log.Info("content loaded", "location", doc.Location, "bytes", len(doc.Body))
	}

	// The file catalog is best-effort; the delete demo is disabled without it.
	var files *storage.FileStore
	if dataDir, err := storage.DataDir(); err == nil {
		db, dbErr := storage.OpenDB(dataDir)
		if dbErr == nil {
			defer db.Close()
			files = storage.NewFileStore(db)
			if err := files.Seed(context.Background(), cfg.Demo.SeedFiles); err != nil {
				log.Warn("seeding files", "error", err)
			}
		} else {
			log.Warn("opening database", "error", dbErr)
		}
	}

	opts := app.Options{
		Config: cfg,
		Files:  files,
	}
	if doc != nil {
		opts.Content = doc.Body
		opts.ContentTitle = doc.Title
	}
	m := app.New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		log.Error("program exited", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
