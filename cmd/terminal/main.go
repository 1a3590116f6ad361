package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/review-bridge/internal/client"
	"github.com/sevigo/review-bridge/internal/config"
	"github.com/sevigo/review-bridge/internal/logger"
)

func main() {
	themeFlag := flag.String("theme", "", "UI theme (cyan, amber, dracula)")
	listThemes := flag.Bool("list-themes", false, "List all available themes")
	openFlag := flag.String("open", "", "File to open on start")
	flag.Parse()

	if *listThemes {
		fmt.Println("Available themes:")
		for _, theme := range ListThemes() {
			fmt.Printf("  - %s\n", theme)
		}
		os.Exit(0)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	selectedTheme := *themeFlag
	if selectedTheme == "" {
		selectedTheme = os.Getenv("REVIEW_BRIDGE_THEME")
	}
	if selectedTheme == "" {
		selectedTheme = string(ThemeCyan)
	}
	theme := ThemeName(selectedTheme)
	if !slices.Contains(ListThemes(), theme) {
		fmt.Printf("Invalid theme '%s'. Use --list-themes to see available options.\n", theme)
		os.Exit(1)
	}

	// The alt screen owns stdout, so logs only go to a file when asked.
	log := slog.New(slog.DiscardHandler)
	if cfg.Logging.Output == "file" {
		w := logger.Writer("file")
		if f, ok := w.(*os.File); ok && f != os.Stdout {
			defer f.Close()
		}
		log = logger.NewLogger(cfg.Logging, w)
	}

	m := initialModel(theme, cfg.Client, client.New(cfg.Client, client.WithLogger(log)))
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.send = p.Send

	if *openFlag != "" {
		go p.Send(loadFileCmd(*openFlag)())
	}

	if _, err := p.Run(); err != nil {
		log.Error("error running program", "error", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
