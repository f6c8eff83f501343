package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/floodnet-nyc/floodnet-go/floodnet"
	"github.com/floodnet-nyc/floodnet-go/internal/config"
	"github.com/floodnet-nyc/floodnet-go/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (defaults to ~/.config/floodnet/config.toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	client := floodnet.NewClient()
	if cfg.BaseURL != "" {
		client.SetBaseURL(cfg.BaseURL)
	}

	p := tea.NewProgram(ui.NewModel(client, cfg.Window()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
