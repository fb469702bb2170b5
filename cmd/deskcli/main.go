package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"projectdesk/client"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	configPath := flag.String("config", client.DefaultConfigPath(), "path to the deskcli YAML config")
	serverURL := flag.String("server", "", "backend URL (overrides the config file)")
	flag.Parse()

	cfg, err := client.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}

	api := client.NewAPI(cfg.ServerURL, client.NewSessionStore(cfg.SessionFile))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	reachable := api.Health(ctx)
	cancel()
	if !reachable {
		fmt.Fprintf(os.Stderr, "Warning: backend at %s is not reachable\n", cfg.ServerURL)
	}

	app := NewApp(api)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
