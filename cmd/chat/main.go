package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tanya-chat/internal/client"
	"tanya-chat/internal/tui"
)

func main() {
	serverFlag := flag.String("server", "", "chat backend URL (overrides config file)")
	flag.Parse()

	cfgPath, err := client.DefaultConfigPath()
	if err != nil {
		log.Fatalf("cannot determine config path: %v", err)
	}
	cfg, err := client.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if *serverFlag != "" {
		cfg.ServerURL = *serverFlag
	}

	storePath, err := client.DefaultStorePath()
	if err != nil {
		log.Fatalf("cannot determine store path: %v", err)
	}
	store, err := client.OpenStore(storePath)
	if err != nil {
		log.Fatalf("cannot open state store: %v", err)
	}

	history, err := client.NewHistoryStore(store)
	if err != nil {
		log.Fatalf("cannot load chat history: %v", err)
	}

	net := client.NewNetworkClient(cfg.ServerURL)

	// Best-effort base URL discovery; same-origin when the server does not
	// advertise one.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	net.FetchConfig(ctx)
	cancel()

	connCh := make(chan bool, 4)
	monitor := client.NewMonitor(net.CheckHealth, cfg.ProbeInterval.Duration, func(online bool) {
		// Drop the transition if the UI is not draining the channel.
		select {
		case connCh <- online:
		default:
		}
	})
	monitor.Start()
	defer monitor.Stop()

	p := tea.NewProgram(
		tui.New(net, history, store, connCh),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
