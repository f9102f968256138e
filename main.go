package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"searchgrip/internal/app"
	"searchgrip/internal/ui"
)

func main() {
	var configPath, serverURL, statsDir string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&configPath, "c", "", "Path to config file (shorthand)")
	flag.StringVar(&serverURL, "server", "", "Autocomplete server base URL")
	flag.StringVar(&statsDir, "stats-dir", "", "Write search statistics CSV files here on exit")
	flag.Parse()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// stdout and stderr belong to the UI
	a, err := app.New(ctx, app.Options{
		ConfigPath:    configPath,
		ServerURL:     serverURL,
		StatsDir:      statsDir,
		LogFallback:   "searchgrip.log",
		TraceFallback: "searchgrip-trace.json",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	binding := ui.NewBinding()
	controller, history := a.Search(binding)
	pager := ui.NewOvPager()

	uiModel := ui.NewModel(ctx, ui.Deps{
		Config:   a.Config,
		Searcher: controller,
		History:  history,
		Binding:  binding,
		Pager:    pager,
		Bus:      a.Bus,
		Logger:   a.Logger,
	})

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	if os.Getenv("SEARCHGRIP_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	a.Logger.Info("starting UI")
	_, runErr := p.Run()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := a.Close(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", runErr)
		os.Exit(1)
	}
}
