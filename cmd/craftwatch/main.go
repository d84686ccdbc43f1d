package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/craftwatch/craftwatch/internal/config"
	"github.com/craftwatch/craftwatch/internal/mock"
	"github.com/craftwatch/craftwatch/internal/notify"
	"github.com/craftwatch/craftwatch/internal/rcon"
	"github.com/craftwatch/craftwatch/internal/remote"
	"github.com/craftwatch/craftwatch/internal/status"
	"github.com/craftwatch/craftwatch/internal/tail"
	"github.com/craftwatch/craftwatch/internal/watch"
)

// Exit codes. Scripts wrapping the watcher key off these.
const (
	exitOK        = 0
	exitConfig    = 2 // invalid or unloadable configuration
	exitStartup   = 3 // could not reach the notification channel
	exitEscalated = 4 // too many consecutive poll failures
)

func main() {
	os.Exit(run())
}

func run() int {
	mockMode := flag.Bool("mock", false, "Simulate player activity, notify to stdout")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	// .env is optional; real deployments often use the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("[config] failed to load: %v", err)
		return exitConfig
	}

	if !*mockMode {
		if violations := cfg.Validate(); len(violations) > 0 {
			for _, v := range violations {
				log.Printf("[config] %s", v)
			}
			log.Printf("[config] %d problem(s), not starting", len(violations))
			return exitConfig
		}
	}

	var (
		notifier  notify.Notifier
		lister    watch.Lister
		collector watch.Collector
	)

	if *mockMode {
		log.Println("[main] mock mode: simulated players, notifications to stdout")
		gen := mock.NewGenerator(time.Now().UnixNano())
		notifier = &notify.Writer{Out: os.Stdout}
		lister = gen
		collector = gen
	} else {
		discord, err := notify.NewDiscord(cfg.Discord.Token, cfg.Discord.ChannelID)
		if err != nil {
			log.Printf("[main] discord startup failed: %v", err)
			return exitStartup
		}
		defer discord.Close()
		log.Printf("[main] notifying #%s", discord.ChannelName())

		notifier = discord
		lister = rcon.NewClient(cfg.RCON)
		collector = buildTailer(cfg)
	}

	var broadcaster *status.Broadcaster
	if cfg.Status.Listen != "" {
		broadcaster = status.NewBroadcaster()
	}

	mon := watch.NewMonitor(cfg, lister, collector, notifier, broadcaster)

	if broadcaster != nil {
		server := status.NewServer(broadcaster)
		server.SetHealthHook(mon.Snapshot)
		mux := http.NewServeMux()
		server.SetupRoutes(mux)
		go func() {
			if err := status.ListenAndServe(cfg.Status.Listen, mux); err != nil {
				log.Printf("[status] server error: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := mon.Start(ctx); err != nil {
		if errors.Is(err, watch.ErrEscalated) {
			return exitEscalated
		}
		log.Printf("[main] watcher error: %v", err)
		return exitEscalated
	}
	return exitOK
}

// buildTailer picks the log source: SFTP when fully configured, a local
// file otherwise, or nothing at all. No log source just means no death
// notifications; joins and leaves still work.
func buildTailer(cfg *config.Config) *tail.Tailer {
	cursor := tail.NewFileCursor(cfg.CursorPath)

	if cfg.SFTPEnabled() {
		session := remote.NewFileSession(cfg.Log.SFTP)
		log.Printf("[main] tailing %s over sftp from %s", cfg.Log.SFTP.Path, cfg.Log.SFTP.Host)
		return tail.New(&tail.SFTPSource{Session: session, Path: cfg.Log.SFTP.Path}, cursor)
	}
	if cfg.Log.LocalPath != "" {
		log.Printf("[main] tailing local log %s", cfg.Log.LocalPath)
		return tail.New(&tail.LocalSource{Path: cfg.Log.LocalPath}, cursor)
	}
	log.Println("[main] no log source configured, death notifications disabled")
	return tail.New(nil, cursor)
}
