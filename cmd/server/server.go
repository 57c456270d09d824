package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/npc-world-api/internal/catalog"
	"github.com/KirkDiggler/npc-world-api/internal/config"
	"github.com/KirkDiggler/npc-world-api/internal/errors"
	"github.com/KirkDiggler/npc-world-api/internal/messaging"
	"github.com/KirkDiggler/npc-world-api/internal/orchestrators/world"
	"github.com/KirkDiggler/npc-world-api/internal/permissions"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/clock"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/npc-world-api/internal/redis"
	"github.com/KirkDiggler/npc-world-api/internal/repositories/npcs"
	"github.com/KirkDiggler/npc-world-api/internal/repositories/players"
	"github.com/KirkDiggler/npc-world-api/internal/simulator"
	"github.com/KirkDiggler/npc-world-api/internal/worldstate"
)

var configPath string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the adapter with its embedded notification broker",
	Long:  `Start the mock world adapter. Notifications are published on an embedded NATS broker that external observers can subscribe to.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func buildNpcRepo(cfg *config.Config, gen idgen.Generator, clk clock.Clock) (npcs.Repository, error) {
	if cfg.Redis.Endpoint == "" {
		return npcs.NewInMemory(&npcs.InMemoryConfig{
			IDGenerator: gen,
			Clock:       clk,
		})
	}

	client, err := redisclient.NewClient(cfg.Redis.Endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to redis")
	}

	return npcs.NewRedis(&npcs.RedisConfig{
		Client:      client,
		IDGenerator: gen,
		Clock:       clk,
	})
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, stopping")
		cancel()
	}()

	natsServer, err := messaging.NewNatsServer(
		messaging.WithHost(cfg.Nats.Host),
		messaging.WithPort(cfg.Nats.Port),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create nats server")
	}

	clk := clock.New()

	notifier, err := messaging.NewNatsNotifier(&messaging.NatsNotifierConfig{
		Server: natsServer,
		Clock:  clk,
	})
	if err != nil {
		return err
	}

	npcRepo, err := buildNpcRepo(cfg, idgen.NewUUID("npc"), clk)
	if err != nil {
		return err
	}

	cat := catalog.New()

	sim, err := simulator.New(&simulator.Config{Catalog: cat})
	if err != nil {
		return err
	}

	store, err := worldstate.New(&worldstate.Config{
		Clock:     clk,
		TimeOfDay: cfg.World.TimeOfDay,
		Weather:   cfg.World.Weather,
		WorldName: cfg.World.Name,
	})
	if err != nil {
		return err
	}

	service, err := world.NewOrchestrator(&world.Config{
		PlayerRepo:  players.NewInMemory(),
		NpcRepo:     npcRepo,
		Simulator:   sim,
		WorldState:  store,
		Catalog:     cat,
		Notifier:    notifier,
		Permissions: permissions.NewStatic(cfg.Operators),
	})
	if err != nil {
		return err
	}

	state, err := service.GetWorldState(ctx, &world.GetWorldStateInput{})
	if err != nil {
		return err
	}

	slog.Info("Mock world adapter ready",
		"environment", cfg.Environment,
		"world", state.State.WorldName,
		"time_of_day", state.State.TimeOfDay,
		"weather", state.State.Weather,
		"redis", cfg.Redis.Endpoint != "",
	)

	// Blocks until ctx is canceled, then shuts the broker down
	return natsServer.Start(ctx)
}
