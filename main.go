// Command battlesnake-lookahead runs a Battlesnake that picks each move with
// a safety filter, a two-ply lookahead and a hunger-gated food heuristic.
//
//	battlesnake-lookahead serve -config snake.yaml
//	battlesnake-lookahead move < request.json
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/urfave/cli/v3"

	"github.com/tonobo/battlesnake-lookahead/internal/api"
	"github.com/tonobo/battlesnake-lookahead/internal/config"
	"github.com/tonobo/battlesnake-lookahead/internal/engine"
	"github.com/tonobo/battlesnake-lookahead/internal/feed"
	"github.com/tonobo/battlesnake-lookahead/internal/logging"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to the YAML config",
			Sources: cli.EnvVars("SNAKE_CONFIG"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "debug, info, warn, error or none (overrides the config)",
			Sources: cli.EnvVars("SNAKE_LOG_LEVEL"),
		},
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	return cfg, cfg.Validate()
}

func newEngine(cfg *config.Config, logger log.Logger) *engine.Engine {
	return engine.New(cfg.FoodPolicy(), cfg.LookaheadPolicy(), logger)
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if listen := cmd.String("listen"); listen != "" {
		cfg.Server.Listen = listen
	}
	logger := logging.New(os.Stderr, cfg.Log.Level)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var hub *feed.Hub
	if cfg.Feed.Enabled {
		hub = feed.NewHub(log.With(logger, "component", "feed"))
		go hub.Run(ctx)
	}
	srv := api.NewServer(newEngine(cfg, log.With(logger, "component", "engine")), cfg.Appearance, hub, logger)
	return srv.ListenAndServe(ctx, cfg.Server.Listen)
}

// move decides a single turn from a saved /move request, for replaying games
// offline.
func move(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Bool("debug") {
		cfg.Log.Level = "debug"
	}
	logger := logging.New(os.Stderr, cfg.Log.Level)

	var in io.Reader = os.Stdin
	if path := cmd.String("input"); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	var req api.Request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	snap, err := req.Snapshot()
	if err != nil {
		return err
	}

	decision := newEngine(cfg, logger).Decide(snap)
	if cmd.Bool("debug") {
		snap.Board.Render(os.Stderr, snap.You.ID)
		_ = level.Debug(logger).Log("msg", "decision", "move", decision.Move, "reason", decision.Reason,
			"safe", decision.Safety, "scores", decision.Scores)
	}
	fmt.Fprintln(cmd.Root().Writer, decision.Move)
	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:           "battlesnake-lookahead",
		Usage:          "Battlesnake with a two-ply lookahead",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the Battlesnake HTTP server",
				Flags: append(commonFlags(), &cli.StringFlag{
					Name:    "listen",
					Usage:   "listen address (overrides the config)",
					Sources: cli.EnvVars("SNAKE_LISTEN"),
				}),
				Action: serve,
			},
			{
				Name:  "move",
				Usage: "decide one move from a /move request on stdin",
				Flags: append(commonFlags(),
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "read the request from a file instead of stdin"},
					&cli.BoolFlag{Name: "debug", Usage: "print the board and every stage to stderr"},
				),
				Action: move,
			},
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
