package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/vbonduro/taptote/internal/config"
	"github.com/vbonduro/taptote/internal/db"
	"github.com/vbonduro/taptote/internal/logging"
	"github.com/vbonduro/taptote/internal/service"
	"github.com/vbonduro/taptote/internal/share"
	"github.com/vbonduro/taptote/internal/store"
	"github.com/vbonduro/taptote/internal/vision"
	anthropicvision "github.com/vbonduro/taptote/internal/vision/anthropic"
	ollamavision "github.com/vbonduro/taptote/internal/vision/ollama"
	"github.com/vbonduro/taptote/internal/web"
	"github.com/vbonduro/taptote/internal/web/templates"
)

// newCLIApp creates the CLI application with all commands. serve is the
// default so a bare `taptote` starts the board.
func newCLIApp() *cli.App {
	return &cli.App{
		Name:           "taptote",
		Usage:          "Self-hosted note/photo board with shareable tote links",
		Version:        Version,
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCmd(),
			listCmd(),
			showCmd(),
			qrCmd(),
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web UI",
		Action: func(c *cli.Context) error {
			cfg := config.Load()

			logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer cleanup()

			records, closeStore, err := openRecordStore(cfg)
			if err != nil {
				logger.Error("failed to open record store", "backend", cfg.StoreBackend, "error", err)
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					logger.Error("failed to close record store", "error", err)
				}
			}()

			svc := service.NewToteService(records, newCaptioner(cfg, logger), logger)
			server := web.NewServer(svc, templates.FS, cfg.BaseURL, logger)

			if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
				logger.Error("server error", "error", err)
				return err
			}
			return nil
		},
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored totes as JSON",
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			records, closeStore, err := openRecordStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			totes, err := records.List(c.Context)
			if err != nil {
				return err
			}

			type summary struct {
				ID        string `json:"id"`
				Title     string `json:"title"`
				Images    int    `json:"images"`
				UpdatedAt string `json:"updatedAt"`
			}
			summaries := make([]summary, 0, len(totes))
			for _, t := range totes {
				summaries = append(summaries, summary{
					ID:        t.ID,
					Title:     t.Title,
					Images:    len(t.Images),
					UpdatedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
				})
			}
			return outputJSON(summaries)
		},
	}
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print one tote record as JSON",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("usage: taptote show <id>")
			}
			id := c.Args().First()

			cfg := config.Load()
			records, closeStore, err := openRecordStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			tote, err := records.Get(c.Context, id)
			if err != nil {
				return err
			}
			if tote == nil {
				return fmt.Errorf("tote %s not found", id)
			}
			return outputJSON(tote)
		},
	}
}

func qrCmd() *cli.Command {
	return &cli.Command{
		Name:      "qr",
		Usage:     "Write the share URL of a tote as a PNG QR code",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (default <id>.png)"},
			&cli.IntFlag{Name: "size", Value: share.DefaultQRSize, Usage: "Image size in pixels"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("usage: taptote qr <id>")
			}
			id := c.Args().First()

			cfg := config.Load()
			png, err := share.QRPNG(cfg.BaseURL, id, c.Int("size"))
			if err != nil {
				return err
			}

			out := c.String("out")
			if out == "" {
				out = id + ".png"
			}
			if err := os.WriteFile(out, png, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Println(out)
			return nil
		},
	}
}

// openRecordStore builds the configured store backend and returns it with a
// close func for the underlying connection.
func openRecordStore(cfg *config.Config) (*store.RecordStore, func() error, error) {
	switch cfg.StoreBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return store.NewRedis(client), client.Close, nil
	case "sqlite":
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return store.NewSQLite(database), database.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func newCaptioner(cfg *config.Config, logger *slog.Logger) vision.Captioner {
	switch cfg.VisionBackend {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			logger.Error("ANTHROPIC_API_KEY is required when VISION_BACKEND=anthropic")
			return nil
		}
		logger.Info("using anthropic captioner", "model", cfg.AnthropicModel)
		return anthropicvision.NewCaptioner(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	case "ollama":
		logger.Info("using ollama captioner", "model", cfg.OllamaModel)
		return ollamavision.NewCaptioner(cfg.OllamaHost, cfg.OllamaModel)
	default:
		logger.Info("title suggestion disabled")
		return nil
	}
}

func outputJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
