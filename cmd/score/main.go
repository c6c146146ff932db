package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/socialsentrix/sentrix/internal/reputation"
	"github.com/socialsentrix/sentrix/internal/rest/types"
	"github.com/socialsentrix/sentrix/internal/setup"
	"github.com/urfave/cli/v3"
)

// ScoreLogDir specifies where offline scoring log files are stored.
const ScoreLogDir = "logs/score_logs"

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "score",
		Usage: "Score an activity snapshot file without a running server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Path to a snapshot JSON file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Window start (RFC 3339), defaults to the snapshot span",
			},
			&cli.StringFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "Window end (RFC 3339), defaults to the snapshot span",
			},
			&cli.StringFlag{
				Name:    "credential",
				Aliases: []string{"c"},
				Usage:   "Platform access token for the authenticated rate budget",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Estimate baseline fetch cost instead of scoring",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := setup.InitializeApp(ctx, ScoreLogDir, false)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.Cleanup()

			snapshot, err := loadSnapshot(c.String("input"))
			if err != nil {
				return err
			}

			engine, ok := app.Engines()[strings.ToLower(snapshot.Platform)]
			if !ok {
				return fmt.Errorf("%w: %s", reputation.ErrUnknownPlatform, snapshot.Platform)
			}

			window, err := parseWindow(c.String("start"), c.String("end"))
			if err != nil {
				return err
			}

			credential := c.String("credential")
			req := &reputation.Request{
				Activity:      snapshot.Activity,
				Account:       snapshot.Account,
				Window:        window,
				Credential:    credential,
				Authenticated: credential != "",
			}

			if c.Bool("dry-run") {
				return printJSON(engine.Estimate(req))
			}

			result, err := engine.Score(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to score snapshot: %w", err)
			}

			return printJSON(result)
		},
	}

	return app.Run(context.Background(), os.Args)
}

// loadSnapshot reads a snapshot file in the same shape the REST API ingests.
func loadSnapshot(path string) (*types.SubmitProfileRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snapshot types.SubmitProfileRequest
	if err := sonic.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}

	return &snapshot, nil
}

// parseWindow builds a time window from optional RFC 3339 bounds.
func parseWindow(start, end string) (reputation.TimeWindow, error) {
	var window reputation.TimeWindow

	if start != "" {
		parsed, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return reputation.TimeWindow{}, fmt.Errorf("invalid start time: %w", err)
		}

		window.Start = parsed
	}

	if end != "" {
		parsed, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return reputation.TimeWindow{}, fmt.Errorf("invalid end time: %w", err)
		}

		window.End = parsed
	}

	return window, nil
}

func printJSON(value any) error {
	encoded, err := sonic.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	fmt.Println(string(encoded))

	return nil
}
