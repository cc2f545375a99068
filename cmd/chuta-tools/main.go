// chuta-tools runs maintenance tasks against the pool database:
//
//	chuta-tools --config configs/example.yaml import --file configs/fixtures.example.yaml
//	chuta-tools open
//	chuta-tools parse --text "1) 2x1" [--json]
//	chuta-tools clean-db --yes
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/gustavomchagas/chuta/internal/bolao/app"
	"github.com/gustavomchagas/chuta/internal/bolao/betparser"
	"github.com/gustavomchagas/chuta/internal/bolao/fixtures"
	"github.com/gustavomchagas/chuta/internal/bolao/intake"
	"github.com/gustavomchagas/chuta/internal/bolao/replies"
	"github.com/gustavomchagas/chuta/internal/pkg/config"
	"github.com/gustavomchagas/chuta/internal/pkg/logging"
)

func main() {
	cliApp := &cli.App{
		Name:  "chuta-tools",
		Usage: "maintenance tasks for the score prediction pool",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "configs/example.yaml",
				Usage:   "path to config file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			importCommand(),
			openCommand(),
			parseCommand(),
			cleanCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// withApp loads config, opens storage and runs fn.
func withApp(c *cli.Context, fn func(a *app.App) error) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.SetupLogger(&cfg.Logging, "chuta-tools")

	a, err := app.New(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "load fixtures from a YAML file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Required: true, Usage: "fixtures YAML file"},
		},
		Action: func(c *cli.Context) error {
			return withApp(c, func(a *app.App) error {
				matches, err := fixtures.Load(c.String("file"))
				if err != nil {
					return err
				}
				matches, err = fixtures.Normalize(matches, a.Teams)
				if err != nil {
					return err
				}
				n, err := fixtures.Import(c.Context, a.Store, matches)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "Imported %d matches\n", n)
				return nil
			})
		},
	}
}

func openCommand() *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "show the matches open for bets",
		Action: func(c *cli.Context) error {
			return withApp(c, func(a *app.App) error {
				w, err := a.Intake.OpenWindow(c.Context)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, replies.OpenMatches(w, a.Intake.Location()))
				if list := replies.CopyList(w); list != "" {
					fmt.Fprintln(c.App.Writer)
					fmt.Fprintln(c.App.Writer, list)
				}
				return nil
			})
		},
	}
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:  "parse",
		Usage: "parse a bets message against the open matches without storing it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "text", Usage: "message text; read from stdin when empty"},
			&cli.BoolFlag{Name: "json", Usage: "print the full parse result as JSON"},
		},
		Action: func(c *cli.Context) error {
			text := c.String("text")
			if text == "" {
				data, err := io.ReadAll(c.App.Reader)
				if err != nil {
					return err
				}
				text = string(data)
			}
			if strings.TrimSpace(text) == "" {
				return errors.New("no text to parse")
			}

			return withApp(c, func(a *app.App) error {
				w, err := a.Intake.OpenWindow(c.Context)
				if err != nil {
					return err
				}
				res := a.Parser.Parse(text, intake.ParserMatches(w))
				if c.Bool("json") {
					enc := json.NewEncoder(c.App.Writer)
					enc.SetIndent("", "  ")
					return enc.Encode(res)
				}

				fmt.Fprintln(c.App.Writer, betparser.Format(res.Bets))
				for _, e := range res.Errors {
					fmt.Fprintln(c.App.Writer, "❌ "+e)
				}
				for _, s := range res.Suggestions {
					fmt.Fprintln(c.App.Writer, "💡 "+s)
				}
				return nil
			})
		},
	}
}

func cleanCommand() *cli.Command {
	return &cli.Command{
		Name:  "clean-db",
		Usage: "delete all players and bets, keeping fixtures",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Usage: "confirm the deletion"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") {
				return errors.New("refusing to delete players and bets without --yes")
			}
			return withApp(c, func(a *app.App) error {
				if err := a.Store.Clean(c.Context); err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, "Done. Players and bets cleared.")
				return nil
			})
		},
	}
}
