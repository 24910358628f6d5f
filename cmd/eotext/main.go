package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/eotext/internal"
	"github.com/starford/eotext/internal/translator"
	"github.com/starford/eotext/internal/vocabstore"
	pkgconfig "github.com/starford/eotext/pkg/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const defaultConfigPath = "config/config.yaml"

// loadConfig reads the config file and applies flag overrides. The default
// path may be absent; a path given with --config or APP_CONFIG_FILE must exist.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	load := pkgconfig.LoadOptional[internal.Config]
	if cmd.IsSet("config") {
		load = pkgconfig.Load[internal.Config]
	}
	if err := load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Flags win over the file.
	if cmd.IsSet("match-mode") {
		cfg.Conversion.MatchMode = strings.ToLower(cmd.String("match-mode"))
	}
	if cmd.IsSet("caps-aware") {
		cfg.Conversion.CapsAwareSuffix = cmd.Bool("caps-aware")
	}
	if cmd.IsSet("compose-marks") {
		cfg.Conversion.ComposeMarks = cmd.Bool("compose-marks")
	}
	if cmd.IsSet("vocabulary") {
		cfg.Vocabulary.Path = cmd.String("vocabulary")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newTranslator builds a service for one-shot conversions. User words are
// included when the database already exists; the CLI never creates it.
func newTranslator(ctx context.Context, cfg *internal.Config) (*translator.Service, func(), error) {
	opts := []translator.Option{
		translator.WithMatchMode(cfg.Conversion.Mode()),
		translator.WithCapsAwareSuffix(cfg.Conversion.CapsAwareSuffix),
		translator.WithComposeMarks(cfg.Conversion.ComposeMarks),
	}
	if cfg.Vocabulary.Path != "" {
		opts = append(opts, translator.WithVocabularyFile(cfg.Vocabulary.Path))
	}

	closeFn := func() {}
	if _, err := os.Stat(cfg.SQLite.Path); err == nil {
		db, err := vocabstore.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open vocabulary store: %w", err)
		}
		opts = append(opts, translator.WithStore(db))
		closeFn = func() { db.Close() }
	}

	svc, err := translator.NewService(ctx, opts...)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return svc, closeFn, nil
}

func convertAction(stdin io.Reader, stdout io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		args := cmd.Args()
		if args.Len() < 2 || args.Len() > 3 {
			return fmt.Errorf("usage: %s <from> <to> [text]", cmd.Name)
		}

		var text string
		fromArg := args.Len() == 3
		switch {
		case fromArg:
			text = args.Get(2)
		case cmd.String("file") != "":
			data, err := os.ReadFile(cmd.String("file"))
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			text = string(data)
		default:
			data, err := io.ReadAll(stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = string(data)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		svc, closeFn, err := newTranslator(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		res, err := svc.Convert(ctx, args.Get(0), args.Get(1), text)
		if err != nil {
			return err
		}
		out := res.Result
		if fromArg {
			out += "\n"
		}
		_, err = io.WriteString(stdout, out)
		return err
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func mcpAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.RunMCP(ctx, internal.WithConfig(cfg), internal.WithVersion(version)); err != nil {
		return fmt.Errorf("mcp run error: %w", err)
	}
	return nil
}

func newCommand(stdin io.Reader, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "eotext",
		Usage:     "Convert Esperanto text between UTF-8, the x-system and the h-system",
		ArgsUsage: "<from> <to> [text]",
		Version:   version,
		Writer:    stdout,
		Action:    convertAction(stdin, stdout),

		// The help command's "h" alias would shadow the h-system code.
		HideHelpCommand: true,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (optional)",
				DefaultText: defaultConfigPath,
				Value:       defaultConfigPath,
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read the text to convert from a file instead of stdin",
			},
			&cli.StringFlag{
				Name:    "match-mode",
				Usage:   "Vocabulary match mode: fragment, prefix or exact",
				Sources: cli.EnvVars("EOTEXT_MATCH_MODE"),
			},
			&cli.BoolFlag{
				Name:    "caps-aware",
				Usage:   "Write an uppercase suffix inside all-capital words (CX instead of Cx)",
				Sources: cli.EnvVars("EOTEXT_CAPS_AWARE"),
			},
			&cli.BoolFlag{
				Name:    "compose-marks",
				Usage:   "Treat a letter followed by a combining circumflex or breve as the precomposed letter",
				Sources: cli.EnvVars("EOTEXT_COMPOSE_MARKS"),
			},
			&cli.StringFlag{
				Name:    "vocabulary",
				Usage:   "Path to an extra vocabulary YAML file",
				Sources: cli.EnvVars("EOTEXT_VOCABULARY"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveAction,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdin/stdout",
				Action: mcpAction,
			},
		},
	}
}

func main() {
	if err := newCommand(os.Stdin, os.Stdout).Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
