package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"starlog/app/auth"
	"starlog/app/blobstore"
	"starlog/app/config"
	"starlog/app/repositories"
	"starlog/app/repositories/postgres"
	"starlog/app/routes"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("starlog version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: starlog <command>
Commands:
  help       Display this help message.
  version    Show version information.
  serve      Run the blog API server (configured via environment).
`
	fmt.Println(helpText)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.Env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(level).
			With().
			Timestamp().
			Str("service", "starlog").
			Logger()
	}
	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", "starlog").
		Logger()
}

func serve() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	log := newLogger(cfg)

	deps, cleanup, err := buildDeps(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize")
	}
	defer cleanup()

	router := routes.Setup(deps)
	log.Info().Str("addr", cfg.Addr).Str("store", cfg.Store).Str("blob", cfg.Blob).Msg("starting server")
	if err := routes.StartServer(cfg.Addr, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func buildDeps(cfg *config.Config, log zerolog.Logger) (routes.Deps, func(), error) {
	deps := routes.Deps{
		Tokens: auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Log:    log,
	}
	cleanup := func() {}

	switch cfg.Store {
	case "badger":
		repo, err := repositories.NewRepository(cfg.BadgerPath)
		if err != nil {
			return deps, cleanup, fmt.Errorf("opening badger store: %w", err)
		}
		deps.Posts = repo
		deps.Comments = repo.Comments()
		deps.Users = repo.Users()
		cleanup = func() {
			if err := repo.Close(); err != nil {
				log.Error().Err(err).Msg("closing store")
			}
		}
	case "postgres":
		repo, err := postgres.NewRepository(cfg.PostgresDSN)
		if err != nil {
			return deps, cleanup, fmt.Errorf("opening postgres store: %w", err)
		}
		deps.Posts = repo
		deps.Comments = repo.Comments()
		deps.Users = repo.Users()
	default:
		return deps, cleanup, fmt.Errorf("unknown store backend %q", cfg.Store)
	}

	switch cfg.Blob {
	case "fs":
		blobs, err := blobstore.NewFS(cfg.BlobDir, cfg.BlobBaseURL)
		if err != nil {
			return deps, cleanup, fmt.Errorf("opening fs blob store: %w", err)
		}
		deps.Blobs = blobs
	case "s3":
		blobs, err := blobstore.NewS3(context.Background(), blobstore.S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return deps, cleanup, fmt.Errorf("opening s3 blob store: %w", err)
		}
		deps.Blobs = blobs
	default:
		return deps, cleanup, fmt.Errorf("unknown blob backend %q", cfg.Blob)
	}

	return deps, cleanup, nil
}
