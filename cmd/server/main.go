// Package main is the entry point for the Jarvis command server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/akshatworkmail12-bit/jarvis/internal/audit"
	"github.com/akshatworkmail12-bit/jarvis/internal/config"
	"github.com/akshatworkmail12-bit/jarvis/internal/database"
	"github.com/akshatworkmail12-bit/jarvis/internal/dispatch"
	"github.com/akshatworkmail12-bit/jarvis/internal/handlers"
	"github.com/akshatworkmail12-bit/jarvis/internal/interpreter"
	"github.com/akshatworkmail12-bit/jarvis/internal/llm"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/files"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/media"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/system"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/vision"
	"github.com/akshatworkmail12-bit/jarvis/internal/providers/voice"
	"github.com/akshatworkmail12-bit/jarvis/internal/ratelimit"
	"github.com/akshatworkmail12-bit/jarvis/internal/router"
	"github.com/akshatworkmail12-bit/jarvis/internal/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("Jarvis %s\n", version.Version)
		fmt.Printf("Build Time: %s\n", version.BuildTime)
		fmt.Printf("Git Commit: %s\n", version.GitCommit)
		os.Exit(0)
	}

	configPath := flag.String("config", "config.yaml", "path to config file")
	showVersion := flag.Bool("version", false, "show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Jarvis %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Warning: Could not load config from %s: %v", *configPath, err)
		log.Println("Using default configuration...")
		cfg, _ = config.Load("")
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		logger.Fatalw("failed to open database", "path", cfg.Database.Path, "error", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatalw("failed to run migrations", "error", err)
	}

	limiter := ratelimit.New(cfg.RateLimits)
	defer limiter.Close()

	if cfg.LLM.APIKey == "" {
		logger.Warnw("no LLM API key configured, interpretation calls will fail",
			"provider", cfg.LLM.Provider)
	}

	client := llm.NewOpenAIClient(cfg.LLM, logger)
	interp := interpreter.New(client, logger)

	systemSvc := system.NewService(logger)
	fileSvc := files.NewService(cfg.Files.SearchLocations, cfg.Files.MaxResults, logger)
	visionSvc := vision.NewService(interp, logger)
	mediaSvc := media.NewService(interp, logger)
	voiceSvc := voice.NewService(cfg.Voice.Enabled, cfg.Voice.Command, logger)
	auditSvc := audit.NewService(db, logger)

	dispatcher := dispatch.New(systemSvc, visionSvc, mediaSvc, fileSvc, interp, logger)

	hub := handlers.NewHub(logger)

	r := router.New(cfg, limiter, logger, router.Handlers{
		Commands: handlers.NewCommandHandler(interp, dispatcher, systemSvc, voiceSvc, auditSvc, hub, logger),
		Files:    handlers.NewFileHandler(fileSvc, systemSvc),
		Media:    handlers.NewMediaHandler(mediaSvc),
		System:   handlers.NewSystemHandler(systemSvc, voiceSvc, visionSvc),
		Audit:    handlers.NewAuditHandler(auditSvc),
		Events:   hub,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Infow("starting server", "version", version.Version, "addr", addr)

	if err := r.Run(addr); err != nil {
		logger.Fatalw("server exited", "error", err)
	}
}
