package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"repo-resolver/internal/cli"
	"repo-resolver/internal/config"
	"repo-resolver/internal/logger"
	"repo-resolver/internal/provider/github"
	"repo-resolver/internal/resolver"
)

func main() {
	// Parse command-line arguments
	args, err := cli.Parse()
	if err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	// Handle help flag
	if args.ShowHelp {
		cli.ShowUsage()
		os.Exit(0)
	}

	// Load configuration from environment variables, plus the optional file
	cfg, err := loadConfig(args)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup logging
	logger.Setup(cfg)

	ctx := context.Background()

	// Quota mode: report the shared rate limit and exit
	if args.CheckQuota {
		status, err := github.CheckQuota(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to check rate limit: %v", err)
		}
		fmt.Printf("limit=%d remaining=%d reset=%s\n",
			status.Limit, status.Remaining, status.ResetAt.Format(time.RFC1123))
		return
	}

	// Resolve all specs, one provider instance per spec
	results, err := resolver.ResolveAll(ctx, cfg, args.Provider, args.Specs)
	if err != nil {
		log.Fatalf("Failed to resolve: %v", err)
	}

	missing := 0
	for _, r := range results {
		if !r.Found {
			missing++
			fmt.Printf("%s\tnot found\n", r.Spec)
			continue
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", r.Spec, r.SHA, r.RepoURL, r.BuildSlug)
	}

	// A missing ref is a valid resolution outcome, but the overall run did
	// not produce a usable build key, so signal it in the exit code.
	if missing > 0 {
		os.Exit(1)
	}
}

func loadConfig(args *cli.Args) (*config.Config, error) {
	if args.ConfigPath != "" {
		return config.LoadWithFile(args.ConfigPath)
	}
	return config.Load()
}
