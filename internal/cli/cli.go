package cli

import (
	"flag"
	"fmt"
	"strings"
)

// Args holds the parsed command-line arguments
type Args struct {
	Specs      []string
	Provider   string
	ConfigPath string
	CheckQuota bool
	ShowHelp   bool
}

// Parse parses command-line arguments
func Parse() (*Args, error) {
	args := &Args{}

	// Define flags with both long and short forms
	var specsStr string
	flag.StringVar(&specsStr, "specs", "", "Comma-separated repository specs of the form owner/repo/ref")
	flag.StringVar(&specsStr, "s", "", "Comma-separated repository specs (shorthand)")

	flag.StringVar(&args.Provider, "provider", "github", "Version-control provider: 'github' (default) or 'gitlab'")
	flag.StringVar(&args.Provider, "p", "github", "Version-control provider (shorthand)")

	flag.StringVar(&args.ConfigPath, "config", "", "Path to an optional TOML configuration file")
	flag.StringVar(&args.ConfigPath, "f", "", "Path to configuration file (shorthand)")

	flag.BoolVar(&args.CheckQuota, "check-quota", false, "Print the GitHub API rate-limit status and exit")
	flag.BoolVar(&args.CheckQuota, "q", false, "Print rate-limit status (shorthand)")

	flag.BoolVar(&args.ShowHelp, "help", false, "Show help message")
	flag.BoolVar(&args.ShowHelp, "h", false, "Show help message (shorthand)")

	flag.Parse()

	// Check for help flag early - no need to validate if user just wants help
	if args.ShowHelp {
		return args, nil
	}

	// Parse comma-separated specs
	if specsStr != "" {
		args.Specs = strings.Split(specsStr, ",")
		// Trim whitespace from each spec
		for i, spec := range args.Specs {
			args.Specs[i] = strings.TrimSpace(spec)
		}
	}

	// Validate arguments
	if err := args.validate(); err != nil {
		return nil, err
	}

	return args, nil
}

// validate validates the parsed arguments
func (a *Args) validate() error {
	if a.Provider != "github" && a.Provider != "gitlab" {
		return fmt.Errorf("invalid provider '%s': must be 'github' or 'gitlab'", a.Provider)
	}

	if a.CheckQuota {
		if a.Provider != "github" {
			return fmt.Errorf("--check-quota is only available for the github provider")
		}
		return nil
	}

	if len(a.Specs) == 0 {
		return fmt.Errorf("at least one spec is required\n\nTry:\n  repo-resolver --specs owner/repo/ref\n\nOr run 'repo-resolver --help' for more information")
	}

	return nil
}

// ShowUsage displays usage information
func ShowUsage() {
	fmt.Println(`Repo Resolver - resolve repository specs to immutable commit SHAs

USAGE:
  repo-resolver --specs <owner/repo/ref>[,<owner/repo/ref>,...]

FLAGS:
  -s, --specs <specs>      Comma-separated repository specs (owner/repo/ref)
  -p, --provider <name>    Provider: 'github' (default) or 'gitlab'
  -f, --config <path>      Optional TOML configuration file
  -q, --check-quota        Print the GitHub API rate-limit status and exit
  -h, --help               Show this help message

EXAMPLES:
  # Resolve a branch to its current commit SHA
  repo-resolver --specs jupyterhub/binderhub/master

  # Resolve several specs concurrently
  repo-resolver -s "org/app/main, org/lib/v1.2.0"

  # Resolve against GitLab
  repo-resolver --provider gitlab --specs group/project/main

  # Inspect the remaining GitHub API quota
  repo-resolver --check-quota

CONFIGURATION:
  Credentials come from GITHUB_CLIENT_ID, GITHUB_CLIENT_SECRET and
  GITHUB_ACCESS_TOKEN (GITLAB_ACCESS_TOKEN, GITLAB_BASE_URL for GitLab),
  or from a TOML file passed with --config. Without credentials, requests
  are sent unauthenticated under the public rate limits.`)
}
