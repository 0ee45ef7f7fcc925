// cmd/vendorwatch/main.go

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/robotadmins/vendorwatch/pkg/catalog"
	"github.com/robotadmins/vendorwatch/pkg/config"
	"github.com/robotadmins/vendorwatch/pkg/engine"
	"github.com/robotadmins/vendorwatch/pkg/logging"
	"github.com/robotadmins/vendorwatch/pkg/reconcile"
	"github.com/robotadmins/vendorwatch/pkg/report"
	"github.com/robotadmins/vendorwatch/pkg/version"
	"github.com/robotadmins/vendorwatch/pkg/workspace"
)

func main() {
	// Define command-line flags.
	showConfig := pflag.Bool("show-config", false, "Display the current configuration and exit.")
	jsonOut := pflag.Bool("json", false, "Emit results as JSON instead of text.")
	reportPath := pflag.String("report", "", "Append a run record to this file after the run.")
	workspaceFlag := pflag.String("workspace", "", "Workspace to reconcile (overrides config and auto-detection).")
	seasonFlag := pflag.Int("season", 0, "Catalog season to fetch (overrides config).")
	configPath := pflag.String("config", "", "Path to the configuration file.")
	versionFlag := pflag.Bool("version", false, "Print the version and exit.")

	// Count the number of -v flags.
	var verbosity int
	pflag.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v for progress, -vv for debugging)")
	pflag.Parse()

	if *versionFlag {
		if verbosity > 0 {
			version.PrintFull()
		} else {
			version.Print()
		}
		os.Exit(0)
	}

	// Load configuration (only once)
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Raise LogLevel based on the number of -v flags; the configured
	// level applies when none are given.
	cfg.LogLevel = verbosityLevel(verbosity, cfg.LogLevel)

	if err := logging.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()

	if *showConfig {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			logging.Error("Failed to render configuration", "error", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
		os.Exit(0)
	}

	if *workspaceFlag != "" {
		cfg.WorkspacePath = *workspaceFlag
	}
	if *seasonFlag != 0 {
		cfg.Season = *seasonFlag
	}

	ws, _ := workspace.Detect(cfg.WorkspacePath)

	fetcher := catalog.NewFetcher(time.Duration(cfg.FetchTimeoutSeconds) * time.Second)
	eng := engine.New(workspace.Source{}, fetcher, func(season int) string {
		return catalog.SeasonURL(cfg.CatalogBaseURL, season)
	}, cfg.Season)

	start := time.Now()
	err = eng.Refresh(context.Background(), ws)
	if errors.Is(err, engine.ErrNoWorkspace) {
		logging.Warn("No active workspace; skipping reconciliation run")
		os.Exit(0)
	}
	if err != nil {
		logging.Error("Reconciliation run failed", "error", err)
		os.Exit(1)
	}

	result, ok := eng.Recommendations()
	if !ok {
		logging.Error("No result published for completed run")
		os.Exit(1)
	}

	if *jsonOut {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logging.Error("Failed to render result", "error", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	} else {
		printResult(result)
	}

	if *reportPath != "" {
		record := report.NewRunRecord(report.NewSessionID(), start, time.Now(), result)
		if err := report.Write(*reportPath, record); err != nil {
			logging.Warn("Failed to write run report", "path", *reportPath, "error", err)
		}
	}
}

func printResult(result engine.Result) {
	if !result.CatalogAvailable {
		fmt.Println("Catalog unavailable this run; recommendations are limited to installed components.")
		fmt.Println()
	}

	fmt.Printf("Installed components (%d):\n", len(result.Installed))
	for _, rec := range result.Installed {
		fmt.Printf("  %s (installed %s)\n", rec.Name, version.Normalize(rec.CurrentVersion))
		if len(rec.Candidates) == 0 {
			fmt.Println("    no published versions found")
			continue
		}
		for _, candidate := range rec.Candidates {
			fmt.Printf("    %-10s %s\n", actionLabel(candidate.Action), candidate.Version)
		}
	}

	fmt.Printf("\nAvailable components (%d):\n", len(result.Available))
	for _, entry := range result.Available {
		fmt.Printf("  %s %s  %s\n", entry.Name, entry.Version, entry.Website)
	}
}

// verbosityLevel maps the number of -v flags onto a log level. The
// default configured level is WARN, so -v surfaces run progress and -vv
// debugging detail.
func verbosityLevel(count int, configured string) string {
	switch {
	case count == 0:
		return configured
	case count == 1:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// actionLabel maps actions to their user-facing names. Equal versions are
// deliberately shown as "To Latest" rather than "no action".
func actionLabel(action reconcile.Action) string {
	switch action {
	case reconcile.ActionUpdate:
		return "Update"
	case reconcile.ActionHoldAtLatest:
		return "To Latest"
	case reconcile.ActionDowngrade:
		return "Downgrade"
	default:
		return string(action)
	}
}
