package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/courseops/courseops"
	"github.com/courseops/courseops/policy"
	"github.com/courseops/courseops/service/filter"
	"github.com/courseops/courseops/tracing"
)

const version = "0.1.0"

func main() {
	// optional .env next to the invocation, e.g. for TEXINPUTS overrides
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch command, args := os.Args[1], os.Args[2:]; command {
	case "figures":
		err = runFigures(args)
	case "calendar":
		err = runCalendar(args)
	case "filter":
		err = runFilter(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "courseops: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`usage: courseops <command> [flags]

commands:
  figures   regenerate TikZ figures in a directory
  calendar  list events from an ICS feed
  filter    run a document filter (prepare, convert)

run "courseops <command> -h" for command flags`)
}

func newService(configURL string, mutate func(*courseops.Config)) (*courseops.Service, error) {
	ctx := context.Background()
	config := courseops.DefaultConfig()
	if configURL != "" {
		loaded, err := courseops.LoadConfig(ctx, configURL)
		if err != nil {
			return nil, err
		}
		config = loaded
	}
	if mutate != nil {
		mutate(config)
	}
	return courseops.New(courseops.WithConfig(config))
}

func runFigures(args []string) error {
	flags := flag.NewFlagSet("figures", flag.ExitOnError)
	configURL := flags.String("config", "", "configuration document (JSON or YAML)")
	settingsURL := flags.String("settings", "", "editor settings document with recipes and tools")
	recipe := flags.String("recipe", "", "recipe name (default: first declared)")
	workers := flags.Int("workers", 0, "concurrent documents (default: from config)")
	timeout := flags.Int("timeout-ms", 0, "per-invocation timeout in milliseconds")
	dryRun := flags.Bool("dry-run", false, "expand commands without invoking them")
	traceFile := flags.String("trace", "", "write spans to this file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("figures: exactly one directory argument is required")
	}
	dir := flags.Arg(0)

	if *traceFile != "" {
		if err := tracing.Init("courseops", version, *traceFile); err != nil {
			return err
		}
	}

	srv, err := newService(*configURL, func(c *courseops.Config) {
		if *settingsURL != "" {
			c.SettingsURL = *settingsURL
		}
		if *recipe != "" {
			c.Recipe = *recipe
		}
		if *workers > 0 {
			c.Processor.WorkerCount = *workers
		}
		if *timeout > 0 {
			c.TimeoutMs = *timeout
		}
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	if *dryRun {
		ctx = policy.WithPolicy(ctx, &policy.Policy{Mode: policy.ModeDryRun})
	}

	rep, err := srv.Runtime().Regenerate(ctx, dir)
	if err != nil {
		return err
	}
	// individual tool failures are part of the report, not the exit status
	rep.Print(os.Stdout)
	return nil
}

func runCalendar(args []string) error {
	flags := flag.NewFlagSet("calendar", flag.ExitOnError)
	feedURL := flags.String("url", "", "ICS feed location")
	days := flags.Int("days", 0, "only list events starting within this many days")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *feedURL == "" && flags.NArg() == 1 {
		*feedURL = flags.Arg(0)
	}
	if *feedURL == "" {
		return fmt.Errorf("calendar: an ICS feed location is required")
	}

	srv, err := newService("", nil)
	if err != nil {
		return err
	}
	ctx := context.Background()
	events, err := srv.Calendar().List(ctx, *feedURL)
	if err != nil {
		return err
	}
	if *days > 0 {
		events, err = srv.Calendar().Upcoming(ctx, *feedURL, time.Now(), *days)
		if err != nil {
			return err
		}
	}
	for _, event := range events {
		line := fmt.Sprintf("%s  %s", event.From.Format("2006-01-02 15:04"), event.Title)
		if event.Location != "" {
			line += " @ " + event.Location
		}
		fmt.Println(line)
	}
	return nil
}

func runFilter(args []string) error {
	flags := flag.NewFlagSet("filter", flag.ExitOnError)
	configURL := flags.String("config", "", "configuration document (JSON or YAML)")
	project := flags.String("project", "", "site project root")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 1 {
		return fmt.Errorf("filter: a filter name is required")
	}
	name := flags.Arg(0)
	files := flags.Args()[1:]
	if len(files) == 0 {
		// fall back to the lists the site generator exports
		key := filter.InputFilesKey
		if name == "convert" {
			key = filter.OutputFilesKey
		}
		files = filter.FilesFromEnv(key)
	}

	srv, err := newService(*configURL, func(c *courseops.Config) {
		if *project != "" {
			c.ProjectURL = *project
		}
	})
	if err != nil {
		return err
	}

	rep, err := srv.Runtime().RunFilter(context.Background(), name, files)
	if rep != nil {
		rep.Print(os.Stdout)
	}
	return err
}
