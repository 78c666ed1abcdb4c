package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"trailerdl/pkg/catalog"
	"trailerdl/pkg/config"
	"trailerdl/pkg/logger"
	"trailerdl/pkg/orchestrate"
	"trailerdl/pkg/ui"
)

var (
	apiURL string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <actress name>",
	Short: "Search the catalog and download video assets interactively",
	Long: `Search the catalog for a performer and page through the results.

Once results are shown, an interactive prompt accepts:
  more          load the next page of results
  d <n>         download assets for result number n
  random        download assets for a random video
  search <name> start a new search
  quit          exit`,
	Example: `  # Search and browse interactively
  trailerdl search "Jane Doe"

  # Talk to a backend on another host
  trailerdl search "Jane Doe" --api-url http://media-box:5000`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runSearch(args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&apiURL, "api-url", "", "catalog API base URL")
}

func runSearch(args []string) {
	query := strings.TrimSpace(strings.Join(args, " "))
	ui.PrintInfo("Performer", query)

	flags := make(map[string]interface{})
	if apiURL != "" {
		flags["api-url"] = apiURL
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	logger.Initialize(&cfg.Logging)
	log := logger.GetLogger()

	client := catalog.NewClient(cfg.Catalog.APIURL, cfg.Catalog.RequestTimeout, log)
	sink := ui.NewTerminalSink()
	orch := orchestrate.New(client, sink, log)

	orch.Search(query)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(ui.Cyan("> "))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "more", "m":
			orch.LoadMore()
		case "d", "download":
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			videos := orch.Session().Accumulated
			if err != nil || n < 1 || n > len(videos) {
				ui.PrintWarning("Pick a result number from the list")
				continue
			}
			orch.Download(videos[n-1].URL)
		case "random", "r":
			orch.DownloadRandom()
		case "search", "s":
			orch.Search(rest)
		case "quit", "q", "exit":
			return
		default:
			ui.PrintWarning("Commands: more, d <n>, random, search <name>, quit")
		}
	}
}
