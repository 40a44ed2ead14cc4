package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/trapdoorsec/rinzler/internal/config"
	"github.com/trapdoorsec/rinzler/internal/crawler"
	"github.com/trapdoorsec/rinzler/internal/scan"
	"github.com/trapdoorsec/rinzler/internal/store"
	"github.com/trapdoorsec/rinzler/pkg/urlutil"
)

var (
	crawlURL        string
	crawlHostsFile  string
	crawlThreads    int
	crawlMaxDepth   int
	crawlFollow     bool
	crawlAutoFollow bool
	crawlStorePath  string
	crawlTimeout    time.Duration
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl one or more hosts and record the discovered surface",
	RunE: func(cmd *cobra.Command, args []string) error {
		urls, err := scan.LoadURLsFromSource(crawlURL, crawlHostsFile)
		if err != nil {
			return err
		}

		followMode := scan.FollowDisabled
		switch {
		case crawlAutoFollow:
			followMode = scan.FollowAuto
		case crawlFollow:
			followMode = scan.FollowPrompt
		}

		fmt.Printf("Crawling %d host(s)\n", len(urls))
		fmt.Printf("Workers: %d\n", crawlThreads)
		fmt.Printf("Max depth: %d\n", crawlMaxDepth)
		fmt.Printf("Cross-domain: %s\n\n", followModeLabel(followMode))

		opts := scan.CrawlOptions{
			Seeds:      urls,
			Workers:    crawlThreads,
			MaxDepth:   crawlMaxDepth,
			FollowMode: followMode,
			Timeout:    crawlTimeout,
		}

		progress := func(msg string) { fmt.Println(msg) }
		streamed := func(r crawler.CrawlResult) {
			fmt.Printf("  %d %s\n", r.StatusCode, urlutil.ExtractPath(r.URL))
		}

		st, storeErr := store.Open(crawlStorePath)
		if storeErr != nil {
			return storeErr
		}
		defer st.Close()

		sessionID, results, crawlErr := scan.RunPersistedCrawl(
			context.Background(), st, opts, promptOracle, progress, streamed)
		if crawlErr != nil {
			return crawlErr
		}

		fmt.Printf("\nCrawl complete: %d pages, session %s\n", len(results), sessionID)
		return nil
	},
}

func followModeLabel(mode scan.FollowMode) string {
	switch mode {
	case scan.FollowAuto:
		return "auto (follow all)"
	case scan.FollowPrompt:
		return "prompt (ask user)"
	default:
		return "disabled (same domain only)"
	}
}

// promptOracle asks on stdin whether a cross-domain host may be
// followed. Consulted at most once per domain.
func promptOracle(domain string) bool {
	fmt.Printf("\n[!] Cross-domain link detected: %s\nFollow this link? [y/N]: ", domain)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func init() {
	crawlCmd.Flags().StringVarP(&crawlURL, "url", "u", "", "seed URL to crawl")
	crawlCmd.Flags().StringVar(&crawlHostsFile, "hosts-file", "", "file with one target URL per line")
	crawlCmd.Flags().IntVarP(&crawlThreads, "threads", "t", 10, "number of crawl workers")
	crawlCmd.Flags().IntVar(&crawlMaxDepth, "max-depth", 3, "maximum link depth from the seed")
	crawlCmd.Flags().BoolVar(&crawlFollow, "follow", false, "prompt before following cross-domain links")
	crawlCmd.Flags().BoolVar(&crawlAutoFollow, "auto-follow", false, "follow all cross-domain links")
	crawlCmd.Flags().StringVar(&crawlStorePath, "store", config.DefaultStorePath(), "store file location")
	crawlCmd.Flags().DurationVar(&crawlTimeout, "timeout", 10*time.Second, "per-request timeout")
	rootCmd.AddCommand(crawlCmd)
}
