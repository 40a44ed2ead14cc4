package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/trapdoorsec/rinzler/internal/config"
	"github.com/trapdoorsec/rinzler/internal/fuzzer"
	"github.com/trapdoorsec/rinzler/internal/scan"
)

var (
	fuzzURL       string
	fuzzHostsFile string
	fuzzWordlist  string
	fuzzThreads   int
	fuzzUseHead   bool
	fuzzStorePath string
	fuzzTimeout   time.Duration
)

var fuzzCmd = &cobra.Command{
	Use:   "fuzz",
	Short: "Force-browse a wordlist against one or more base URLs",
	RunE: func(cmd *cobra.Command, args []string) error {
		urls, err := scan.LoadURLsFromSource(fuzzURL, fuzzHostsFile)
		if err != nil {
			return err
		}

		results, fuzzErr := scan.ExecuteFuzz(context.Background(), scan.FuzzOptions{
			BaseURLs:        urls,
			WordlistPath:    fuzzWordlist,
			Workers:         fuzzThreads,
			UseHeadRequests: fuzzUseHead,
			Timeout:         fuzzTimeout,
			StorePath:       fuzzStorePath,
			HitCallback: func(hit fuzzer.FuzzResult) {
				fmt.Printf("  [%d] %s\n", hit.StatusCode, hit.URL)
			},
		})
		if fuzzErr != nil {
			return fuzzErr
		}

		fmt.Printf("\nFuzz complete: %d results recorded\n", len(results))
		return nil
	},
}

func init() {
	fuzzCmd.Flags().StringVarP(&fuzzURL, "url", "u", "", "base URL to fuzz")
	fuzzCmd.Flags().StringVar(&fuzzHostsFile, "hosts-file", "", "file with one base URL per line")
	fuzzCmd.Flags().StringVarP(&fuzzWordlist, "wordlist-file", "w", config.DefaultWordlistPath(), "wordlist file")
	fuzzCmd.Flags().IntVarP(&fuzzThreads, "threads", "t", 10, "number of fuzz workers")
	fuzzCmd.Flags().BoolVar(&fuzzUseHead, "head", false, "use HEAD requests instead of GET")
	fuzzCmd.Flags().StringVar(&fuzzStorePath, "store", config.DefaultStorePath(), "store to seed prior-crawl bases from")
	fuzzCmd.Flags().DurationVar(&fuzzTimeout, "timeout", 10*time.Second, "per-request timeout")
	rootCmd.AddCommand(fuzzCmd)
}
