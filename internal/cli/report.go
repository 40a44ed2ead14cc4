package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trapdoorsec/rinzler/internal/config"
	"github.com/trapdoorsec/rinzler/internal/report"
	"github.com/trapdoorsec/rinzler/internal/store"
)

var (
	reportSession   string
	reportStorePath string
	reportSitemap   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the assembled report data for a session as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(reportStorePath)
		if err != nil {
			return err
		}
		defer st.Close()

		data, reportErr := report.GatherReportData(st, reportSession, reportSitemap)
		if reportErr != nil {
			return reportErr
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportSession, "session", "s", "", "session id to report on")
	reportCmd.Flags().StringVar(&reportStorePath, "store", config.DefaultStorePath(), "store file location")
	reportCmd.Flags().BoolVar(&reportSitemap, "sitemap", false, "include the sitemap node list")
	if err := reportCmd.MarkFlagRequired("session"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(reportCmd)
}
