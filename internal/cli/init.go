package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trapdoorsec/rinzler/internal/config"
	"github.com/trapdoorsec/rinzler/internal/store"
)

var (
	initDir   string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Provision the configuration directory, wordlist and store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if initForce && store.Exists(storePathIn(initDir)) {
			if err := store.Drop(storePathIn(initDir)); err != nil {
				return err
			}
			fmt.Println("Deleted existing store")
		}

		if err := config.InitAssets(initDir, initForce); err != nil {
			return err
		}
		fmt.Printf("Config directory ready: %s\n", initDir)

		st, err := store.Open(storePathIn(initDir))
		if err != nil {
			return err
		}
		defer st.Close()
		fmt.Printf("Store ready: %s\n", storePathIn(initDir))
		return nil
	},
}

func storePathIn(dir string) string {
	return filepath.Join(dir, "rinzler.db")
}

func init() {
	initCmd.Flags().StringVar(&initDir, "dir", config.DefaultConfigDir(), "configuration directory")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
	rootCmd.AddCommand(initCmd)
}
