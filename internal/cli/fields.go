package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kryft-Studios/parsee/internal/config"
	"github.com/Kryft-Studios/parsee/projection"
)

// fieldsCmd represents the fields command
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List recognized projection fields and their configured modes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		configured := cfg.Projection()
		for _, field := range projection.Fields() {
			mode, ok := configured[field]
			if !ok {
				mode = projection.ModeInclude
			}
			fmt.Printf("%-18s %s\n", field, mode)
		}
		for _, warning := range cfg.Warnings() {
			fmt.Println(warning)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
