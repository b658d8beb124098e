package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cvscore-backend/internal/shared/config"
)

func newProfilesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List scoring profiles and their weights",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := config.LoadProfiles(v.GetString("profiles-file"))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if v.GetString("format") == formatJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(set.All())
			}
			for _, p := range set.All() {
				fmt.Fprintf(out, "%s  %s\n", headingStyle.Render(fmt.Sprintf("%-10s", p.Name)),
					mutedStyle.Render(fmt.Sprintf("format %.0f%%  content %.0f%%  regional %.0f%%",
						p.Weights.Format*100, p.Weights.Content*100, p.Weights.Regional*100)))
			}
			return nil
		},
	}
	cmd.Flags().String("format", formatConsole, "output format: console or json")
	return cmd
}
