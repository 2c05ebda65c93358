package main

import (
	"github.com/spf13/cobra"

	"github.com/ARTM2000/sole"
	"github.com/ARTM2000/sole/internal/demo"
)

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the settings store",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s, err := sole.Instance[demo.SettingsStore](sole.WithDisposal(sole.Immortal))
			if err != nil {
				return err
			}
			s.Dump()
			return nil
		},
	}
}
