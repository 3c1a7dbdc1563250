package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func layoutsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the available layouts and their regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := opts.registry(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, id := range reg.IDs() {
				def, err := reg.Resolve(id)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%s\t%s\t%s (default: %s)\n",
					def.ID, def.Label, strings.Join(def.RegionIDs(), ","), def.DefaultRegionID())
			}

			return nil
		},
	}
}
