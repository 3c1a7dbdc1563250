package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"entity-display/internal/build"
)

func projectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "project <display.yml> <build.yml>",
		Short: "Move the fields of a render tree into the regions of the record's layout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, reg, fields, err := opts.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read build file %s: %w", args[1], err)
			}

			b := build.New()
			if err := yaml.Unmarshal(data, b); err != nil {
				return fmt.Errorf("failed to parse build file %s: %w", args[1], err)
			}

			p, err := c.Projector(reg, fields)
			if err != nil {
				return err
			}

			if err := p.Apply(b); err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)

			if err := enc.Encode(b); err != nil {
				return err
			}

			return enc.Close()
		},
	}
}
