package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"entity-display/internal/ctxlog"
	"entity-display/internal/display"
)

func validateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <display.yml>...",
		Short: "Check display records against layouts and the field catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := ctxlog.FromContext(ctx)
			out := cmd.OutOrStdout()

			reg, err := opts.registry(ctx)
			if err != nil {
				return err
			}

			failed := 0

			for _, path := range args {
				c, err := display.LoadFile(path)
				if err != nil {
					return err
				}

				fields, err := opts.fieldCatalog(ctx, c)
				if err != nil {
					return err
				}

				d := c.Validate(reg, fields)
				for _, diag := range d.All() {
					fmt.Fprintf(out, "%s: %s: %s\n", path, diag.Severity, diag)
				}

				if d.HasErrors() {
					failed++
					continue
				}

				logger.Debug("Display is valid.", "path", path, "warnings", len(d.Warnings))
			}

			if failed > 0 {
				return &exitError{code: 2, msg: fmt.Sprintf("%d of %d display records are invalid", failed, len(args))}
			}

			return nil
		},
	}
}
