package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"entity-display/internal/ctxlog"
	"entity-display/internal/display"
	"entity-display/internal/reconcile"
)

func reconcileCmd(opts *rootOptions) *cobra.Command {
	var (
		layoutID string
		validate bool
		output   string
		inPlace  bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile <display.yml>",
		Short: "Reconcile a display record with its layout and field catalog",
		Long: `Reconcile a display record the way saving it would: hidden components move to
the hidden list, fields without a region get the default region, fields in
regions the layout lacks are appended to the default region, and new fields
are added. With --layout the record is first switched to another layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := ctxlog.FromContext(ctx)

			c, reg, fields, err := opts.load(ctx, args[0])
			if err != nil {
				return err
			}

			if validate {
				if err := c.Validate(reg, fields).Err(); err != nil {
					return fmt.Errorf("display %s is invalid: %w", c.ID, err)
				}
			}

			var changes []reconcile.Change

			if layoutID != "" && layoutID != c.LayoutID {
				switched, err := c.SetLayoutFromID(reg, layoutID, nil, fields)
				if err != nil {
					return err
				}

				logger.Info("Switched layout.", "display", c.ID, "layout", layoutID)

				changes = append(changes, switched...)
			}

			saved, err := c.PreSave(reg, fields)
			if err != nil {
				return err
			}

			changes = append(changes, saved...)

			for _, ch := range changes {
				logger.Info("Reconciled field.", "display", c.ID, "field", ch.Field, "change", ch.Kind.String(), "detail", ch.String())
			}

			switch {
			case inPlace:
				output = args[0]
			case output == "" || output == "-":
				data, err := display.Marshal(c)
				if err != nil {
					return err
				}

				_, err = cmd.OutOrStdout().Write(data)

				return err
			}

			if err := display.WriteFile(c, output); err != nil {
				return err
			}

			logger.Info("Display written.", "path", output, "changes", len(changes))

			return nil
		},
	}

	cmd.Flags().StringVar(&layoutID, "layout", "", "switch the record to this layout first")
	cmd.Flags().BoolVar(&validate, "validate", false, "refuse to reconcile a record with validation errors")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file instead of stdout")
	cmd.Flags().BoolVarP(&inPlace, "write", "w", false, "write the result back to the input file")

	return cmd
}
