package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"entity-display/internal/ctxlog"
	"entity-display/internal/display"
	"entity-display/internal/field"
	"entity-display/internal/layout"
)

type rootOptions struct {
	layoutsPath string
	fieldsPath  string
	logLevel    string
	logFormat   string
}

func newRootCmd(outW, errW io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "entity-display",
		Short: "Manage field placement in layout regions of entity displays",
		Long: `entity-display keeps display records consistent with their layout.

A display record (YAML) says which layout an entity bundle uses and which
region each field renders in. Layouts are declared in HCL files; the fields
of each bundle come from a YAML field catalog.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := ctxlog.New(opts.logLevel, opts.logFormat, errW)
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
		},
	}

	cmd.SetOut(outW)
	cmd.SetErr(errW)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.layoutsPath, "layouts", "", "HCL layout file or directory (the built-in default layout is always available)")
	flags.StringVar(&opts.fieldsPath, "fields", "", "YAML field catalog")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	cmd.AddCommand(
		layoutsCmd(opts),
		reconcileCmd(opts),
		projectCmd(opts),
		validateCmd(opts),
	)

	return cmd
}

// registry returns the built-in layouts plus those under --layouts.
func (o *rootOptions) registry(ctx context.Context) (*layout.Registry, error) {
	r := layout.NewRegistry()
	if o.layoutsPath == "" {
		return r, nil
	}

	if err := r.LoadDir(ctx, o.layoutsPath); err != nil {
		return nil, err
	}

	return r, nil
}

// fieldCatalog returns the catalog of c's bundle, or nil without --fields.
func (o *rootOptions) fieldCatalog(ctx context.Context, c *display.Config) (*field.Catalog, error) {
	if o.fieldsPath == "" {
		ctxlog.FromContext(ctx).Debug("No field catalog given; field add and remove rules are off.")
		return nil, nil
	}

	p, err := field.LoadFile(o.fieldsPath)
	if err != nil {
		return nil, err
	}

	return c.FieldCatalog(p)
}

// load reads a display record together with the layouts and its fields.
func (o *rootOptions) load(ctx context.Context, path string) (*display.Config, *layout.Registry, *field.Catalog, error) {
	c, err := display.LoadFile(path)
	if err != nil {
		return nil, nil, nil, err
	}

	reg, err := o.registry(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	fields, err := o.fieldCatalog(ctx, c)
	if err != nil {
		return nil, nil, nil, err
	}

	return c, reg, fields, nil
}
