package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/varq/internal/catalog"
	"github.com/roach88/varq/internal/model"
)

// Error codes for catalog commands.
const (
	ErrCodeCatalogOpen    = "E401" // database could not be opened
	ErrCodeCatalogCorrupt = "E402" // stored entry failed its integrity check
	ErrCodeCatalogWrite   = "E403" // write failed
)

// CatalogOptions holds flags shared by the catalog subcommands.
type CatalogOptions struct {
	*RootOptions
	DBPath string
	Unit   string // show: output unit
}

// ImportResult lists the quantities written by catalog import.
type ImportResult struct {
	Imported []string `json:"imported"`
}

// ShowResult is an entry plus, optionally, its evaluation.
type ShowResult struct {
	catalog.Entry
	Eval *EvalResult `json:"eval,omitempty"`
}

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Store and query quantities in a SQLite catalog",
	}
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "varq.db", "catalog database path")

	importCmd := &cobra.Command{
		Use:           "import <model-dir>",
		Short:         "Compile a model and store every quantity",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogImport(opts, args[0], cmd)
		},
	}

	listCmd := &cobra.Command{
		Use:           "list",
		Short:         "List stored quantities",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(opts, cmd)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <name> [factor...]",
		Short: "Show a stored quantity and evaluate it",
		Long: `Show a stored quantity. The stored payload is verified against its
digest and decoded for its unit, then evaluated on the given factors.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogShow(opts, args[0], args[1:], cmd)
		},
	}
	showCmd.Flags().StringVarP(&opts.Unit, "unit", "u", "", "output unit (default: stored unit)")

	deleteCmd := &cobra.Command{
		Use:           "delete <name>",
		Short:         "Remove a stored quantity",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogDelete(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(importCmd, listCmd, showCmd, deleteCmd)
	return cmd
}

func openCatalog(opts *CatalogOptions, formatter *OutputFormatter) (*catalog.Catalog, error) {
	c, err := catalog.Open(opts.DBPath, catalog.WithLogger(slog.Default()))
	if err != nil {
		_ = formatter.Error(ErrCodeCatalogOpen, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, ErrCodeCatalogOpen, err)
	}
	return c, nil
}

func runCatalogImport(opts *CatalogOptions, modelDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	m, errs := model.LoadDir(modelDir)
	if m == nil {
		return outputLoadError(formatter, errs)
	}
	if len(errs) > 0 {
		return outputValidationErrors(formatter, toValidationErrors(errs))
	}

	c, err := openCatalog(opts, formatter)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := commandContext(cmd)
	result := ImportResult{Imported: make([]string, 0, len(m.Quantities))}
	for _, q := range m.Quantities {
		if _, err := c.Put(ctx, q.Name, q.Unit, q.Value); err != nil {
			_ = formatter.Error(ErrCodeCatalogWrite, err.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeCatalogWrite, err)
		}
		formatter.VerboseLog("stored %s", q.Name)
		result.Imported = append(result.Imported, q.Name)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ imported %d quantities into %s\n", len(result.Imported), opts.DBPath)
	return nil
}

func runCatalogList(opts *CatalogOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	c, err := openCatalog(opts, formatter)
	if err != nil {
		return err
	}
	defer c.Close()

	entries, err := c.List(commandContext(cmd))
	if err != nil {
		return WrapExitError(ExitCommandError, "list failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No quantities stored.")
		return nil
	}
	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tUNIT\tKIND\tTAG\tUPDATED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Unit, e.Kind, e.Tag, e.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

func runCatalogShow(opts *CatalogOptions, name string, factorArgs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	c, err := openCatalog(opts, formatter)
	if err != nil {
		return err
	}
	defer c.Close()

	rec, err := c.Get(commandContext(cmd), name)
	if err != nil {
		return catalogError(formatter, name, err)
	}

	unit := rec.Unit
	if opts.Unit != "" {
		unit = opts.Unit
	}
	eval, code, err := evaluate(rec.Name, rec.Value, factorArgs, unit)
	if err != nil {
		return evalError(formatter, code, err)
	}

	result := ShowResult{Entry: rec.Entry, Eval: &eval}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "name:    %s\n", rec.Name)
	fmt.Fprintf(w, "unit:    %s\n", rec.Unit)
	fmt.Fprintf(w, "kind:    %s\n", rec.Kind)
	if rec.Tag != "" {
		fmt.Fprintf(w, "tag:     %s\n", rec.Tag)
	}
	fmt.Fprintf(w, "payload: %s\n", rec.Payload)
	fmt.Fprintf(w, "value:   %s\n", eval.Display)
	return nil
}

func runCatalogDelete(opts *CatalogOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	c, err := openCatalog(opts, formatter)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Delete(commandContext(cmd), name); err != nil {
		return catalogError(formatter, name, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]string{"deleted": name})
	}
	fmt.Fprintf(formatter.Writer, "✓ deleted %s\n", name)
	return nil
}

func catalogError(formatter *OutputFormatter, name string, err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return commandError(formatter, ErrCodeUnknownQuantity, fmt.Sprintf("no quantity %q in catalog", name))
	case errors.Is(err, catalog.ErrCorrupt):
		_ = formatter.Error(ErrCodeCatalogCorrupt, err.Error(), nil)
		return WrapExitError(ExitFailure, ErrCodeCatalogCorrupt, err)
	default:
		return WrapExitError(ExitCommandError, "catalog", err)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
