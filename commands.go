package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jalad-shrimali/cdr-billing/desk"
	"github.com/jalad-shrimali/cdr-billing/logger"
)

type exportOptions struct {
	in     string
	out    string
	sort   bool
	format string
}

func newExportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Load a CDR file and write it back out as csv or xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.in, "in", "", "CDR text file to load (required)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Destination path (required)")
	cmd.Flags().BoolVar(&opts.sort, "sort", false, "Selection sort by duration before export")
	cmd.Flags().StringVar(&opts.format, "format", "csv", "Output format: csv | xlsx")

	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runExport(cmd *cobra.Command, opts exportOptions) error {
	ctx := cmd.Context()
	d := desk.New(desk.WithLogger(logger.Logger))

	var export desk.Request
	switch strings.ToLower(opts.format) {
	case "csv":
		export = desk.ExportFile{Path: opts.out}
	case "xlsx":
		export = desk.ExportWorkbook{Path: opts.out}
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	res, err := d.Execute(ctx, desk.LoadFile{Path: opts.in})
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w.String())
	}

	if opts.sort {
		if _, err := d.Execute(ctx, desk.SortByDuration{}); err != nil {
			return err
		}
	}

	res, err = d.Execute(ctx, export)
	fmt.Fprintln(cmd.OutOrStdout(), res.Status)
	return err
}

type searchOptions struct {
	in     string
	id     string
	binary bool
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find one call by id in a CDR file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.in, "in", "", "CDR text file to load (required)")
	cmd.Flags().StringVar(&opts.id, "id", "", "Call ID (case-insensitive, required)")
	cmd.Flags().BoolVar(&opts.binary, "binary", false, "Use binary search instead of linear")

	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func runSearch(cmd *cobra.Command, opts searchOptions) error {
	ctx := cmd.Context()
	d := desk.New(desk.WithLogger(logger.Logger))

	if _, err := d.Execute(ctx, desk.LoadFile{Path: opts.in}); err != nil {
		return err
	}

	var req desk.Request = desk.LinearSearch{CallID: opts.id}
	if opts.binary {
		req = desk.BinarySearch{CallID: opts.id}
	}
	res, err := d.Execute(ctx, req)
	if errors.Is(err, desk.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), res.Status)
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Status)
	fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return nil
}
