package main

import (
	"fmt"
	"io"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/conform"
	"github.com/reoring/conform/internal/fleet"
	"github.com/reoring/conform/source"
)

type checkOptions struct {
	kind       string
	format     source.Format
	output     string
	strictKeys bool
	verbose    bool
}

// fileReport is the outcome for one input file.
type fileReport struct {
	File   string         `json:"file"`
	OK     bool           `json:"ok"`
	Errors conform.Errors `json:"errors,omitempty"`
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate documents and report every nonconformance",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := newConfig(cmd)
			if err != nil {
				return err
			}
			format, err := source.ParseFormat(cfg.GetString("format"))
			if err != nil {
				return err
			}
			opts := checkOptions{
				kind:       cfg.GetString("kind"),
				format:     format,
				output:     cfg.GetString("output"),
				strictKeys: cfg.GetBool("strict-keys"),
				verbose:    cfg.GetBool("verbose"),
			}
			return runCheck(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, args)
		},
	}
	cmd.Flags().StringP("kind", "k", "spaceship", "validator to apply (see `conform kinds`)")
	cmd.Flags().StringP("format", "f", string(source.FormatAuto), "input format: auto, json or yaml")
	cmd.Flags().StringP("output", "o", "text", "report format: text or json")
	cmd.Flags().Bool("strict-keys", false, "also report repeated keys in JSON objects")
	return cmd
}

func runCheck(stdout, stderr io.Writer, opts checkOptions, files []string) error {
	logger := newLogger(stderr, opts.verbose)

	v, ok := fleet.Lookup(opts.kind)
	if !ok {
		return fmt.Errorf("unknown kind %q (known: %s)", opts.kind, strings.Join(fleet.Kinds(), ", "))
	}
	if opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("unknown output %q", opts.output)
	}

	reports := make([]fileReport, 0, len(files))
	for _, f := range files {
		logger.Debug("reading", "file", f, "format", opts.format)
		doc, err := source.Open(f, opts.format)
		if err != nil {
			return err
		}
		var errs conform.Errors
		ok := v.Validate(doc.Value, &errs, "")
		if opts.strictKeys {
			dups, err := doc.DuplicateKeys()
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			if len(dups) > 0 {
				errs = append(errs, dups...)
				ok = false
			}
		}
		logger.Debug("validated", "file", f, "kind", opts.kind, "ok", ok, "errors", len(errs))
		reports = append(reports, fileReport{File: f, OK: ok, Errors: errs})
	}

	if err := writeReports(stdout, opts.output, reports); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	for _, r := range reports {
		if !r.OK {
			return errNonconforming
		}
	}
	return nil
}

func writeReports(w io.Writer, output string, reports []fileReport) error {
	if output == "json" {
		enc := gojson.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
	for _, r := range reports {
		if r.OK {
			if _, err := fmt.Fprintf(w, "%s: ok\n", r.File); err != nil {
				return err
			}
			continue
		}
		for _, e := range r.Errors {
			path := e.Path
			if path == "" {
				path = "(root)"
			}
			if _, err := fmt.Fprintf(w, "%s: %s: %s\n", r.File, path, e.Message); err != nil {
				return err
			}
		}
	}
	return nil
}
