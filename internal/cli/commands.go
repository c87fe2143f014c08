package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/laptop-specs/internal/normalize"
	"github.com/joseph-ayodele/laptop-specs/internal/store"
)

func addExtractFlags(cmd *cobra.Command, o *extractOptions) {
	cmd.Flags().StringVar(&o.dir, "dir", "", "PDF datasheet directory (default PDF_DIR)")
	cmd.Flags().StringVar(&o.out, "out", "", "raw records file (default RAW_SPECS_FILE)")
	cmd.Flags().IntVar(&o.workers, "workers", 0, "parallel extractions (default WORKERS)")
	cmd.Flags().BoolVar(&o.dedupe, "dedupe", false, "skip PDFs whose content duplicates an earlier file")
}

func newExtractCmd(a *app) *cobra.Command {
	var (
		o     extractOptions
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract raw spec records from every PDF of a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o.dir = pick(o.dir, a.cfg.Paths.PDFDir)
			o.out = pick(o.out, a.cfg.Paths.RawSpecsFile)
			round := func(ctx context.Context) error {
				_, err := a.extractDir(ctx, o)
				return err
			}
			if err := round(cmd.Context()); err != nil {
				return err
			}
			if watch {
				return a.watch(cmd.Context(), o.dir, round)
			}
			return nil
		},
	}
	addExtractFlags(cmd, &o)
	cmd.Flags().BoolVar(&watch, "watch", false, "re-extract whenever PDFs in the directory change")
	return cmd
}

func newNormalizeCmd(a *app) *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Coerce raw records into the schema's shape",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			in = pick(in, a.cfg.Paths.RawSpecsFile)
			out = pick(out, a.cfg.Paths.NormalizedSpecsFile)

			docs, err := readDocuments(in)
			if err != nil {
				return err
			}
			normalized := normalize.Normalize(docs)
			if err := store.WriteJSON(out, normalized); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "normalized %d record(s) -> %s\n", len(normalized), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "raw records file (default RAW_SPECS_FILE)")
	cmd.Flags().StringVar(&out, "out", "", "normalized records file (default NORMALIZED_SPECS_FILE)")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	var in, schemaPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate normalized records against the schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			in = pick(in, a.cfg.Paths.NormalizedSpecsFile)
			docs, err := readDocuments(in)
			if err != nil {
				return err
			}
			res, err := a.validate(docs, schemaPath)
			if err != nil {
				return err
			}
			if res.Valid {
				fmt.Fprintf(a.stdout, "%s: %d record(s) valid\n", in, len(docs))
				return nil
			}
			fmt.Fprintf(a.stdout, "%s: %d violation(s)\n", in, len(res.Errors))
			for _, v := range res.Errors {
				fmt.Fprintf(a.stdout, "  %s\n", v)
			}
			return res.Err()
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "records file (default NORMALIZED_SPECS_FILE)")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "schema file, JSON or YAML (default SCHEMA_FILE or the built-in schema)")
	return cmd
}

func newListingsCmd(a *app) *cobra.Command {
	var dir, out string
	cmd := &cobra.Command{
		Use:   "listings",
		Short: "Parse saved vendor product pages into listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.parseListings(cmd.Context(), pick(dir, a.cfg.Paths.HTMLDir), pick(out, a.cfg.Paths.ListingsFile))
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "saved .html/.htm pages (default HTML_DIR)")
	cmd.Flags().StringVar(&out, "out", "", "listings file (default LISTINGS_FILE)")
	return cmd
}

func newMergeCmd(a *app) *cobra.Command {
	var specs, listingsPath, out string
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge normalized records with web listings into the context file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			docs, err := readDocuments(pick(specs, a.cfg.Paths.NormalizedSpecsFile))
			if err != nil {
				return err
			}
			// without an explicit --listings a missing default file means pdf-only
			lp := listingsPath
			if lp == "" && fileExists(a.cfg.Paths.ListingsFile) {
				lp = a.cfg.Paths.ListingsFile
			}
			listings, err := a.optionalListings(lp)
			if err != nil {
				return err
			}
			_, err = a.merge(docs, listings, pick(out, a.cfg.Paths.ContextFile))
			return err
		},
	}
	cmd.Flags().StringVar(&specs, "specs", "", "normalized records file (default NORMALIZED_SPECS_FILE)")
	cmd.Flags().StringVar(&listingsPath, "listings", "", "listings file (default LISTINGS_FILE)")
	cmd.Flags().StringVar(&out, "out", "", "merged context file (default CONTEXT_FILE)")
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the summary and field completeness report",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			docs, err := readDocuments(pick(in, a.cfg.Paths.NormalizedSpecsFile))
			if err != nil {
				return err
			}
			return a.writeReport(docs, out, true)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "normalized records file (default NORMALIZED_SPECS_FILE)")
	cmd.Flags().StringVar(&out, "out", "", "also write the report to this file")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var in, listingsPath, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the normalized records as an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := readDocuments(pick(in, a.cfg.Paths.NormalizedSpecsFile))
			if err != nil {
				return err
			}
			ls, err := a.optionalListings(listingsPath)
			if err != nil {
				return err
			}
			return a.writeWorkbook(cmd.Context(), docs, ls, pick(out, a.cfg.Paths.WorkbookFile))
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "normalized records file (default NORMALIZED_SPECS_FILE)")
	cmd.Flags().StringVar(&listingsPath, "listings", "", "listings file to price the rows (optional)")
	cmd.Flags().StringVar(&out, "out", "", "workbook file (default WORKBOOK_FILE)")
	return cmd
}

func newSchemaCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print or write the laptop specification schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := a.loadSchema("")
			if err != nil {
				return err
			}
			b, err := s.JSON()
			if err != nil {
				return err
			}
			if out == "" {
				_, err := a.stdout.Write(b)
				return err
			}
			if err := store.WriteFile(out, b); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "schema -> %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the schema to this file instead of stdout")
	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	var (
		o     runOptions
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Extract, normalize, validate and persist, then merge listings and report",
		Long: `run executes the whole pipeline over PDF_DIR. Normalized records are written
even when validation fails unless --strict is given; violations are logged per path.
Saved product pages in HTML_DIR, when present, are parsed and merged into the
context file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o.extract.dir = pick(o.extract.dir, a.cfg.Paths.PDFDir)
			o.extract.out = pick(o.extract.out, a.cfg.Paths.RawSpecsFile)
			o.htmlDir = pick(o.htmlDir, a.cfg.Paths.HTMLDir)

			round := func(ctx context.Context) error { return a.runAll(ctx, o) }
			if err := round(cmd.Context()); err != nil {
				return err
			}
			if watch {
				return a.watch(cmd.Context(), o.extract.dir, round)
			}
			return nil
		},
	}
	addExtractFlags(cmd, &o.extract)
	cmd.Flags().StringVar(&o.htmlDir, "pages", "", "saved product page directory (default HTML_DIR)")
	cmd.Flags().BoolVar(&o.skipPages, "no-pages", false, "skip product page parsing")
	cmd.Flags().StringVar(&o.schema, "schema", "", "schema file, JSON or YAML (default SCHEMA_FILE or the built-in schema)")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "fail without persisting when validation finds violations")
	cmd.Flags().BoolVar(&o.workbook, "xlsx", true, "also write the XLSX workbook")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run whenever PDFs in the directory change")
	return cmd
}
