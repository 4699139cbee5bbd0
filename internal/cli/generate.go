package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsheet/pkg/errors"
	"github.com/matzehuels/qrsheet/pkg/pipeline"
	"github.com/matzehuels/qrsheet/pkg/source"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	generationFlags
	column  int    // 0-based code column
	pick    bool   // choose the column interactively
	maxRows int    // limit on codes read
	sheet   string // worksheet name for xlsx/xls
	dest    string // directory the artifacts are copied to
	noCache bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Generate a QR code sheet from a spreadsheet column",
		Long: `Generate reads one column of a CSV, XLSX or XLS file (the first row is the
header) and encodes every non-empty value. The symbols are laid out on PDF pages,
bundled as PNG images in a ZIP archive, or both.`,
		Example: `  qrsheet generate products.xlsx --column 2 --text --output both
  qrsheet generate codes.csv --pick --size 75 --dest ./out`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: spreadsheetArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], &opts)
		},
	}

	opts.register(cmd, true)
	cmd.Flags().IntVarP(&opts.column, "column", "c", 0, "0-based index of the code column")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose the code column interactively")
	cmd.Flags().IntVar(&opts.maxRows, "max-rows", 0, "read at most this many codes (0 = all)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "worksheet name (default: first sheet)")
	cmd.Flags().StringVarP(&opts.dest, "dest", "d", "", "copy the generated files to this directory")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the symbol cache")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, path string, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if opts.pick {
		preview, err := source.Preview(path, opts.sheet, pickerSamples)
		if err != nil {
			return err
		}
		col, ok, err := pickColumn(preview)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("No column selected")
			return nil
		}
		opts.column = col
	}

	prog := newProgress(logger)
	codes, err := source.ReadColumn(path, source.Options{
		Column:  opts.column,
		MaxRows: opts.maxRows,
		Sheet:   opts.sheet,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Read %d codes from %s", len(codes), filepath.Base(path)))

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer c.closeRunner(runner)

	popts := opts.options(cmd, c.Config.Defaults)
	popts.Logger = logger

	spinner := newSpinner(ctx, fmt.Sprintf("Generating %d symbols...", len(codes)))
	spinner.Start()
	result, err := runner.Execute(ctx, codes, popts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.StopWithSuccess("Generated " + result.Stats.Summary())
	printStats(result.Stats)

	return reportArtifacts(result, opts.dest)
}

// reportArtifacts prints the artifact paths, copying them to dest first when
// it is set.
func reportArtifacts(result *pipeline.Result, dest string) error {
	for _, kind := range []string{pipeline.ArtifactPDF, pipeline.ArtifactZIP, pipeline.ArtifactPNG} {
		path, ok := result.Artifacts[kind]
		if !ok {
			continue
		}
		if dest != "" {
			copied, err := copyToDir(path, dest)
			if err != nil {
				return err
			}
			path = copied
		}
		printFile(path)
	}
	printDetail("session %s", result.SessionID)
	return nil
}

// copyToDir copies src into dir, creating dir if needed, and returns the new
// path.
func copyToDir(src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "create %s", dir)
	}
	dst := filepath.Join(dir, filepath.Base(src))

	in, err := os.Open(src)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "open %s", src)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", errors.Wrap(errors.ErrCodeStorage, err, "copy to %s", dst)
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "close %s", dst)
	}
	return dst, nil
}

// runSingle encodes one payload and reports the PNG.
func (c *CLI) runSingle(ctx context.Context, cmd *cobra.Command, payload string, flags *generationFlags, dest string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer c.closeRunner(runner)

	opts := flags.options(cmd, c.Config.Defaults)
	opts.Logger = loggerFromContext(ctx)

	result, err := runner.Single(ctx, payload, opts)
	if err != nil {
		return err
	}
	s := result.Symbols[0]
	printSuccess("Encoded %s (%d×%d modules)", tierLabel(s.Info), s.Modules, s.Modules)
	return reportArtifacts(result, dest)
}
