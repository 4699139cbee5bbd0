// Package pipeline runs a complete sheet generation request.
//
// A request moves through four stages:
//
//  1. Validate: options are normalized and codes trimmed; nothing touches disk
//  2. Layout: the page grid is computed when a PDF is requested, so a symbol
//     that cannot fit fails before any directory exists
//  3. Encode: every code becomes a PNG in a fresh session directory
//  4. Render: the PDF and/or ZIP archive is written next to the images
//
// Any failure after the session directory is created discards it, so a failed
// request leaves no partial output behind.
//
// # Usage
//
//	runner := pipeline.NewRunner(workspace, cache, nil, logger)
//	result, err := runner.Execute(ctx, codes, pipeline.Options{
//	    Size:   75,
//	    Output: pipeline.OutputBoth,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Artifacts[pipeline.ArtifactPDF])
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrsheet/pkg/errors"
	"github.com/matzehuels/qrsheet/pkg/grid"
	"github.com/matzehuels/qrsheet/pkg/render/page"
	"github.com/matzehuels/qrsheet/pkg/symbol"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// MinSize is the smallest symbol size in points. Smaller requests are
	// raised to it, since tinier prints do not scan reliably.
	MinSize = 50

	// DefaultPageMargin is the default page margin in points.
	DefaultPageMargin = 5.0
)

// Output selections.
const (
	OutputPDF  = "pdf"
	OutputZIP  = "zip"
	OutputBoth = "both"
)

// Artifact kinds used as keys of Result.Artifacts.
const (
	ArtifactPDF = "pdf"
	ArtifactZIP = "zip"
	ArtifactPNG = "png"
)

// File names inside a session directory.
const (
	FilePDF    = "qr_codes.pdf"
	FileZIP    = "qr_codes.zip"
	FileSingle = "qr_code.png"
	SymbolDir  = "symbols"
)

// ValidOutputs is the set of supported output selections.
var ValidOutputs = map[string]bool{
	OutputPDF:  true,
	OutputZIP:  true,
	OutputBoth: true,
}

// =============================================================================
// Options - Request Configuration
// =============================================================================

// Options configures one generation request.
type Options struct {
	Size               int     `json:"size"`
	PageMargin         float64 `json:"page_margin"`
	SymbolMargin       float64 `json:"symbol_margin"`
	IncludeText        bool    `json:"include_text,omitempty"`
	IncludePageNumbers bool    `json:"include_page_numbers,omitempty"`
	ErrorLevel         string  `json:"error_level,omitempty"`
	Output             string  `json:"output,omitempty"`
	Page               string  `json:"page,omitempty"`
	Title              string  `json:"title,omitempty"`
	Workers            int     `json:"workers,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	level     symbol.Level
	pageSize  grid.Size
	validated bool
}

// ValidateAndSetDefaults normalizes the options and rejects invalid values.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
//
// Sizes below MinSize are raised to it and negative margins become zero;
// these are corrections, not errors.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Size < MinSize {
		o.Size = MinSize
	}
	if o.PageMargin < 0 {
		o.PageMargin = 0
	}
	if o.SymbolMargin < 0 {
		o.SymbolMargin = 0
	}

	level, err := symbol.ParseLevel(o.ErrorLevel)
	if err != nil {
		return err
	}
	o.level = level
	o.ErrorLevel = strings.ToLower(level.String())

	if o.Output == "" {
		o.Output = OutputPDF
	}
	o.Output = strings.ToLower(o.Output)
	if err := ValidateOutput(o.Output); err != nil {
		return err
	}

	if o.Page == "" {
		o.Page = grid.DefaultPage
	}
	ps, err := grid.PageSize(o.Page)
	if err != nil {
		return err
	}
	o.pageSize = ps
	o.Page = ps.Name

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateOutput checks that an output selection is valid.
func ValidateOutput(output string) error {
	if !ValidOutputs[output] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid output: %q (must be one of: pdf, zip, both)", output)
	}
	return nil
}

// WantsPDF reports whether a PDF is requested.
func (o *Options) WantsPDF() bool {
	return o.Output == OutputPDF || o.Output == OutputBoth
}

// WantsZIP reports whether a ZIP archive is requested.
func (o *Options) WantsZIP() bool {
	return o.Output == OutputZIP || o.Output == OutputBoth
}

// Level returns the parsed error level. Valid after ValidateAndSetDefaults.
func (o *Options) Level() symbol.Level {
	return o.level
}

// LayoutParams returns the grid parameters. Valid after ValidateAndSetDefaults.
func (o *Options) LayoutParams() grid.Params {
	return o.pageSize.Params(o.PageMargin, float64(o.Size), o.SymbolMargin)
}

// SymbolOptions returns the encoder options.
func (o *Options) SymbolOptions() symbol.Options {
	return symbol.Options{Size: o.Size, Level: o.level, Workers: o.Workers}
}

func (o *Options) pageOptions() []page.Option {
	var opts []page.Option
	if o.IncludeText {
		opts = append(opts, page.WithLabels())
	}
	if o.IncludePageNumbers {
		opts = append(opts, page.WithPageNumbers())
	}
	if o.Title != "" {
		opts = append(opts, page.WithTitle(o.Title))
	}
	return opts
}

// =============================================================================
// Result
// =============================================================================

// Result describes a finished request.
type Result struct {
	SessionID string `json:"session_id"`
	Dir       string `json:"dir"`

	// Artifacts maps an artifact kind to its file path.
	Artifacts map[string]string `json:"artifacts"`

	// Symbols are the encoded codes in input order.
	Symbols []*symbol.Symbol `json:"-"`

	// Layout is set when a PDF was rendered.
	Layout *grid.Layout `json:"layout,omitempty"`

	// ArchiveNames are the ZIP entry names in input order.
	ArchiveNames []string `json:"archive_names,omitempty"`

	Stats Stats `json:"stats"`
}

// Stats contains request statistics.
type Stats struct {
	TotalCodes    int `json:"total_qr_codes"`
	MicroCount    int `json:"micro_count"`
	StandardCount int `json:"standard_count"`
	PerPage       int `json:"qr_per_page,omitempty"`
	TotalPages    int `json:"total_pages,omitempty"`

	LayoutTime time.Duration `json:"-"`
	EncodeTime time.Duration `json:"-"`
	RenderTime time.Duration `json:"-"`
}

// Summary returns a one-line description of the stats.
func (s Stats) Summary() string {
	msg := fmt.Sprintf("%d codes (%d micro, %d standard)", s.TotalCodes, s.MicroCount, s.StandardCount)
	if s.TotalPages > 0 {
		msg += fmt.Sprintf(", %d per page on %d pages", s.PerPage, s.TotalPages)
	}
	return msg
}
