// Package pkg provides the libraries behind the qrsheet command.
//
// # Overview
//
// qrsheet turns a column of codes into printable QR code sheets. The packages
// are organized by stage:
//
//  1. [source] - reading codes from CSV, XLSX and XLS files; URL and vCard payloads
//  2. [grid] - page grid and pagination math
//  3. [symbol] - Micro QR and standard QR encoding and rasterization
//  4. [render] - PDF pages and ZIP archives
//  5. [session] - per-request output directories, registries and the sweeper
//  6. [pipeline] - orchestration (validate → layout → encode → render)
//
// Supporting packages: [cache] (encoded symbol cache), [config] (TOML and
// environment settings), [errors] (coded errors), [observability] (hooks) and
// [buildinfo].
//
// # Data Flow
//
//	spreadsheet column
//	         ↓
//	    [source] (trimmed, non-empty codes)
//	         ↓
//	    [grid] (columns, rows, pages; fails before anything is written)
//	         ↓
//	    [symbol] (smallest Micro QR, else standard QR; PNG per code)
//	         ↓
//	    [render] (PDF and/or ZIP inside a [session] directory)
//
// # Quick Start
//
//	codes, _ := source.ReadColumn("products.xlsx", source.Options{Column: 2})
//
//	ws, _ := session.NewWorkspace("/var/lib/qrsheet", nil)
//	runner := pipeline.NewRunner(ws, nil, nil, nil)
//	result, err := runner.Execute(ctx, codes, pipeline.Options{
//	    Size:        75,
//	    IncludeText: true,
//	    Output:      pipeline.OutputBoth,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Artifacts[pipeline.ArtifactPDF])
//
// [source]: github.com/matzehuels/qrsheet/pkg/source
// [grid]: github.com/matzehuels/qrsheet/pkg/grid
// [symbol]: github.com/matzehuels/qrsheet/pkg/symbol
// [render]: github.com/matzehuels/qrsheet/pkg/render
// [session]: github.com/matzehuels/qrsheet/pkg/session
// [pipeline]: github.com/matzehuels/qrsheet/pkg/pipeline
// [cache]: github.com/matzehuels/qrsheet/pkg/cache
// [config]: github.com/matzehuels/qrsheet/pkg/config
// [errors]: github.com/matzehuels/qrsheet/pkg/errors
// [observability]: github.com/matzehuels/qrsheet/pkg/observability
// [buildinfo]: github.com/matzehuels/qrsheet/pkg/buildinfo
package pkg
