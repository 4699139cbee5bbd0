// Package symbol turns a code string into a square 2D barcode image.
//
// The encoding policy favors the smallest symbol that can carry the code:
//
//  1. A Micro QR symbol is tried first (M1 through M4). The smallest version
//     that fits at its lowest error level is chosen, then the error level is
//     raised as far as the chosen version still allows.
//  2. When no Micro QR version fits, a standard QR symbol is produced at the
//     caller's error level (L by default).
//
// Encoded symbols are rasterized to PNG by [Rasterize] with a one-module
// quiet border and a pixel scale of max(1, size/25).
//
// [Encoder] adds caching and bounded parallel encoding of many codes on top
// of the pure [Select] policy.
package symbol
