// Package compression extracts the tar archives produced by the dataset
// preparation tooling without shelling out to `tar` and `zstd`.
//
// Datasets are published as tar archives compressed with zstd, optionally split
// into several volumes. Each volume is an independent, complete archive: it can
// be decompressed and unpacked on its own, so volumes never share a zstd frame
// or a tar header.
//
// The "dataset" archives are compressed with long-distance matching, which
// requires the decoder to accept a window of up to 1 GiB (`--long=30`). The
// default decoder settings mirror the zstd command-line defaults and refuse such
// frames, so callers have to opt in with [DatasetDecoderOptions].
package compression
