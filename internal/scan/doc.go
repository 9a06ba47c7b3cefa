// Package scan implements the image-metadata scanning pipeline: extraction
// of per-file metadata, directory traversal, and report formatting.
//
// The pipeline is three small pieces wired together by the MCP server:
//
//   - Extractor: given a file path, decides by extension whether the file
//     is an image and, if so, parses its header for width/height/format.
//     File size is always captured.
//   - Walker: enumerates a directory (optionally recursively) and collects
//     a Record for every qualifying file.
//   - Report formatting: Summarize renders a human-readable report,
//     Serialize produces the structured form for machine consumption.
//
// # Graceful Degradation
//
// A file that matches the image-extension allow-list but whose header
// cannot be parsed (corrupt, truncated, unsupported sub-format) is not an
// error: it yields a Record with only Size populated. Width, Height and
// Type are all-or-nothing — they are either all set from a successful
// header parse or all absent.
//
// # Error Handling
//
// File-system failures below the scan root (unreadable files, unreadable
// subdirectories) are reported to the diagnostic sink and skipped; the
// scan always returns the partial results it could gather. Only a root
// that cannot be accessed or is not a directory fails the whole call.
//
// # Concurrency
//
// A single walk is strictly sequential. Separate walks share no mutable
// state and may run concurrently.
//
// Symlink cycles are not detected; a tree containing a self-referential
// directory symlink is the caller's problem. Directory symlinks are not
// followed during recursion, which bounds the common cases.
package scan
