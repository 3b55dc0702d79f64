// Package io reads and writes scene configuration files.
//
// # Formats
//
// Scene files are TOML by default. YAML (.yaml, .yml) and JSON (.json) are
// accepted as well; the format is picked from the file extension by
// [FormatFromPath].
//
//	seed = 7
//	books = 24
//	colormap = "muted"
//
//	[width]
//	kind = "positive"
//	mean = 3.5
//	std = 0.4
//
// Keys that are left out keep their [scene.Default] value, so a file only
// needs to name what it changes. Unknown keys are rejected.
//
// # Import
//
// Use [ImportScene] to read a configuration from a file path, or
// [ReadScene] to read from any io.Reader. Both validate the result.
//
//	cfg, err := io.ImportScene("shelf.toml")
//
// # Export
//
// [ExportScene] and [WriteScene] write a configuration back out, which is
// how `bookrack inspect --dump` produces a starting file.
package io
