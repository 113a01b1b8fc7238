// Package fuzztests houses Go fuzz harnesses that run raw bytes through the
// whole formatting pipeline (decode -> lexer -> printer) and check that it
// never panics, stays lossless, and converges.
package fuzztests
