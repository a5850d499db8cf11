// Package paramfile rewrites the intruder block of a simulator parameter
// file. Only the intruder block is touched and only by brace matching; the
// rest of the file is never parsed.
package paramfile

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

var altitudeRe = regexp.MustCompile(`(?m)^[ \t]*altitude:[ \t]*([+-]?\d+)[ \t]*\r?$`)

// ReferenceAltitude returns the value of the first line that consists of an
// integer altitude assignment, or fallback when there is none.
func ReferenceAltitude(doc string, fallback int) int {
	m := altitudeRe.FindStringSubmatch(doc)
	if m == nil {
		return fallback
	}
	alt, err := strconv.Atoi(m[1])
	if err != nil {
		return fallback
	}
	return alt
}

// OutputPath is where the rewritten file goes. An empty suffix rewrites the
// input in place.
func OutputPath(input, suffix string) string {
	return input + suffix
}

// Result describes one rewrite.
type Result struct {
	Path      string
	Reference int
	Replaced  bool
}

// Rewrite reads inputPath, asks render for the block given the file's
// reference altitude, splices it in and writes the result next to the input.
// Nothing is written if the input cannot be read or render fails.
func Rewrite(inputPath, suffix string, defaultAltitude int, render func(reference int) (string, error)) (Result, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read params file: %w", err)
	}
	doc := string(data)

	ref := ReferenceAltitude(doc, defaultAltitude)
	block, err := render(ref)
	if err != nil {
		return Result{}, err
	}

	out, replaced := Splice(doc, block)

	mode := os.FileMode(0o644)
	if fi, err := os.Stat(inputPath); err == nil {
		mode = fi.Mode().Perm()
	}

	path := OutputPath(inputPath, suffix)
	if err := os.WriteFile(path, []byte(out), mode); err != nil {
		return Result{}, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return Result{Path: path, Reference: ref, Replaced: replaced}, nil
}
