package main

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it, line by line. Grounded on the cobra
// SetOut/SetErr capture style in termfx-morfx/cmd/morfx's own tests,
// adapted for runBundle's direct os.Stdout writes (json.NewEncoder in
// run.go) rather than a cobra command's own output streams.
func captureStdout(t *testing.T, fn func()) []string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	require.NoError(t, w.Close())

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

func TestRunBundleNumbersRange(t *testing.T) {
	var runErr error
	lines := captureStdout(t, func() {
		runErr = runBundle("../../testdata/numbers_range.yaml")
	})
	require.NoError(t, runErr)
	require.Len(t, lines, 2)

	var values []int64
	for _, line := range lines {
		var row map[string]int64
		require.NoError(t, json.Unmarshal([]byte(line), &row))
		values = append(values, row["value"])
	}
	require.ElementsMatch(t, []int64{4, 5}, values)
}

func TestRunBundleLibraryAuthors(t *testing.T) {
	var runErr error
	lines := captureStdout(t, func() {
		runErr = runBundle("../../testdata/library_authors.yaml")
	})
	require.NoError(t, runErr)
	// 4 books + 2 magazines, one (The Fantasist) with a null author.
	require.Len(t, lines, 6)
}

func TestRunBundleUnknownDomainIsRejected(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/bad.yaml"
	require.NoError(t, os.WriteFile(path, []byte("domain: spreadsheet\nquery: \"{ x }\"\n"), 0o644))

	captureStdout(t, func() {
		err := runBundle(path)
		require.Error(t, err)
	})
}
