package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieldk/embeval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVectors = `4 2
a 1 0
b 0 1
c 1 1
d -1 0
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommands(t *testing.T) {
	cmd := newRootCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	for _, name := range []string{"analogies", "analogy", "distance", "bin2text", "history"} {
		assert.Contains(t, names, name)
	}
}

func TestAnalogiesFlags(t *testing.T) {
	cmd := newAnalogiesCmd()

	for _, name := range []string{"config", "lower", "verbose", "row-limit", "backend", "format", "no-memory-check", "json", "db"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	assert.Equal(t, "c", cmd.Flags().Lookup("config").Shorthand)
	assert.Equal(t, "true", cmd.Flags().Lookup("lower").DefValue)
	assert.Equal(t, "500", cmd.Flags().Lookup("row-limit").DefValue)
}

func TestAnalogiesText(t *testing.T) {
	vectors := writeFile(t, "vectors.txt", testVectors)
	questions := writeFile(t, "questions.txt", ": test\nA B C D\na b c e\n")

	out, _, err := execute(t, "", "analogies", vectors, questions)
	require.NoError(t, err)

	assert.Contains(t, out, "test")
	assert.Contains(t, out, "total correct: 1, total found: 1, discarded: 1 (50.00%)")
	assert.Contains(t, out, "total accuracy: 1.0000")
}

func TestAnalogiesJSON(t *testing.T) {
	vectors := writeFile(t, "vectors.txt", testVectors)
	questions := writeFile(t, "questions.txt", ": test\na b c d\n")

	out, _, err := execute(t, "", "analogies", "--json", "--row-limit", "1", vectors, questions)
	require.NoError(t, err)

	var report embeval.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.TotalCorrect)
	assert.Equal(t, 1, report.RowLimit)
	assert.Equal(t, embeval.DefaultBackend, report.Backend)
	require.Len(t, report.Blocks, 1)
	assert.Equal(t, "test_0", report.Blocks[0].Key)
}

func TestAnalogiesConfigFile(t *testing.T) {
	vectors := writeFile(t, "vectors.txt", testVectors)
	questions := writeFile(t, "questions.txt", ": test\nA B C D\n")
	config := writeFile(t, "embeval.yaml", "lower: false\n")

	_, _, err := execute(t, "", "analogies", "-c", config, vectors, questions)
	assert.ErrorIs(t, err, embeval.ErrNoValidExamples)

	// Flags take precedence over the configuration file.
	out, _, err := execute(t, "", "analogies", "-c", config, "--lower", vectors, questions)
	require.NoError(t, err)
	assert.Contains(t, out, "total accuracy: 1.0000")
}

func TestAnalogiesInvalidOptions(t *testing.T) {
	vectors := writeFile(t, "vectors.txt", testVectors)
	questions := writeFile(t, "questions.txt", ": test\na b c d\n")

	_, _, err := execute(t, "", "analogies", "--backend", "bogus", vectors, questions)
	assert.ErrorIs(t, err, embeval.ErrUnknownBackend)

	_, _, err = execute(t, "", "analogies", "--row-limit", "0", vectors, questions)
	assert.Error(t, err)

	_, _, err = execute(t, "", "analogies", vectors)
	assert.Error(t, err)

	_, _, err = execute(t, "", "analogies", filepath.Join(t.TempDir(), "missing.txt"), questions)
	assert.ErrorContains(t, err, "cannot read vectors")
}

func TestAnalogiesVerboseLogsToStderr(t *testing.T) {
	vectors := writeFile(t, "vectors.txt", testVectors)
	questions := writeFile(t, "questions.txt", ": test\na b c d\n")

	_, errOut, err := execute(t, "", "analogies", "-v", vectors, questions)
	require.NoError(t, err)
	assert.Contains(t, errOut, "finished batch")
	assert.Contains(t, errOut, "evaluation finished")
}

func TestHistory(t *testing.T) {
	vectors := writeFile(t, "vectors.txt", testVectors)
	questions := writeFile(t, "questions.txt", ": test\na b c d\n")
	db := filepath.Join(t.TempDir(), "history", "runs.db")

	out, _, err := execute(t, "", "analogies", "--json", "--db", db, vectors, questions)
	require.NoError(t, err)

	var report embeval.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	out, _, err = execute(t, "", "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, report.RunID)
	assert.Contains(t, out, vectors)

	out, _, err = execute(t, "", "history", "--db", db, "--run", report.RunID)
	require.NoError(t, err)
	assert.Contains(t, out, "test")
	assert.Contains(t, out, "1.0000")

	_, _, err = execute(t, "", "history", "--db", db, "--run", "bogus")
	assert.ErrorContains(t, err, "no run with id bogus")
}

func TestAnalogyCmd(t *testing.T) {
	vectors := writeFile(t, "vectors.txt", testVectors)

	out, errOut, err := execute(t, "a b c\na b\na b bogus\n", "analogy", "-n", "1", vectors)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "d "), out)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, errOut, "Skipping line that does not have three words: a b")
	assert.Contains(t, errOut, "bogus")
}

func TestDistanceCmd(t *testing.T) {
	vectors := writeFile(t, "vectors.txt", testVectors)

	out, errOut, err := execute(t, "a\n\na c\nbogus\na b c\n", "distance", "-n", "1", vectors)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "c "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0.707"), lines[1])
	assert.Contains(t, errOut, "bogus")
	assert.Contains(t, errOut, "Skipping line with more than two words")
}

func TestBin2Text(t *testing.T) {
	embeds := embeval.NewEmbeddings(2)
	require.NoError(t, embeds.Put("a", []float32{1, 0}))
	require.NoError(t, embeds.Put("b", []float32{0.5, 0.25}))

	var buf bytes.Buffer
	require.NoError(t, embeval.WriteWord2VecBinary(&buf, embeds))
	path := writeFile(t, "vectors.bin", buf.String())

	out, _, err := execute(t, "", "bin2text", path)
	require.NoError(t, err)

	roundTrip, err := embeval.ReadText(strings.NewReader(out), false)
	require.NoError(t, err)
	assert.Equal(t, 2, roundTrip.Size())

	vec, ok := roundTrip.Embedding("b")
	require.True(t, ok)
	assert.Equal(t, []float32{0.5, 0.25}, vec)
}
