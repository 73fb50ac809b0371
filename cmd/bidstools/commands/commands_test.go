// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bids-standard/bidstools/cmd/bidstools/internal/clierr"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestVersion(t *testing.T) {
	t.Setenv("BIDSTOOLS_VERSION", "1.2.3")
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "bidstools version 1.2.3\n", out)
}

func TestDummy_DefaultLayout(t *testing.T) {
	root := t.TempDir()

	out, err := execute(t, "--root", root, "dummy", "--jobs", "2")
	require.NoError(t, err)

	raw := filepath.Join(root, "tests", "data", "dummy", "raw")
	assert.Contains(t, out, "Dummy BIDS dataset created at: "+raw)
	assert.Contains(t, out, "(3 subjects, 2 sessions, 106 files)")
	assert.FileExists(t, filepath.Join(raw, "sub-ctrl01", "ses-01", "anat", "sub-ctrl01_ses-01_T1w.nii"))
	assert.FileExists(t, filepath.Join(raw, "dataset_description.json"))
}

func TestDummy_FlagsOverrideConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bidstools.toml"), `
[dummy]
output_dir = "from-config"
subjects = ["a", "b"]
`)

	out, err := execute(t, "--root", root, "dummy",
		"--output", "fixture", "--subjects", "x", "--sessions", "03", "--anat-session", "03",
		"--no-dataset-description")
	require.NoError(t, err)
	assert.Contains(t, out, "(1 subjects, 1 sessions, 18 files)")

	assert.NoDirExists(t, filepath.Join(root, "from-config"))
	assert.FileExists(t, filepath.Join(root, "fixture", "sub-x", "ses-03", "anat", "sub-x_ses-03_T1w.nii"))
	assert.NoFileExists(t, filepath.Join(root, "fixture", "dataset_description.json"))
}

func TestDummy_InvalidLabelIsUsageError(t *testing.T) {
	_, err := execute(t, "--root", t.TempDir(), "dummy", "--subjects", "bad_label")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))
}

func TestDummy_EmptySessionLabelsAreUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--sessions", "01,"},
		{"--anat-session", ""},
	} {
		root := t.TempDir()
		_, err := execute(t, append([]string{"--root", root, "dummy"}, args...)...)
		require.Error(t, err, args)
		assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err), args)
		assert.NoDirExists(t, filepath.Join(root, "tests"), args)
	}
}

func TestConfig_UnknownKeyIsUsageError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bidstools.toml"), "[dummy]\nsubject = [\"a\"]\n")

	_, err := execute(t, "--root", root, "dummy")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))
	assert.Contains(t, err.Error(), "dummy.subject")
}

func TestSchema_MissingInputIsIOError(t *testing.T) {
	_, err := execute(t, "--root", t.TempDir(), "schema")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitIO, clierr.ExitCodeOf(err))
}

func TestSchema_Converts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "objects", "entities.yaml"), "subject:\n  name: sub\n")

	out, err := execute(t, "--root", root, "schema", "--input", "src", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Converted 1 schema files")
	assert.FileExists(t, filepath.Join(root, "json", "objects", "entities.json"))
}

func TestChangelog_RewritesFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "CHANGES.md")
	writeFile(t, path, "* fix layout #12 @alice\n")

	_, err := execute(t, "--root", root, "changelog", "--file", "CHANGES.md", "--repo", "org/repo")
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got), "[12](https://github.com/org/repo/pull/12)")
	assert.Contains(t, string(got), "by [alice](https://github.com/alice)")
}

func TestNotebooks_MissingDirNamesIt(t *testing.T) {
	_, err := execute(t, "--root", t.TempDir(), "notebooks", "--dir", "nowhere")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitIO, clierr.ExitCodeOf(err))
	assert.Contains(t, err.Error(), "converting notebooks in nowhere")
}

func TestPaper_FirstAuthorMissing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "CITATION.cff"), `
authors:
  - given-names: Ada
    family-names: Lovelace
`)

	_, err := execute(t, "--root", root, "paper", "--first-author", "Nobody")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitUsage, clierr.ExitCodeOf(err))

	out, err := execute(t, "--root", root, "paper", "--first-author", "Lovelace")
	require.NoError(t, err)
	assert.Contains(t, out, "(1 authors, 0 affiliations)")
	assert.FileExists(t, filepath.Join(root, "docs", "paper", "metadata.yml"))
}

func TestRun_ListJSON(t *testing.T) {
	out, err := execute(t, "run", "list", "--json")
	require.NoError(t, err)

	var got map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"schema", "dummy", "changelog", "docs", "paper", "notebooks"}, got["tasks"])
}

func TestRun_AllThenReport(t *testing.T) {
	root := t.TempDir()

	out, err := execute(t, "--root", root, "run", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "SKIP: schema")
	assert.Contains(t, out, "PASS: dummy")
	assert.FileExists(t, filepath.Join(root, ".bidstools", "run", "last-run.json"))

	out, err = execute(t, "--root", root, "run", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: pass")
	assert.Contains(t, out, "pass dummy")
	assert.Contains(t, out, "All passed.")

	_, err = execute(t, "--root", root, "run", "reset")
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(root, ".bidstools", "run"))

	out, err = execute(t, "--root", root, "run", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "No run state found.")
}

func TestRun_UnknownTask(t *testing.T) {
	_, err := execute(t, "--root", t.TempDir(), "run", "nope")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitFailure, clierr.ExitCodeOf(err))
	assert.Contains(t, err.Error(), "task not found: nope")
}
