// SPDX-License-Identifier: AGPL-3.0-or-later
package notebook

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `{
 "cells": [
  {"cell_type": "markdown", "metadata": {}, "source": ["# Layout\n", "Index a dataset."]},
  {"cell_type": "code", "execution_count": null, "metadata": {}, "outputs": [],
   "source": ["https://bids-matlab.readthedocs.io\n", "BIDS = bids.layout(pth);"]},
  {"cell_type": "raw", "source": ["ignored"]}
 ],
 "metadata": {},
 "nbformat": 4,
 "nbformat_minor": 4
}`

func TestScriptName(t *testing.T) {
	assert.Equal(t, "tutorial_basic.m", ScriptName("tutorial-basic.ipynb"))
	assert.Equal(t, "bids_matlab_and_schema.m", ScriptName("/tmp/bids matlab & schema.ipynb"))
	assert.Equal(t, "already_ok.m", ScriptName("already_ok.ipynb"))
}

func TestScriptName_KeepsCase(t *testing.T) {
	assert.Equal(t, "BIDS_Matlab_01_basics.m", ScriptName("BIDS-Matlab_01_basics.ipynb"))
	assert.Equal(t, "tutorial_Schema.m", ScriptName("demos/tutorial-Schema.ipynb"))
}

func TestSource_StringForm(t *testing.T) {
	var c Cell
	require.NoError(t, json.Unmarshal([]byte(`{"cell_type":"code","source":"a = 1;\nb = 2;"}`), &c))
	assert.Equal(t, Source{"a = 1;\n", "b = 2;"}, c.Source)

	err := json.Unmarshal([]byte(`{"cell_type":"code","source":42}`), &c)
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	var nb Notebook
	require.NoError(t, json.Unmarshal([]byte(fixture), &nb))

	want := "% # Layout\n% Index a dataset.\n\n" +
		"%%\n\n% https://bids-matlab.readthedocs.io\nBIDS = bids.layout(pth);\n\n"
	assert.Equal(t, want, Render(&nb))
}

func TestConvertDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "basic-layout.ipynb"), []byte(fixture), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "skip.ipynb"), []byte(fixture), 0o644))

	outs, err := ConvertDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "basic_layout.m")}, outs)

	got, err := os.ReadFile(outs[0])
	require.NoError(t, err)
	assert.Contains(t, string(got), "BIDS = bids.layout(pth);")
	assert.NoFileExists(t, filepath.Join(dir, "nested", "skip.m"))
}

func TestConvert_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ipynb")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := Convert(path)
	assert.Error(t, err)
}
