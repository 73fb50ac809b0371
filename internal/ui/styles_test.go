// SPDX-License-Identifier: AGPL-3.0-or-later
package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_PlainForBuffers(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	assert.Equal(t, "tests/data", p.Path("tests/data"))
	assert.Equal(t, "106 files", p.Muted("106 files"))
	assert.Equal(t, "PASS", p.Bold("PASS"))
	assert.Same(t, &buf, p.Writer())
}
