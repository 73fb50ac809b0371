// SPDX-License-Identifier: AGPL-3.0-or-later

package clierr

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeOf(t *testing.T) {
	assert.Equal(t, 0, ExitCodeOf(nil))
	assert.Equal(t, ExitFailure, ExitCodeOf(errors.New("plain")))
	assert.Equal(t, ExitIO, ExitCodeOf(Wrap(ExitIO, "writing", fs.ErrPermission)))
	assert.Equal(t, ExitFailure, ExitCodeOf(Wrap(0, "zero is normalized", nil)))
}

func TestWrap_Unwraps(t *testing.T) {
	err := Wrapf(ExitUsage, fs.ErrNotExist, "loading %s", "bidstools.toml")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "loading bidstools.toml: file does not exist", err.Error())
	assert.Equal(t, "only message", Wrap(ExitIO, "only message", nil).Error())
}
