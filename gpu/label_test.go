// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

//go:build !render_debug_labels

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelDisabled(t *testing.T) {
	assert.Empty(t, Label("ramps %d", 3))
}
