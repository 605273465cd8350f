// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

//go:build render_debug_labels

package gpu

import "fmt"

// Label formats a label for a GPU object.
func Label(format string, args ...any) string { return fmt.Sprintf(format, args...) }
