// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

//go:build !render_debug_labels

package gpu

// Label returns an empty label. Build with the render_debug_labels tag to
// attach formatted labels to GPU objects.
func Label(format string, args ...any) string { return "" }
