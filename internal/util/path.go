// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"strings"
)

// CleanObjectName validates a slash separated media object name taken from a
// URL. Every segment must be a plain file or directory name: no empty, "."
// or ".." segments, no backslashes and no leading slash.
func CleanObjectName(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, '\\') || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("invalid object name: %q", name)
	}
	for seg := range strings.SplitSeq(name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("invalid object name: %q", name)
		}
	}
	return name, nil
}
