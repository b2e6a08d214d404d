// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "testing"

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"multibyte preserved", "repositório de estudos", 14, "repositório..."},
		{"max too small for ellipsis", "hello", 2, "he"},
		{"zero max", "hello", 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateRunes(tc.input, tc.maxRunes)
			if got != tc.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.input, tc.maxRunes, got, tc.want)
			}
		})
	}
}

func TestTruncateRunesNoEllipsis(t *testing.T) {
	if got := TruncateRunesNoEllipsis("olá mundo", 3); got != "olá" {
		t.Errorf("TruncateRunesNoEllipsis = %q, want 'olá'", got)
	}
	if got := TruncateRunesNoEllipsis("abc", 10); got != "abc" {
		t.Errorf("TruncateRunesNoEllipsis = %q, want 'abc'", got)
	}
}

func TestTruncateWidth(t *testing.T) {
	if got := TruncateWidth("hello", 10); got != "hello" {
		t.Errorf("TruncateWidth = %q, want 'hello'", got)
	}
	if got := TruncateWidth("hello world", 8); got != "hello..." {
		t.Errorf("TruncateWidth = %q, want 'hello...'", got)
	}
	if got := TruncateWidth("hello", 0); got != "" {
		t.Errorf("TruncateWidth = %q, want empty", got)
	}
}
