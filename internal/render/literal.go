// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"strconv"
	"strings"
)

var quoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// FormatLiteral renders a field value as a source literal. Text is double
// quoted, 64-bit integers carry an L suffix, and 16-bit integers carry a
// short cast. Every other value falls back to its default textual form.
func FormatLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return `"` + quoteEscaper.Replace(x) + `"`
	case []byte:
		return `"` + quoteEscaper.Replace(string(x)) + `"`
	case int64:
		return strconv.FormatInt(x, 10) + "L"
	case int16:
		return "(short)" + strconv.FormatInt(int64(x), 10)
	default:
		return fmt.Sprint(v)
	}
}
