// Package render turns engine results into display text. It owns the
// output format so no result type depends on a transport's own rendering.
package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Separator joins display fragments.
const Separator = ", "

// List renders values as "[a, b, c]".
func List[T fmt.Stringer](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, Separator) + "]"
}

// Ints renders integers as "[1, -3, 20]".
func Ints(vals []int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(']')
	return b.String()
}

// Fragments joins already rendered fragments with Separator.
func Fragments(parts []string) string {
	return strings.Join(parts, Separator)
}

// Bold wraps s in markdown emphasis.
func Bold(s string) string {
	return "**" + s + "**"
}

// Boldf formats and then emphasises the result.
func Boldf(format string, a ...any) string {
	return Bold(fmt.Sprintf(format, a...))
}
