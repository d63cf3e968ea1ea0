package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Amounts are carried as int64 pesewas (1 GHS = 100 pesewas), the same minor
// units Paystack charges in. Formatting only happens at the display edge.

// FormatGHS renders a pesewa amount as "GHS 1,234.56".
func FormatGHS(pesewas int64) string {
	sign := ""
	if pesewas < 0 {
		sign = "-"
		pesewas = -pesewas
	}
	cedis := pesewas / 100
	rem := pesewas % 100
	return fmt.Sprintf("%sGHS %s.%02d", sign, formatThousand(cedis), rem)
}

// CedisToPesewas converts a whole-cedi amount into pesewas.
func CedisToPesewas(cedis int64) int64 {
	return cedis * 100
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
