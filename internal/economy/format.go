package economy

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Suffix table for clicker-style big-number notation. Currency values
// blow far past anything SI notation covers, so the scale runs to 1e39.
var magnitudes = []struct {
	value  float64
	symbol string
}{
	{1e39, " Du"},
	{1e36, " U"},
	{1e33, " D"},
	{1e30, " N"},
	{1e27, " O"},
	{1e24, " Sp"},
	{1e21, " Sx"},
	{1e18, " Qi"},
	{1e15, " Qa"},
	{1e12, " T"},
	{1e9, " B"},
	{1e6, " M"},
	{1e3, " k"},
}

// FormatPizzas renders a currency amount for display: whole pizzas below
// a thousand, two decimals plus a magnitude suffix above.
func FormatPizzas(n float64) string {
	if n < 1000 {
		return strconv.FormatFloat(math.Floor(n), 'f', 0, 64)
	}
	for _, m := range magnitudes {
		if n >= m.value {
			return fmt.Sprintf("%.2f%s", n/m.value, m.symbol)
		}
	}
	return fmt.Sprintf("%.2f", n)
}

// FormatCount renders an exact integer counter with thousands separators.
func FormatCount(n uint64) string {
	return humanize.Comma(int64(n))
}
