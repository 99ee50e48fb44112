package models

import "strconv"

// FormatPrice renders an integer minor-unit price as a display string with
// thousands separators, e.g. 12500 -> "Rs. 12,500". Display-only; all
// arithmetic stays in integer minor units.
func FormatPrice(price int64) string {
	s := strconv.FormatInt(price, 10)
	negative := false
	if price < 0 {
		negative = true
		s = s[1:]
	}

	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}

	prefix := "Rs. "
	if negative {
		prefix = "Rs. -"
	}
	return prefix + string(out)
}
