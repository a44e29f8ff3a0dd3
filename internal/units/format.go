package units

import "strconv"

// String1 formats v rounded to one decimal place, with no trailing zeros.
func String1(v float64) string {
	return strconv.FormatFloat(Round1(v), 'f', -1, 64)
}

// String2 formats v rounded to two decimal places, with no trailing zeros.
func String2(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', -1, 64)
}
