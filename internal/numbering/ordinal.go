package numbering

import "strconv"

var cjkDigits = []string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

// CJKNumeral converts n to its CJK ordinal token. Exact for 0 through 99;
// larger values fall back to the plain decimal string.
func CJKNumeral(n int) string {
	switch {
	case n < 0 || n >= 100:
		return strconv.Itoa(n)
	case n == 0:
		return "零"
	case n < 10:
		return cjkDigits[n]
	}

	tens, ones := n/10, n%10
	out := ""
	if tens > 1 {
		out = cjkDigits[tens]
	}
	out += "十"
	if ones > 0 {
		out += cjkDigits[ones]
	}
	return out
}
