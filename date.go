package cookie

import "time"

// ParseDate implements the RFC 6265 section 5.1.1 cookie-date grammar. It is
// deliberately not a general-purpose date parser: only the delimiter set,
// token categories and field ranges the RFC specifies are recognized.
//
// The string is tokenized on the delimiter set {0x09, 0x20-0x2F, 0x3B-0x40,
// 0x5B-0x60, 0x7B-0x7E}. Each non-empty token is tried, in order, against
// time, day-of-month, month and year; a token is assigned to the first
// category that hasn't already been filled. Parsing succeeds only once all
// four categories are filled and the field ranges check out.
func ParseDate(s string) (time.Time, bool) {
	var (
		haveTime, haveDay, haveMonth, haveYear     bool
		hour, minute, second, day, month, year int
	)

	for _, tok := range tokenizeDate(s) {
		switch {
		case !haveTime && isTimeToken(tok):
			h, m, sec, ok := parseTimeToken(tok)
			if !ok {
				continue
			}
			hour, minute, second = h, m, sec
			haveTime = true

		case !haveDay && isDayToken(tok):
			d, ok := parseDayToken(tok)
			if !ok {
				continue
			}
			day = d
			haveDay = true

		case !haveMonth && isMonthToken(tok):
			m, ok := parseMonthToken(tok)
			if !ok {
				continue
			}
			month = m
			haveMonth = true

		case !haveYear && isYearToken(tok):
			y, ok := parseYearToken(tok)
			if !ok {
				continue
			}
			year = y
			haveYear = true
		}
	}

	if !haveTime || !haveDay || !haveMonth || !haveYear {
		return time.Time{}, false
	}
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, false
	}
	if year < 1601 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), true
}

// isDateDelim reports whether b is one of the cookie-date delimiters.
func isDateDelim(b byte) bool {
	switch {
	case b == 0x09:
		return true
	case b >= 0x20 && b <= 0x2f:
		return true
	case b >= 0x3b && b <= 0x40:
		return true
	case b >= 0x5b && b <= 0x60:
		return true
	case b >= 0x7b && b <= 0x7e:
		return true
	}
	return false
}

func tokenizeDate(s string) []string {
	var toks []string
	start := -1
	for i := 0; i < len(s); i++ {
		if isDateDelim(s[i]) {
			if start >= 0 {
				toks = append(toks, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, s[start:])
	}
	return toks
}

// isTimeToken reports whether tok looks like HH:MM:SS, optionally followed
// by non-digit trailing characters (e.g. "23:59:59.000Z").
func isTimeToken(tok string) bool {
	i := 0
	n := 0
	for ; i < len(tok) && isDigit(tok[i]); i++ {
		n++
	}
	if n == 0 || n > 2 || i >= len(tok) || tok[i] != ':' {
		return false
	}
	return true
}

func parseTimeToken(tok string) (hour, minute, second int, ok bool) {
	first := indexByte(tok, ':')
	if first < 0 {
		return 0, 0, 0, false
	}
	rest := tok[first+1:]
	second2 := indexByte(rest, ':')
	if second2 < 0 {
		return 0, 0, 0, false
	}

	hourPart := tok[:first]
	minutePart := rest[:second2]
	secondPart, digitsOK := splitTrailingDigits(rest[second2+1:])
	if !digitsOK {
		return 0, 0, 0, false
	}

	h, ok1 := parseDigitRun(hourPart, 1, 2)
	m, ok2 := parseDigitRun(minutePart, 1, 2)
	s, ok3 := parseDigitRun(secondPart, 1, 2)
	if !ok1 || !ok2 || !ok3 {
		return 0, 0, 0, false
	}
	return h, m, s, true
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// splitTrailingDigits strips any non-digit suffix from tok (e.g. the ".000"
// in "08:49:37.000") and reports whether what remains is a non-empty digit
// run.
func splitTrailingDigits(tok string) (string, bool) {
	i := 0
	for i < len(tok) && isDigit(tok[i]) {
		i++
	}
	if i == 0 {
		return "", false
	}
	return tok[:i], true
}

func isDayToken(tok string) bool {
	if len(tok) == 0 || len(tok) > 2 {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if !isDigit(tok[i]) {
			return false
		}
	}
	return true
}

func parseDayToken(tok string) (int, bool) {
	return parseDigitRun(tok, 1, 2)
}

var monthNames = [12]string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

func isMonthToken(tok string) bool {
	_, ok := parseMonthToken(tok)
	return ok
}

func parseMonthToken(tok string) (int, bool) {
	if len(tok) < 3 {
		return 0, false
	}
	var buf [3]byte
	for i := 0; i < 3; i++ {
		c := tok[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		buf[i] = c
	}
	prefix := string(buf[:])
	for i, name := range monthNames {
		if prefix == name {
			return i + 1, true
		}
	}
	return 0, false
}

func isYearToken(tok string) bool {
	if len(tok) != 2 && len(tok) != 4 {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if !isDigit(tok[i]) {
			return false
		}
	}
	return true
}

func parseYearToken(tok string) (int, bool) {
	n, ok := parseDigitRun(tok, len(tok), len(tok))
	if !ok {
		return 0, false
	}
	if len(tok) == 2 {
		switch {
		case n >= 70 && n <= 99:
			n += 1900
		case n >= 0 && n <= 69:
			n += 2000
		default:
			return 0, false
		}
	}
	return n, true
}

func parseDigitRun(tok string, minLen, maxLen int) (int, bool) {
	if len(tok) < minLen || len(tok) > maxLen {
		return 0, false
	}
	n := 0
	for i := 0; i < len(tok); i++ {
		if !isDigit(tok[i]) {
			return 0, false
		}
		n = n*10 + int(tok[i]-'0')
	}
	return n, true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
