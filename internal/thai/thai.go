// Package thai provides the Thai text primitives the extraction rules and
// the lexical index depend on: digit folding, script-aware tokenization,
// Buddhist-era date parsing and spelled-out numeral conversion.
package thai

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Months maps Thai month names to their 1-based month number.
var Months = map[string]int{
	"มกราคม": 1, "กุมภาพันธ์": 2, "มีนาคม": 3, "เมษายน": 4,
	"พฤษภาคม": 5, "มิถุนายน": 6, "กรกฎาคม": 7, "สิงหาคม": 8,
	"กันยายน": 9, "ตุลาคม": 10, "พฤศจิกายน": 11, "ธันวาคม": 12,
}

var thaiDigits = strings.NewReplacer(
	"๐", "0", "๑", "1", "๒", "2", "๓", "3", "๔", "4",
	"๕", "5", "๖", "6", "๗", "7", "๘", "8", "๙", "9",
)

// NormalizeDigits folds Thai digits to ASCII. Every extraction pattern
// assumes this has already happened.
func NormalizeDigits(s string) string {
	return thaiDigits.Replace(s)
}

// Tokenize lower-cases, folds digits and splits on anything that is not a
// letter, a digit, an underscore or a character of the Thai block. Combining
// marks such as sara and thanthakhat stay attached to their word.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	s = NormalizeDigits(strings.ToLower(s))

	tokens := make([]string, 0, 32)
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || (r >= 0x0E00 && r <= 0x0E7F) {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

var (
	dateFullRe  = regexp.MustCompile(`(\d{1,2})\s+([\x{0E00}-\x{0E7F}]+)\s+(\d{4})`)
	dateShortRe = regexp.MustCompile(`([\x{0E00}-\x{0E7F}]+)\s+(\d{4})`)
)

// ParseDateISO finds a Thai "day monthname year" or "monthname year" phrase
// and returns it as YYYY-MM-DD or YYYY-MM. Years above 2400 are treated as
// Buddhist era and converted to Gregorian.
func ParseDateISO(text string) (string, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", false
	}

	if m := dateFullRe.FindStringSubmatch(s); m != nil {
		if mon, ok := Months[m[2]]; ok {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			if year > 2400 {
				year -= 543
			}
			return fmt.Sprintf("%04d-%02d-%02d", year, mon, day), true
		}
	}
	if m := dateShortRe.FindStringSubmatch(s); m != nil {
		if mon, ok := Months[m[1]]; ok {
			year, _ := strconv.Atoi(m[2])
			if year > 2400 {
				year -= 543
			}
			return fmt.Sprintf("%04d-%02d", year, mon), true
		}
	}
	return "", false
}

var (
	amountDigitRe = regexp.MustCompile(`([0-9][0-9,]*(?:\.[0-9]+)?)\s*บาท`)
	amountWordRe  = regexp.MustCompile(`(?:ปรับ|ค่า|เป็นเงิน|จำนวน|ไม่เกิน|กว่า)\s*([\x{0E00}-\x{0E39}\s]+?)\s*บาท`)
)

// ParseAmount extracts a baht amount, preferring a digit form with optional
// thousands separators and falling back to a spelled-out numeral phrase.
func ParseAmount(text string) (float64, bool) {
	if !strings.Contains(text, "บาท") {
		return 0, false
	}
	if m := amountDigitRe.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err == nil {
			return v, true
		}
	}
	if m := amountWordRe.FindStringSubmatch(text); m != nil {
		if v, err := WordToNum(strings.TrimSpace(m[1])); err == nil {
			return float64(v), true
		}
	}
	return 0, false
}

// GroupThousands renders an integer with comma separators, matching the
// canonical MoneyAmount node name.
func GroupThousands(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
