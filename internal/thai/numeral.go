package thai

import (
	"fmt"
	"strings"
)

type numeralToken struct {
	word  string
	value int64
	mult  bool
}

// Longest word first so prefix matching never stops at a shorter homograph
// (e.g. สี่ before สิบ is irrelevant, but เอ็ด must win over เอ).
var numeralTokens = []numeralToken{
	{"ล้าน", 1_000_000, true},
	{"แสน", 100_000, true},
	{"หมื่น", 10_000, true},
	{"พัน", 1_000, true},
	{"ร้อย", 100, true},
	{"สิบ", 10, true},
	{"ศูนย์", 0, false},
	{"หนึ่ง", 1, false},
	{"เอ็ด", 1, false},
	{"สอง", 2, false},
	{"ยี่", 2, false},
	{"สาม", 3, false},
	{"สี่", 4, false},
	{"ห้า", 5, false},
	{"หก", 6, false},
	{"เจ็ด", 7, false},
	{"แปด", 8, false},
	{"เก้า", 9, false},
}

// WordToNum converts a spelled-out Thai numeral phrase to its integer value,
// e.g. หนึ่งหมื่น -> 10000, ยี่สิบเอ็ด -> 21, สองแสน -> 200000. Whitespace
// between numeral words is ignored. Returns an error on any non-numeral rune.
func WordToNum(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("thai: empty numeral phrase")
	}

	var total, current int64
	matched := false
	for len(s) > 0 {
		if r := s[0]; r == ' ' || r == '\t' {
			s = s[1:]
			continue
		}
		tok, ok := matchNumeral(s)
		if !ok {
			return 0, fmt.Errorf("thai: not a numeral phrase: %q", s)
		}
		s = s[len(tok.word):]
		matched = true

		if !tok.mult {
			current = tok.value
			continue
		}
		if tok.value == 1_000_000 {
			if current == 0 {
				current = 1
			}
			total = (total + current) * 1_000_000
			current = 0
			continue
		}
		if current == 0 {
			current = 1
		}
		total += current * tok.value
		current = 0
	}
	if !matched {
		return 0, fmt.Errorf("thai: empty numeral phrase")
	}
	return total + current, nil
}

func matchNumeral(s string) (numeralToken, bool) {
	for _, tok := range numeralTokens {
		if strings.HasPrefix(s, tok.word) {
			return tok, true
		}
	}
	return numeralToken{}, false
}
