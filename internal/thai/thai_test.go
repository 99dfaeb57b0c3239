package thai

import (
	"reflect"
	"testing"
)

func TestNormalizeDigitsFoldsThaiNumerals(t *testing.T) {
	got := NormalizeDigits("มาตรา ๑๔๕ วรรค ๒")
	if got != "มาตรา 145 วรรค 2" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestTokenizeKeepsThaiRunsTogether(t *testing.T) {
	got := Tokenize("โจทก์ฟ้องจำเลย, Section 145 (B)")
	want := []string{"โจทก์ฟ้องจำเลย", "section", "145", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tokens = %v, want %v", got, want)
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	if got := Tokenize(""); got != nil {
		t.Fatalf("expected nil tokens for empty input, got %v", got)
	}
	if got := Tokenize(" ,;! "); len(got) != 0 {
		t.Fatalf("expected no tokens for punctuation-only input, got %v", got)
	}
}

func TestParseDateISOFullDate(t *testing.T) {
	got, ok := ParseDateISO("เมื่อวันที่ 1 พฤศจิกายน 2557 โจทก์เข้าทำงาน")
	if !ok {
		t.Fatal("expected a date match")
	}
	if got != "2014-11-01" {
		t.Fatalf("date = %q, want 2014-11-01", got)
	}
}

func TestParseDateISOMonthYearOnly(t *testing.T) {
	got, ok := ParseDateISO("ตั้งแต่ มกราคม 2560 เป็นต้นไป")
	if !ok {
		t.Fatal("expected a date match")
	}
	if got != "2017-01" {
		t.Fatalf("date = %q, want 2017-01", got)
	}
}

func TestParseDateISOGregorianYearKept(t *testing.T) {
	got, ok := ParseDateISO("5 มีนาคม 1999")
	if !ok {
		t.Fatal("expected a date match")
	}
	if got != "1999-03-05" {
		t.Fatalf("date = %q, want 1999-03-05", got)
	}
}

func TestParseDateISONoMatch(t *testing.T) {
	if _, ok := ParseDateISO("ไม่มีวันที่ในข้อความนี้"); ok {
		t.Fatal("expected no date match")
	}
	if _, ok := ParseDateISO(""); ok {
		t.Fatal("expected no date match on empty input")
	}
}

func TestParseAmountDigitsWithSeparators(t *testing.T) {
	got, ok := ParseAmount("ค่าจ้างเดือนละ 10,000 บาท")
	if !ok {
		t.Fatal("expected an amount match")
	}
	if got != 10000 {
		t.Fatalf("amount = %v, want 10000", got)
	}
}

func TestParseAmountSpelledOutNumeral(t *testing.T) {
	got, ok := ParseAmount("ต้องระวางโทษปรับสองพันบาท")
	if !ok {
		t.Fatal("expected an amount match")
	}
	if got != 2000 {
		t.Fatalf("amount = %v, want 2000", got)
	}
}

func TestParseAmountNoBahtMarker(t *testing.T) {
	if _, ok := ParseAmount("จำนวน 10,000"); ok {
		t.Fatal("expected no amount without the baht marker")
	}
}

func TestGroupThousands(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{10000, "10,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}
	for _, tc := range cases {
		if got := GroupThousands(tc.in); got != tc.want {
			t.Errorf("GroupThousands(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
