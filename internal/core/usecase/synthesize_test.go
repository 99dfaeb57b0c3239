package usecase

import (
	"strings"
	"testing"

	"github.com/worawit/lawgraph/internal/core/domain"
)

func TestSynthesizeAnswerFullTemplate(t *testing.T) {
	hits := []domain.RankedChunk{{
		DocChunk: domain.DocChunk{
			CaseID:  "CASE-1/2560",
			ChunkID: "CASE-1/2560-1",
			Text:    "โจทก์เข้าทำงานกับจำเลย\nได้รับค่าจ้าง 10,000 บาท",
			Page:    1,
		},
		Score: 0.9,
	}}
	facts := []domain.CaseFact{
		{Person: "โจทก์", Role: "Plaintiff", Amount: "10,000 บาท", Date: "2014-11-01"},
		{Person: "จำเลย", Role: "Defendant"},
	}

	got := synthesizeAnswer(hits, facts, "CASE-1/2560")
	want := strings.Join([]string{
		"คู่ความ/บทบาท: จำเลย (Defendant), โจทก์ (Plaintiff)",
		"จำนวนเงิน/ค่าจ้างที่ปรากฏ: 10,000 บาท",
		"วันที่เกี่ยวข้อง: 2014-11-01",
		"สาระจากเอกสารที่ใกล้เคียง:",
		"- โจทก์เข้าทำงานกับจำเลย ได้รับค่าจ้าง 10,000 บาท",
		"อ้างอิง:",
		"- [Case: CASE-1/2560, page: 1] CASE-1/2560-1",
	}, "\n")
	if got != want {
		t.Fatalf("answer mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSynthesizeAnswerDeterministicSetOrder(t *testing.T) {
	facts := []domain.CaseFact{
		{Amount: "5,000 บาท"},
		{Amount: "10,000 บาท"},
		{Amount: "5,000 บาท"},
	}
	a := synthesizeAnswer(nil, facts, "")
	b := synthesizeAnswer(nil, facts, "")
	if a != b {
		t.Fatalf("answers differ across runs:\n%s\n%s", a, b)
	}
	if !strings.Contains(a, "10,000 บาท, 5,000 บาท") {
		t.Fatalf("expected sorted deduplicated amounts, got %s", a)
	}
}

func TestSynthesizeAnswerFallback(t *testing.T) {
	got := synthesizeAnswer(nil, nil, "CASE-1")
	if got != "ไม่พบข้อมูลที่เกี่ยวข้องเพียงพอสำหรับคำถามนี้" {
		t.Fatalf("unexpected fallback: %s", got)
	}
}

func TestSynthesizeAnswerPreviewTruncation(t *testing.T) {
	long := strings.Repeat("ก", 300)
	hits := []domain.RankedChunk{{DocChunk: domain.DocChunk{ChunkID: "c-1", Text: long, Page: 2}}}

	got := synthesizeAnswer(hits, nil, "")
	wantLine := "- " + strings.Repeat("ก", 180) + "..."
	if !strings.Contains(got, wantLine) {
		t.Fatalf("expected 180-rune preview with ellipsis, got:\n%s", got)
	}
}

func TestSynthesizeAnswerCitationFallsBackToRequestCase(t *testing.T) {
	hits := []domain.RankedChunk{{DocChunk: domain.DocChunk{ChunkID: "x-1", Text: "ข้อความ"}}}

	got := synthesizeAnswer(hits, nil, "CASE-9")
	if !strings.Contains(got, "[Case: CASE-9, page: -] x-1") {
		t.Fatalf("expected request case id in citation, got:\n%s", got)
	}
}
