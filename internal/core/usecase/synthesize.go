package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/worawit/lawgraph/internal/core/domain"
)

const previewRunes = 180

// synthesizeAnswer renders the deterministic Thai answer: party roles,
// amounts and dates from the graph facts, then document previews and
// citations. No generation model is involved, so the same retrieval output
// always yields the same answer text.
func synthesizeAnswer(hits []domain.RankedChunk, facts []domain.CaseFact, caseID string) string {
	var lines []string

	if len(facts) > 0 {
		roles := make(map[string]struct{})
		amounts := make(map[string]struct{})
		dates := make(map[string]struct{})
		for _, f := range facts {
			if f.Person != "" && f.Role != "" {
				roles[fmt.Sprintf("%s (%s)", f.Person, f.Role)] = struct{}{}
			}
			if f.Amount != "" {
				amounts[f.Amount] = struct{}{}
			}
			if f.Date != "" {
				dates[f.Date] = struct{}{}
			}
		}
		if len(roles) > 0 {
			lines = append(lines, "คู่ความ/บทบาท: "+joinSorted(roles))
		}
		if len(amounts) > 0 {
			lines = append(lines, "จำนวนเงิน/ค่าจ้างที่ปรากฏ: "+joinSorted(amounts))
		}
		if len(dates) > 0 {
			lines = append(lines, "วันที่เกี่ยวข้อง: "+joinSorted(dates))
		}
	}

	if len(hits) > 0 {
		lines = append(lines, "สาระจากเอกสารที่ใกล้เคียง:")
		for _, h := range hits {
			lines = append(lines, "- "+preview(h.Text))
		}

		lines = append(lines, "อ้างอิง:")
		for _, h := range hits {
			cid := h.CaseID
			if cid == "" {
				cid = caseID
			}
			if cid == "" {
				cid = "-"
			}
			page := "-"
			if h.Page > 0 {
				page = fmt.Sprintf("%d", h.Page)
			}
			lines = append(lines, fmt.Sprintf("- [Case: %s, page: %s] %s", cid, page, h.ChunkID))
		}
	}

	if len(lines) == 0 {
		return "ไม่พบข้อมูลที่เกี่ยวข้องเพียงพอสำหรับคำถามนี้"
	}
	return strings.Join(lines, "\n")
}

func preview(text string) string {
	s := strings.ReplaceAll(strings.TrimSpace(text), "\n", " ")
	r := []rune(s)
	if len(r) > previewRunes {
		return string(r[:previewRunes]) + "..."
	}
	return s
}

func joinSorted(set map[string]struct{}) string {
	items := make([]string, 0, len(set))
	for s := range set {
		items = append(items, s)
	}
	sort.Strings(items)
	return strings.Join(items, ", ")
}
