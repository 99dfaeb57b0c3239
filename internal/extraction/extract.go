// Package extraction converts normalized Thai legal text into graph
// fragments. The rule cascade is deterministic and side-effect free: the
// same chunk always yields the same entities and relationships, and a chunk
// matching no rule yields an empty result rather than an error.
package extraction

import (
	"regexp"
	"strings"

	"github.com/worawit/lawgraph/internal/core/domain"
	"github.com/worawit/lawgraph/internal/thai"
)

var (
	plaintiffRe = regexp.MustCompile(`โจทก์?`)

	actRe     = regexp.MustCompile(`((?:พระราชบัญญัติ|ประมวลกฎหมาย)[^\n]*?พ\.ศ\.?\s*\d{4})`)
	bookRe    = regexp.MustCompile(`ลักษณะ\s*(\d+|[\x{0E00}-\x{0E7F}]+)`)
	titleRe   = regexp.MustCompile(`บท\s*([\x{0E00}-\x{0E7F}]+)`)
	chapterRe = regexp.MustCompile(`หมวด\s*(\d+)`)
	partRe    = regexp.MustCompile(`ตอน(?:ที่)?\s*(\d+)`)
	sectionRe = regexp.MustCompile(`มาตรา\s*(\d+)(.*)`)

	paragraphRe  = regexp.MustCompile(`วรรคที่\s*(\d+)`)
	interestRe   = regexp.MustCompile(`ดอกเบี้ย(?:ร้อยละ)?\s*(\d+(?:\.\d+)?)\s*ต่อ\s*(ปี|เดือน)`)
	penaltyRe    = regexp.MustCompile(`(เงินเพิ่ม|เบี้ยปรับ)[^\d%]*?(?:ร้อยละ)?\s*(\d+(?:\.\d+)?)`)
	periodRe     = regexp.MustCompile(`ทุก(?:ระยะเวลา)?\s*(\d+|[\x{0E00}-\x{0E7F}]+)\s*วัน`)
	causeRe      = regexp.MustCompile(`(ไม่คืน[^,;\n]+|ไม่จ่าย[^,;\n]+)`)
	sectionRefRe = regexp.MustCompile(`มาตรา\s*(\d+(?:\s*/\s*\d+)?)`)
	slashGapRe   = regexp.MustCompile(`\s*/\s*`)

	sectionNoRe = regexp.MustCompile(`มาตรา\s*(\d+)`)
)

var employmentKeywords = []string{"จ้าง", "เข้าทำงาน", "ลูกจ้าง", "ทำงาน"}

// Extract runs the rule cascade over one text chunk and returns the graph
// fragment it encodes. Rule order only matters for entity dedup through the
// shared lookup table.
func Extract(chunk string) domain.ExtractionResult {
	x := &chunkExtractor{
		s:     thai.NormalizeDigits(chunk),
		index: make(map[entityKey]*domain.Entity),
	}

	x.parties()
	x.employment()
	x.money()
	x.dates()
	x.hierarchy()
	x.paragraphsAndClauses()
	x.crossReferences()

	return domain.ExtractionResult{Entities: x.entities, Relationships: x.rels}
}

type entityKey struct {
	name string
	typ  string
}

type chunkExtractor struct {
	s        string
	index    map[entityKey]*domain.Entity
	entities []*domain.Entity
	rels     []domain.Relationship

	plaintiff *domain.Entity
	section   *domain.Entity
	sectionNo string
}

// node collapses repeated mentions of the same (name, type) pair to one
// Entity instance.
func (x *chunkExtractor) node(name, typ string) *domain.Entity {
	key := entityKey{name, typ}
	if e, ok := x.index[key]; ok {
		return e
	}
	e := &domain.Entity{Name: name, Type: typ}
	x.index[key] = e
	x.entities = append(x.entities, e)
	return e
}

func (x *chunkExtractor) link(src, dst *domain.Entity, relType string) {
	x.rels = append(x.rels, domain.Relationship{Source: src, Target: dst, Type: relType})
}

// Canonical Person entities for the parties, created on any mention.
func (x *chunkExtractor) parties() {
	if plaintiffRe.MatchString(x.s) {
		x.plaintiff = x.node("โจทก์", "Person")
	}
	if strings.Contains(x.s, "จำเลย") {
		x.node("จำเลย", "Person")
	}
}

func (x *chunkExtractor) employment() {
	for _, kw := range employmentKeywords {
		if strings.Contains(x.s, kw) {
			contract := x.node("สัญญาจ้างงาน", "EmploymentContract")
			if x.plaintiff != nil {
				x.link(x.plaintiff, contract, "EMPLOYED_BY")
			}
			return
		}
	}
}

func (x *chunkExtractor) money() {
	if !strings.Contains(x.s, "บาท") {
		return
	}
	amount, ok := thai.ParseAmount(x.s)
	if !ok {
		return
	}
	money := x.node(thai.GroupThousands(int64(amount))+" บาท", "MoneyAmount")

	termName := "จำนวนเงิน"
	switch {
	case strings.Contains(x.s, "ปรับ"):
		termName = "ค่าปรับ"
	case strings.Contains(x.s, "ค่าชดเชย"):
		termName = "ค่าชดเชย"
	}
	term := x.node(termName, "LegalTerm")
	x.link(term, money, "HAS_AMOUNT")
}

func (x *chunkExtractor) dates() {
	iso, ok := thai.ParseDateISO(x.s)
	if !ok {
		return
	}
	date := x.node(iso, "Date")
	if x.plaintiff != nil {
		x.link(x.plaintiff, date, "OCCURRED_ON")
	}
}

// hierarchy detects the statutory levels independently and wires BELONGS_TO
// edges bottom-up, attaching each level to its first present ancestor only.
// Missing intermediate levels are skipped, not synthesized.
func (x *chunkExtractor) hierarchy() {
	var act, book, title, chapter, part *domain.Entity

	if m := actRe.FindStringSubmatch(x.s); m != nil {
		act = x.node(strings.TrimSpace(m[1]), "Act")
	}
	if m := bookRe.FindStringSubmatch(x.s); m != nil {
		book = x.node("ลักษณะ "+strings.TrimSpace(m[1]), "Book")
	}
	if m := titleRe.FindStringSubmatch(x.s); m != nil {
		title = x.node("บท "+strings.TrimSpace(m[1]), "Title")
	}
	if m := chapterRe.FindStringSubmatch(x.s); m != nil {
		chapter = x.node("หมวด "+m[1], "Chapter")
	}
	if m := partRe.FindStringSubmatch(x.s); m != nil {
		part = x.node("ตอน "+m[1], "Part")
	}

	if m := sectionRe.FindStringSubmatch(x.s); m != nil {
		x.sectionNo = m[1]
		x.section = x.node("มาตรา "+m[1], "Section")
		if desc := strings.TrimSpace(m[2]); desc != "" {
			x.link(x.section, x.node(desc, "Section_desc"), "HAS_DESC")
		}
	}

	attach := func(child *domain.Entity, ancestors ...*domain.Entity) {
		if child == nil {
			return
		}
		for _, a := range ancestors {
			if a != nil {
				x.link(child, a, "BELONGS_TO")
				return
			}
		}
	}
	attach(x.section, part, chapter, title, book, act)
	attach(part, chapter, title, book, act)
	attach(chapter, title, book, act)
	attach(title, book, act)
	attach(book, act)

	// Legacy Group node keyed by chapter number, kept for older consumers.
	if chapter != nil {
		group := x.node(chapter.Name, "Group")
		if x.section != nil {
			x.link(x.section, group, "SECTION")
		}
	}
}

// paragraphsAndClauses splits the chunk on วรรคที่ markers and extracts
// interest rates, penalties and cause phrases per span. Without markers the
// whole chunk is one implicit span attached to the Section directly.
func (x *chunkExtractor) paragraphsAndClauses() {
	if x.section == nil {
		return
	}

	marks := paragraphRe.FindAllStringSubmatchIndex(x.s, -1)
	if len(marks) == 0 {
		x.extractClauses(x.s, x.section)
		return
	}

	for i, m := range marks {
		no := x.s[m[2]:m[3]]
		start := m[0]
		end := len(x.s)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		span := x.s[start:end]

		para := x.node("วรรคที่ "+no, "Paragraph")
		x.link(x.section, para, "HAS_PARAGRAPH")
		x.extractClauses(span, para)
	}
}

func (x *chunkExtractor) extractClauses(span string, owner *domain.Entity) {
	if m := interestRe.FindStringSubmatch(span); m != nil {
		rate := x.node(m[1]+"% ต่อ"+m[2], "InterestRate")
		x.link(owner, rate, "HAS_RATE")
	}

	if m := penaltyRe.FindStringSubmatch(span); m != nil {
		penalty := x.node("เงินเพิ่ม "+m[2]+"%", "Penalty")
		x.link(owner, penalty, "HAS_PENALTY")

		if tp := periodRe.FindStringSubmatch(span); tp != nil {
			if days, ok := periodDays(tp[1]); ok {
				period := x.node("ทุก "+days+" วัน", "TimePeriod")
				x.link(penalty, period, "WITHIN")
			}
		}
	}

	for _, m := range causeRe.FindAllStringSubmatch(span, -1) {
		causeText := strings.TrimSpace(m[1])
		cause := x.node(causeText, "Cause")
		x.link(owner, cause, "HAS_CAUSE")

		for _, ref := range sectionRefRe.FindAllStringSubmatch(causeText, -1) {
			target := x.node("มาตรา "+normalizeSectionNo(ref[1]), "Section")
			x.link(cause, target, "REFERS_TO")
		}
	}
}

// crossReferences links the chunk's own Section to every other section
// number it mentions. Referenced sections are placeholders, not full
// extractions, and the chunk's own number never links to itself.
func (x *chunkExtractor) crossReferences() {
	if x.section == nil {
		return
	}
	for _, m := range sectionRefRe.FindAllStringSubmatch(x.s, -1) {
		no := normalizeSectionNo(m[1])
		if no == x.sectionNo {
			continue
		}
		x.link(x.section, x.node("มาตรา "+no, "Section"), "REFERS_TO")
	}
}

func normalizeSectionNo(raw string) string {
	return slashGapRe.ReplaceAllString(raw, "/")
}

func periodDays(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if raw[0] >= '0' && raw[0] <= '9' {
		return raw, true
	}
	n, err := thai.WordToNum(raw)
	if err != nil {
		return "", false
	}
	return thai.GroupThousands(n), true
}

// SectionTag derives the index-time section label for a chunk: the first
// มาตรา number if present, else the first หมวด number, else empty.
func SectionTag(text string) string {
	s := thai.NormalizeDigits(text)
	if m := sectionNoRe.FindStringSubmatch(s); m != nil {
		return "มาตรา " + m[1]
	}
	if m := chapterRe.FindStringSubmatch(s); m != nil {
		return "หมวด " + m[1]
	}
	return ""
}
