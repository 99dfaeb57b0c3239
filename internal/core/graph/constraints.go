package graph

import "context"

var constraintStatements = []string{
	"CREATE CONSTRAINT uniq_person_name IF NOT EXISTS FOR (n:Person) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_company_name IF NOT EXISTS FOR (n:Company) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_legalrole_value IF NOT EXISTS FOR (n:LegalRole) REQUIRE n.value IS UNIQUE",
	"CREATE CONSTRAINT uniq_courtcase_caseid IF NOT EXISTS FOR (n:CourtCase) REQUIRE n.caseId IS UNIQUE",
	"CREATE CONSTRAINT uniq_group_name IF NOT EXISTS FOR (n:Group) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_section_name IF NOT EXISTS FOR (n:Section) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_act_name IF NOT EXISTS FOR (n:Act) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_book_name IF NOT EXISTS FOR (n:Book) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_title_name IF NOT EXISTS FOR (n:Title) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_chapter_name IF NOT EXISTS FOR (n:Chapter) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_part_name IF NOT EXISTS FOR (n:Part) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_section_desc_name IF NOT EXISTS FOR (n:Section_desc) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_paragraph_name IF NOT EXISTS FOR (n:Paragraph) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_interest_rate_name IF NOT EXISTS FOR (n:InterestRate) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_penalty_name IF NOT EXISTS FOR (n:Penalty) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_timeperiod_name IF NOT EXISTS FOR (n:TimePeriod) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_cause_name IF NOT EXISTS FOR (n:Cause) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_address_id IF NOT EXISTS FOR (n:Address) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_province_name IF NOT EXISTS FOR (n:Province) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_district_name IF NOT EXISTS FOR (n:District) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_subdistrict_name IF NOT EXISTS FOR (n:Subdistrict) REQUIRE n.name IS UNIQUE",
	"CREATE CONSTRAINT uniq_postal_code IF NOT EXISTS FOR (n:PostalCode) REQUIRE n.code IS UNIQUE",
	"CREATE CONSTRAINT uniq_phone_number IF NOT EXISTS FOR (n:PhoneNumber) REQUIRE n.number IS UNIQUE",
}

// SetupConstraints applies the uniqueness constraints. Individual failures
// are logged and skipped so the call works against servers where some
// constraints already exist in an older form.
func (s *Store) SetupConstraints(ctx context.Context) {
	for _, stmt := range constraintStatements {
		if err := s.graph.Write(ctx, stmt, nil); err != nil {
			s.log.Warn("constraint skipped", "statement", stmt, "error", err)
		}
	}
}
