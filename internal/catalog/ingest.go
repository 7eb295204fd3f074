package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"medicine-service/internal/model"
)

// Report is the outcome of one bulk import. The three name lists are the
// skipped rows, partitioned by who already owns the colliding name, in the
// order the rows were encountered.
type Report struct {
	Inserted          int      `json:"inserted"`
	OwnCompanyNames   []string `json:"own_company_names,omitempty"`
	SystemNames       []string `json:"system_names,omitempty"`
	OtherCompanyNames []string `json:"other_company_names,omitempty"`
}

// Summary renders the report as one human-readable sentence.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d medicines added successfully.", r.Inserted)
	if len(r.OwnCompanyNames) > 0 {
		fmt.Fprintf(&b, " %d medicines already exist and are owned by your company: %s.",
			len(r.OwnCompanyNames), strings.Join(r.OwnCompanyNames, ", "))
	}
	if len(r.SystemNames) > 0 {
		fmt.Fprintf(&b, " %d medicines already exist in the app (no company): %s.",
			len(r.SystemNames), strings.Join(r.SystemNames, ", "))
	}
	if len(r.OtherCompanyNames) > 0 {
		fmt.Fprintf(&b, " %d medicines already exist under another company: %s.",
			len(r.OtherCompanyNames), strings.Join(r.OtherCompanyNames, ", "))
	}
	return b.String()
}

// RowErrorHook observes rows dropped for having too few fields. The default
// pipeline drops them silently; the hook exists for observability only and
// never changes the report.
type RowErrorHook func(lineNumber int, line string)

// SetRowErrorHook installs an observer for malformed import rows.
func (s *Service) SetRowErrorHook(hook RowErrorHook) {
	s.rowErrorHook = hook
}

// ImportDataset streams a comma-separated medicine dataset and inserts every
// row that does not collide with an existing record. The first line is
// always treated as a header and skipped. Fields are split on raw commas
// with no quoting, so a field containing a comma corrupts its row. Rows
// with fewer than 9 fields are dropped. Colliding rows are classified by
// the owner of the first match into the report's three partitions. No row
// aborts the import; only an unknown company rejects it outright.
//
// Row layout: name, substitute0, substitute1, use0, use1, use2,
// sideeffect0, sideeffect1, sideeffect2. This intentionally differs from
// the seed-file layout; the two formats are not interchangeable.
func (s *Service) ImportDataset(r io.Reader, companyID uint) (*Report, error) {
	exists, err := s.companies.Exists(companyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCompanyNotFound
	}

	report := &Report{}
	// Lines are read unbounded; a row is never too long to process.
	reader := bufio.NewReader(r)

	lineNumber := 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, readErr
		}
		if line == "" {
			break
		}
		lineNumber++
		if lineNumber == 1 {
			// Header row, skipped unconditionally.
			continue
		}
		line = strings.TrimRight(line, "\r\n")

		fields := strings.Split(line, ",")
		if len(fields) < 9 {
			if s.rowErrorHook != nil {
				s.rowErrorHook(lineNumber, line)
			}
			continue
		}

		name := strings.TrimSpace(fields[0])
		matches, err := s.store.FindByNameIgnoreCase(name)
		if err != nil {
			return nil, err
		}

		if len(matches) > 0 {
			switch ClassifyFirst(matches, companyID) {
			case VerdictConflictSystem:
				report.SystemNames = append(report.SystemNames, name)
			case VerdictConflictOther:
				report.OtherCompanyNames = append(report.OtherCompanyNames, name)
			default:
				report.OwnCompanyNames = append(report.OwnCompanyNames, name)
			}
			continue
		}

		medicine := &model.Medicine{
			Name:        name,
			Substitute0: strings.TrimSpace(fields[1]),
			Substitute1: strings.TrimSpace(fields[2]),
			Use0:        strings.TrimSpace(fields[3]),
			Use1:        strings.TrimSpace(fields[4]),
			Use2:        strings.TrimSpace(fields[5]),
			SideEffect0: strings.TrimSpace(fields[6]),
			SideEffect1: strings.TrimSpace(fields[7]),
			SideEffect2: strings.TrimSpace(fields[8]),
			CompanyID:   &companyID,
		}
		if err := s.store.Create(medicine); err != nil {
			return nil, err
		}
		report.Inserted++
	}

	return report, nil
}
