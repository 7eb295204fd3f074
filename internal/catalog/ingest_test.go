package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"medicine-service/internal/catalog"
)

const header = "name,substitute0,substitute1,use0,use1,use2,sideeffect0,sideeffect1,sideeffect2\n"

func row(name string) string {
	return name + ",sub0,sub1,use0,use1,use2,se0,se1,se2\n"
}

func TestImportRejectsUnknownCompany(t *testing.T) {
	svc, store := newTestService(companyA)

	_, err := svc.ImportDataset(strings.NewReader(header+row("Amoxil")), 99)
	if !errors.Is(err, catalog.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
	if store.CreateCalls != 0 {
		t.Errorf("no rows may be processed for an unknown company, got %d inserts", store.CreateCalls)
	}
}

func TestImportInsertsNovelRows(t *testing.T) {
	svc, store := newTestService()

	input := header + row("Amoxil") + row("Cipro")
	report, err := svc.ImportDataset(strings.NewReader(input), companyA)
	if err != nil {
		t.Fatalf("ImportDataset returned error: %v", err)
	}
	if report.Inserted != 2 {
		t.Errorf("expected 2 inserted, got %d", report.Inserted)
	}

	medicines, _ := store.FindByCompany(companyA)
	if len(medicines) != 2 {
		t.Fatalf("expected 2 records owned by the importer, got %d", len(medicines))
	}
	if medicines[0].Name != "Amoxil" || medicines[1].Name != "Cipro" {
		t.Errorf("unexpected names %q, %q", medicines[0].Name, medicines[1].Name)
	}
	if medicines[0].Use2 != "use2" || medicines[0].SideEffect0 != "se0" {
		t.Errorf("row fields mapped incorrectly: %+v", medicines[0])
	}
}

func TestImportHeaderHandling(t *testing.T) {
	t.Run("header is always skipped", func(t *testing.T) {
		svc, _ := newTestService()
		report, err := svc.ImportDataset(strings.NewReader(header+row("Amoxil")), companyA)
		if err != nil {
			t.Fatalf("ImportDataset returned error: %v", err)
		}
		if report.Inserted != 1 {
			t.Errorf("expected 1 inserted, got %d", report.Inserted)
		}
	})

	t.Run("headerless file loses its first data row", func(t *testing.T) {
		svc, store := newTestService()
		report, err := svc.ImportDataset(strings.NewReader(row("Amoxil")+row("Cipro")), companyA)
		if err != nil {
			t.Fatalf("ImportDataset returned error: %v", err)
		}
		if report.Inserted != 1 {
			t.Errorf("expected only the second row inserted, got %d", report.Inserted)
		}
		if matches, _ := store.FindByNameIgnoreCase("Amoxil"); len(matches) != 0 {
			t.Error("first row should have been consumed as the header")
		}
	})
}

func TestImportDropsShortRowsSilently(t *testing.T) {
	svc, _ := newTestService()

	var dropped []int
	svc.SetRowErrorHook(func(lineNumber int, line string) {
		dropped = append(dropped, lineNumber)
	})

	input := header +
		row("Amoxil") +
		"too,short,row\n" +
		row("Cipro")
	report, err := svc.ImportDataset(strings.NewReader(input), companyA)
	if err != nil {
		t.Fatalf("ImportDataset returned error: %v", err)
	}
	if report.Inserted != 2 {
		t.Errorf("expected 2 inserted, got %d", report.Inserted)
	}
	// The malformed row appears nowhere in the report.
	if len(report.SystemNames)+len(report.OtherCompanyNames)+len(report.OwnCompanyNames) != 0 {
		t.Errorf("malformed row leaked into the report: %+v", report)
	}
	if len(dropped) != 1 || dropped[0] != 3 {
		t.Errorf("expected the hook to see line 3, got %v", dropped)
	}
}

func TestImportHandlesOversizedRows(t *testing.T) {
	svc, store := newTestService()

	// A row far beyond any fixed line-buffer size must neither abort the
	// import nor lose its neighbors.
	bigField := strings.Repeat("x", 2*1024*1024)
	input := header +
		row("Amoxil") +
		"Bigdata,sub0," + bigField + ",use0,use1,use2,se0,se1,se2\n" +
		row("Cipro")
	report, err := svc.ImportDataset(strings.NewReader(input), companyA)
	if err != nil {
		t.Fatalf("ImportDataset returned error: %v", err)
	}
	if report.Inserted != 3 {
		t.Errorf("expected 3 inserted, got %d", report.Inserted)
	}

	matches, _ := store.FindByNameIgnoreCase("Bigdata")
	if len(matches) != 1 {
		t.Fatalf("expected the oversized row to be stored, got %d matches", len(matches))
	}
	if len(matches[0].Substitute1) != len(bigField) {
		t.Errorf("oversized field truncated to %d bytes", len(matches[0].Substitute1))
	}
	if got, _ := store.FindByNameIgnoreCase("Cipro"); len(got) != 1 {
		t.Error("row after the oversized one was lost")
	}
}

func TestImportPartitionsCollisions(t *testing.T) {
	svc, store := newTestService()
	store.Seed("Aspirin", nil)
	store.Seed("Ibuprofen", nil)
	store.Seed("Cipro", uintPtr(companyB))
	store.Seed("Amoxil", uintPtr(companyA))

	input := header +
		row("Novel1") +
		row("aspirin") +
		row("cipro") +
		row("amoxil") +
		row("Ibuprofen") +
		row("Novel2")
	report, err := svc.ImportDataset(strings.NewReader(input), companyA)
	if err != nil {
		t.Fatalf("ImportDataset returned error: %v", err)
	}

	if report.Inserted != 2 {
		t.Errorf("expected 2 inserted, got %d", report.Inserted)
	}
	// Names keep their row spelling and encounter order.
	if want := []string{"aspirin", "Ibuprofen"}; !equalStrings(report.SystemNames, want) {
		t.Errorf("system partition = %v, want %v", report.SystemNames, want)
	}
	if want := []string{"cipro"}; !equalStrings(report.OtherCompanyNames, want) {
		t.Errorf("other-company partition = %v, want %v", report.OtherCompanyNames, want)
	}
	if want := []string{"amoxil"}; !equalStrings(report.OwnCompanyNames, want) {
		t.Errorf("own-company partition = %v, want %v", report.OwnCompanyNames, want)
	}
}

func TestImportSummary(t *testing.T) {
	svc, store := newTestService()
	store.Seed("Aspirin", nil)

	// Header plus two data rows: one novel, one colliding with a
	// system-owned record.
	input := header + row("Amoxil") + row("Aspirin")
	report, err := svc.ImportDataset(strings.NewReader(input), companyA)
	if err != nil {
		t.Fatalf("ImportDataset returned error: %v", err)
	}

	want := "1 medicines added successfully. 1 medicines already exist in the app (no company): Aspirin."
	if got := report.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestImportSummaryAllPartitions(t *testing.T) {
	report := &catalog.Report{
		Inserted:          3,
		OwnCompanyNames:   []string{"A", "B"},
		SystemNames:       []string{"C"},
		OtherCompanyNames: []string{"D"},
	}
	want := "3 medicines added successfully." +
		" 2 medicines already exist and are owned by your company: A, B." +
		" 1 medicines already exist in the app (no company): C." +
		" 1 medicines already exist under another company: D."
	if got := report.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestImportHasNoQuotingSupport(t *testing.T) {
	svc, store := newTestService()

	// A quoted field containing a comma is split like any other comma;
	// the row now has 10 fields and the name keeps the opening quote.
	input := header + "\"Amoxil,Forte\",sub1,use0,use1,use2,se0,se1,se2,extra\n"
	report, err := svc.ImportDataset(strings.NewReader(input), companyA)
	if err != nil {
		t.Fatalf("ImportDataset returned error: %v", err)
	}
	if report.Inserted != 1 {
		t.Fatalf("expected the corrupted row to insert, got %d", report.Inserted)
	}
	matches, _ := store.FindByNameIgnoreCase(`"Amoxil`)
	if len(matches) != 1 {
		t.Errorf("expected the name to be the text before the first comma, store has %+v", matches)
	}
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
