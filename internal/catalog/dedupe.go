package catalog

import (
	"strings"

	"medicine-service/internal/model"
)

// Verdict is the outcome of a deduplication check for a candidate name.
type Verdict int

const (
	// VerdictAllow means no record blocks the write.
	VerdictAllow Verdict = iota
	// VerdictConflictSystem means the application dataset already has the name.
	VerdictConflictSystem
	// VerdictConflictOther means another company (or, on the gate path, the
	// system) already owns the name.
	VerdictConflictOther
	// VerdictConflictSelf means the requesting company already owns the name.
	VerdictConflictSelf
)

func (v Verdict) String() string {
	switch v {
	case VerdictAllow:
		return "allow"
	case VerdictConflictSystem:
		return "conflict_system"
	case VerdictConflictOther:
		return "conflict_other"
	case VerdictConflictSelf:
		return "conflict_self"
	}
	return "unknown"
}

// Deduper decides whether a company may claim a medicine name. It has no
// side effects; every decision is a fresh read of the store, so two
// concurrent writers can both see "allow" before either insert lands.
type Deduper struct {
	store Store
}

func NewDeduper(store Store) *Deduper {
	return &Deduper{store: store}
}

// Check runs the full gate used by the single-record paths: first the broad
// "someone else owns this name" query, then a walk of the exact matches for
// system- and self-owned records. excludeID, when non-zero, is the record
// being updated, which must not conflict with itself.
func (d *Deduper) Check(name string, companyID uint, excludeID uint) (Verdict, error) {
	name = strings.TrimSpace(name)

	taken, err := d.store.ExistsByNameExcludingCompany(name, companyID, excludeID)
	if err != nil {
		return VerdictAllow, err
	}
	if taken {
		return VerdictConflictOther, nil
	}

	matches, err := d.store.FindByNameIgnoreCase(name)
	if err != nil {
		return VerdictAllow, err
	}
	for _, m := range matches {
		if excludeID != 0 && m.ID == excludeID {
			continue
		}
		if m.SystemOwned() {
			return VerdictConflictSystem, nil
		}
		if m.OwnedBy(companyID) {
			return VerdictConflictSelf, nil
		}
	}

	return VerdictAllow, nil
}

// ClassifyFirst buckets a bulk-import collision using the owner of the first
// match only, mirroring the three partitions of the import report. Callers
// must pass a non-empty slice.
func ClassifyFirst(matches []model.Medicine, companyID uint) Verdict {
	first := matches[0]
	switch {
	case first.SystemOwned():
		return VerdictConflictSystem
	case !first.OwnedBy(companyID):
		return VerdictConflictOther
	default:
		return VerdictConflictSelf
	}
}
