// Package seed loads the baseline medicine dataset on startup. Seeded rows
// have no owning company: they form the system-owned part of the catalog
// that blocks every company from claiming the same names.
package seed

import (
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/zap"

	"medicine-service/internal/catalog"
	"medicine-service/internal/model"
)

// Seed file column layout, after the leading index column:
// name, substitute0, substitute1, sideeffect0, sideeffect1, sideeffect2,
// use0, use1, use2. Note the side effects come BEFORE the uses here,
// unlike the bulk-import row layout. The trailing use columns may be
// missing entirely.
const (
	colName        = 1
	colSubstitute0 = 2
	colSubstitute1 = 3
	colSideEffect0 = 4
	colSideEffect1 = 5
	colSideEffect2 = 6
	colUse0        = 7
	colUse1        = 8
	colUse2        = 9
)

// LoadSystemDataset reads the CSV at path and inserts its rows as
// system-owned medicines. It is a no-op when the catalog already has
// records, so restarts do not duplicate the dataset.
func LoadSystemDataset(store catalog.Store, path string, log *zap.Logger) error {
	count, err := store.Count()
	if err != nil {
		return fmt.Errorf("failed to count medicines: %w", err)
	}
	if count > 0 {
		log.Info("Catalog already populated, skipping system dataset seeding",
			zap.Int64("medicines", count))
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read seed dataset: %w", err)
	}
	if len(records) == 0 {
		return nil
	}
	// Drop the header row.
	records = records[1:]

	inserted := 0
	for _, row := range records {
		if len(row) <= colUse0 {
			continue
		}
		medicine := &model.Medicine{
			Name:        row[colName],
			Substitute0: row[colSubstitute0],
			Substitute1: row[colSubstitute1],
			SideEffect0: row[colSideEffect0],
			SideEffect1: row[colSideEffect1],
			SideEffect2: row[colSideEffect2],
			Use0:        row[colUse0],
		}
		if len(row) > colUse1 {
			medicine.Use1 = row[colUse1]
		}
		if len(row) > colUse2 {
			medicine.Use2 = row[colUse2]
		}
		if err := store.Create(medicine); err != nil {
			return fmt.Errorf("failed to seed medicine %q: %w", medicine.Name, err)
		}
		inserted++
	}

	log.Info("System dataset seeded", zap.Int("medicines", inserted))
	return nil
}
