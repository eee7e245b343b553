package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renodesk/renodesk/internal/listview"
)

func TestSeedRecords(t *testing.T) {
	for _, entity := range Entities() {
		t.Run(entity, func(t *testing.T) {
			records, err := SeedRecords(entity)
			require.NoError(t, err)
			require.NotEmpty(t, records)

			screen, err := ByEntity(entity, testUI())
			require.NoError(t, err)

			seen := make(map[string]struct{}, len(records))
			for _, r := range records {
				id := r.ID()
				require.NotEmpty(t, id)
				_, dup := seen[id]
				assert.False(t, dup, "seed ids must be unique")
				seen[id] = struct{}{}

				assert.NotNil(t, r.Field(screen.StatusField))
			}

			// The card title column must render for every seed record.
			var title listview.Column
			found := false
			for _, col := range screen.View.Columns {
				if col.Key == screen.CardTitleKey {
					title, found = col, true
					break
				}
			}
			require.True(t, found)
			for _, r := range records {
				assert.NotEmpty(t, title.CellValue(r))
			}
		})
	}
}

func TestSeedRecordsUnknownEntity(t *testing.T) {
	_, err := SeedRecords("invoices")
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestSeedRecordsFreshIDsPerCall(t *testing.T) {
	first, err := SeedRecords(EntityRequests)
	require.NoError(t, err)
	second, err := SeedRecords(EntityRequests)
	require.NoError(t, err)

	assert.NotEqual(t, first[0].ID(), second[0].ID())
}
