package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mmynk/weddingplan/internal/storage"
)

// joinSet builds the SET clause from collected assignments.
func joinSet(set []string) string {
	return strings.Join(set, ", ")
}

// requireRow converts a zero-row write into ErrNotFound so services can
// tell "no such entity" apart from a storage failure.
func requireRow(res sql.Result, desc string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", desc, storage.ErrNotFound)
	}
	return nil
}
