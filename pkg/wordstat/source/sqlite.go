package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/wordstat/pkg/wordstat/internalerr"
)

// DefaultQuery selects document bodies from a corpus database.
const DefaultQuery = "SELECT text FROM docs ORDER BY id"

// SQLite reads texts from a database. The query must return a single
// text column; NULL rows are skipped. The database is only read.
type SQLite struct {
	Path  string
	Query string
}

// Load runs the query and returns each row's text.
func (s SQLite) Load(ctx context.Context) ([]string, error) {
	query := s.Query
	if query == "" {
		query = DefaultQuery
	}

	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, unavailable(s.Path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w: %w", s.Path, internalerr.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text sql.NullString
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.Path, err)
		}
		if text.Valid {
			texts = append(texts, text.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.Path, err)
	}
	return texts, nil
}
