package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	domain "github.com/okandemirel/sales-analyst/internal/domain/sales"
)

type SalesRepository struct {
	db *sql.DB
}

func NewSalesRepository(db *sql.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

// FetchAll materializes the whole sales table client-side. The schema is not
// interpreted here: columns are discovered from the result set and every
// value is stringified for prompt rendering.
func (r *SalesRepository) FetchAll(ctx context.Context) (*domain.Table, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT * FROM sales;`)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	table := &domain.Table{Columns: cols}
	values := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = stringify(v)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, rows.Err()
}

// stringify renders one scanned cell for display in the prompt table.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
