package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// FloorRepo provides read access to floors for client browsing.  Floor
// administration lives in the staff CRUD service and is out of scope
// here.
type FloorRepo struct {
	db *sql.DB
}

// NewFloorRepo returns a new FloorRepo bound to the given database.
func NewFloorRepo(db *sql.DB) *FloorRepo { return &FloorRepo{db: db} }

// ListAll returns all floors ordered by floor number.
func (r *FloorRepo) ListAll(ctx context.Context) ([]model.Floor, error) {
	const q = `SELECT id, name, number, created_at FROM floors ORDER BY number`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	floors := make([]model.Floor, 0)
	for rows.Next() {
		var f model.Floor
		if err := rows.Scan(&f.ID, &f.Name, &f.Number, &f.CreatedAt); err != nil {
			return nil, err
		}
		floors = append(floors, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return floors, nil
}
