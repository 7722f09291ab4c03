package store

import (
	"fmt"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

const courseColumns = `title, description, instructor, price, category, duration, lessons_count, rating, image_url`

const cartItemColumns = `id, username, email, ` + courseColumns + `, quantity`

// datasetSQL returns the statement and arguments for an assistant dataset.
// Ordering always ends on id so repeated reads of an unchanged store return
// identical sequences.
func datasetSQL(q domain.DatasetQuery) (string, []any, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = q.Name.RowLimit()
	}

	switch q.Name {
	case domain.DatasetCatalog:
		return `SELECT id, ` + courseColumns + `
			FROM courses
			ORDER BY rating DESC, id ASC
			LIMIT ?`, []any{limit}, nil
	case domain.DatasetTasks:
		return `SELECT id, title, category, priority, "dueDate"
			FROM tasks
			ORDER BY id ASC
			LIMIT ?`, []any{limit}, nil
	case domain.DatasetEnrollments:
		return `SELECT id, ` + courseColumns + `, email, username
			FROM user_course
			WHERE (email = ? OR username = ?)
			ORDER BY id ASC
			LIMIT ?`, []any{q.Filter.Email, q.Filter.Username, limit}, nil
	case domain.DatasetCartItems:
		return `SELECT id, title, instructor, price, category, duration, lessons_count, rating, image_url, quantity, description, email, username
			FROM cart_products
			WHERE (email = ? OR username = ?)
			ORDER BY id ASC
			LIMIT ?`, []any{q.Filter.Email, q.Filter.Username, limit}, nil
	}
	return "", nil, fmt.Errorf("%w: %q", ErrUnknownDataset, q.Name)
}
