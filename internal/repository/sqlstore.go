package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

// dialect captures the differences between the SQL backends.
type dialect struct {
	name            string
	placeholder     func(n int) string
	uniqueViolation func(err error) bool
}

// rebind rewrites '?' placeholders into the dialect's form.
func (d dialect) rebind(query string) string {
	if d.placeholder == nil {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(d.placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func dollarPlaceholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// SQLStore implements Store on top of database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	onClose func()
}

var _ Store = (*SQLStore)(nil)

// QueryDataset runs one assistant dataset query.
func (s *SQLStore) QueryDataset(ctx context.Context, q domain.DatasetQuery) ([]domain.Record, error) {
	query, args, err := datasetSQL(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s on %s: %w", q.Name, s.dialect.name, err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s on %s: %w", q.Name, s.dialect.name, err)
	}
	return records, nil
}

func scanRecords(rows *sql.Rows) ([]domain.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	records := []domain.Record{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		rec := make(domain.Record, len(cols))
		for i, col := range cols {
			// Text columns come back as []byte from some drivers.
			if b, ok := values[i].([]byte); ok {
				rec[col] = string(b)
				continue
			}
			rec[col] = values[i]
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourseFields(f *domain.CourseFields) []any {
	return []any{
		&f.Title, &f.Description, &f.Instructor, &f.Price, &f.Category,
		&f.Duration, &f.LessonsCount, &f.Rating, &f.ImageURL,
	}
}

func courseFieldArgs(f domain.CourseFields) []any {
	return []any{
		f.Title, f.Description, f.Instructor, f.Price, f.Category,
		f.Duration, f.LessonsCount, f.Rating, f.ImageURL,
	}
}

func scanCartItem(row rowScanner) (*domain.CartItem, error) {
	var item domain.CartItem
	dest := append([]any{&item.ID, &item.Username, &item.Email}, scanCourseFields(&item.CourseFields)...)
	dest = append(dest, &item.Quantity)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &item, nil
}

func scanEnrollment(row rowScanner) (*domain.Enrollment, error) {
	var e domain.Enrollment
	dest := append([]any{&e.ID, &e.Username, &e.Email}, scanCourseFields(&e.CourseFields)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListCourses returns the full catalog.
func (s *SQLStore) ListCourses(ctx context.Context) ([]domain.Course, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, `+courseColumns+` FROM courses ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := []domain.Course{}
	for rows.Next() {
		var c domain.Course
		dest := append([]any{&c.ID}, scanCourseFields(&c.CourseFields)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// ListTasks returns every task.
func (s *SQLStore) ListTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, category, priority, "dueDate" FROM tasks ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Category, &t.Priority, &t.DueDate); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ListEnrollments returns the enrollments matching both email and username.
func (s *SQLStore) ListEnrollments(ctx context.Context, email, username string) ([]domain.Enrollment, error) {
	query := s.dialect.rebind(`SELECT id, username, email, ` + courseColumns + `
		FROM user_course WHERE email = ? AND username = ? ORDER BY id ASC`)
	rows, err := s.db.QueryContext(ctx, query, email, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []domain.Enrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, *e)
	}
	return enrollments, rows.Err()
}

// CreateEnrollment inserts an enrollment and sets its ID.
func (s *SQLStore) CreateEnrollment(ctx context.Context, e *domain.Enrollment) error {
	query := s.dialect.rebind(`INSERT INTO user_course (username, email, ` + courseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	args := append([]any{e.Username, e.Email}, courseFieldArgs(e.CourseFields)...)
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&e.ID); err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

// CreateCartItem inserts a cart row and sets its ID.
func (s *SQLStore) CreateCartItem(ctx context.Context, item *domain.CartItem) error {
	query := s.dialect.rebind(`INSERT INTO cart_products (username, email, ` + courseColumns + `, quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)
	args := append([]any{item.Username, item.Email}, courseFieldArgs(item.CourseFields)...)
	args = append(args, item.Quantity)
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// ListCartItems returns the cart rows of an email, oldest first.
func (s *SQLStore) ListCartItems(ctx context.Context, email string) ([]domain.CartItem, error) {
	query := s.dialect.rebind(`SELECT ` + cartItemColumns + ` FROM cart_products WHERE email = ? ORDER BY id ASC`)
	rows, err := s.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateCartItemQuantity sets the quantity of a cart row and returns it.
func (s *SQLStore) UpdateCartItemQuantity(ctx context.Context, id int64, quantity int) (*domain.CartItem, error) {
	query := s.dialect.rebind(`UPDATE cart_products SET quantity = ? WHERE id = ? RETURNING ` + cartItemColumns)
	item, err := scanCartItem(s.db.QueryRowContext(ctx, query, quantity, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return item, nil
}

// DeleteCartItem removes a cart row and returns it.
func (s *SQLStore) DeleteCartItem(ctx context.Context, id int64) (*domain.CartItem, error) {
	query := s.dialect.rebind(`DELETE FROM cart_products WHERE id = ? RETURNING ` + cartItemColumns)
	item, err := scanCartItem(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete cart item: %w", err)
	}
	return item, nil
}

// UserExists reports whether an account uses the email OR the username.
func (s *SQLStore) UserExists(ctx context.Context, email, username string) (bool, error) {
	query := s.dialect.rebind(`SELECT 1 FROM users WHERE email = ? OR username = ? LIMIT 1`)
	var one int
	err := s.db.QueryRowContext(ctx, query, email, username).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return true, nil
}

// CreateUser inserts an account and sets its ID.
func (s *SQLStore) CreateUser(ctx context.Context, user *domain.User) error {
	query := s.dialect.rebind(`INSERT INTO users (username, email, password, role) VALUES (?, ?, ?, ?) RETURNING id`)
	err := s.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Role).Scan(&user.ID)
	if err != nil {
		if s.dialect.uniqueViolation != nil && s.dialect.uniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail returns the account registered under email.
func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := s.dialect.rebind(`SELECT id, username, email, password, role FROM users WHERE email = ?`)
	var u domain.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// UpdateUserPassword replaces the stored password hash of an account.
func (s *SQLStore) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	query := s.dialect.rebind(`UPDATE users SET password = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	err := s.db.Close()
	if s.onClose != nil {
		s.onClose()
	}
	return err
}
