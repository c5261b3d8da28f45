package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, name, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version`

	args := []any{
		u.Username,
		u.Name,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.Version)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "users_username_key"):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	return nil
}

func (m *DBModel) getUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, password, created_at, version
		FROM users
		WHERE username = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Name, &u.Password.hash, &u.CreatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *DBModel) getUserByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, username, name, created_at, version
		FROM users
		WHERE id = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Name, &u.CreatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getUsers returns every user with the blogs they own, users and blogs both ordered by id.
func (m *DBModel) getUsers(ctx context.Context) ([]User, error) {
	query := `
		SELECT u.id, u.username, u.name, b.id, b.title, b.author, b.url
		FROM users u
		LEFT JOIN blogs b ON b.user_id = u.id
		ORDER BY u.id, b.id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var (
			u      User
			blogID sql.NullInt64
			title  sql.NullString
			author sql.NullString
			url    sql.NullString
		)

		err := rows.Scan(&u.ID, &u.Username, &u.Name, &blogID, &title, &author, &url)
		if err != nil {
			return nil, err
		}

		if n := len(users); n == 0 || users[n-1].ID != u.ID {
			u.Blogs = []BlogRef{}
			users = append(users, u)
		}

		if blogID.Valid {
			last := &users[len(users)-1]
			last.Blogs = append(last.Blogs, BlogRef{
				ID:     int(blogID.Int64),
				Title:  title.String,
				Author: author.String,
				URL:    url.String,
			})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
