package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrUserForeignKey = errors.New("user_id does not exist")
)

const blogColumns = `b.id, b.title, b.author, b.url, b.likes, b.user_id, b.comments,
		b.created_at, b.updated_at, b.version, u.username, u.name`

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(row scanner) (*Blog, error) {
	var blog Blog
	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&blog.UserID,
		pq.Array(&blog.Comments),
		&blog.CreatedAt,
		&blog.UpdatedAt,
		&blog.Version,
		&blog.User.Username,
		&blog.User.Name,
	)
	if err != nil {
		return nil, err
	}
	blog.User.ID = blog.UserID

	return &blog, nil
}

func (m *BlogModel) queryBlogs(ctx context.Context, query string, args ...any) ([]Blog, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// insert runs inside tx so the caller can undo it when the follow-up publish fails.
func (m *BlogModel) insert(ctx context.Context, tx *sql.Tx, blog *Blog) error {
	query := `
		INSERT INTO blogs (title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, comments, created_at, updated_at, version`

	args := []any{blog.Title, blog.Author, blog.URL, blog.Likes, blog.UserID}

	err := tx.QueryRowContext(ctx, query, args...).Scan(&blog.ID, pq.Array(&blog.Comments), &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getBlogById returns the blog joined with the owner's username and name.
func (m *BlogModel) getBlogById(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.id = $1`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

// getBlogs lists blogs in id order. An empty title matches every blog and a zero limit means no limit.
func (m *BlogModel) getBlogs(ctx context.Context, title string, limit, offset int) ([]Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE ($1 = '' OR b.title ILIKE '%' || $1 || '%')
		ORDER BY b.id ASC
		LIMIT NULLIF($2, 0) OFFSET $3`

	return m.queryBlogs(ctx, query, title, limit, offset)
}

func (m *BlogModel) getBlogsByUserId(ctx context.Context, userID int) ([]Blog, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, common.ErrRecordNotFound
	}

	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		WHERE b.user_id = $1
		ORDER BY b.id ASC`

	return m.queryBlogs(ctx, query, userID)
}

// updateBlog writes the editable fields. user_id is never written, so ownership cannot change.
func (m *BlogModel) updateBlog(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, author = $2, url = $3, likes = $4, updated_at = NOW(), version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING updated_at, version`

	args := []any{blog.Title, blog.Author, blog.URL, blog.Likes, blog.ID, blog.Version}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrEditConflict
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, id int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

func (m *BlogModel) appendComment(ctx context.Context, id int, comment string) error {
	query := `
		UPDATE blogs
		SET comments = array_append(comments, $1), updated_at = NOW(), version = version + 1
		WHERE id = $2`

	res, err := m.db.ExecContext(ctx, query, comment, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}
