package blogservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sushihentaime/bloglist/internal/blogstats"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

func NewBlogService(db *sql.DB, c *common.Cache, mb common.MessageProducer) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c, mb: mb}
}

// CreateBlog stores a new blog owned by owner and announces it on the blog exchange.
// Likes default to 0 when omitted.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest, owner *userservice.User) (*Blog, error) {
	if owner == nil || owner.IsAnonymous() || owner.ID <= 0 {
		return nil, ErrInvalidCaller
	}

	blog := Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		UserID: owner.ID,
		User:   Owner{ID: owner.ID, Username: owner.Username, Name: owner.Name},
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	v := common.NewValidator()
	validateBlog(v, &blog)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	err = s.m.insert(ctx, tx, &blog)
	if err != nil {
		return nil, err
	}

	msg, err := json.Marshal(common.BlogCreatedEvent{
		ID:       blog.ID,
		Title:    blog.Title,
		Author:   blog.Author,
		URL:      blog.URL,
		Username: owner.Username,
	})
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, msg, common.BlogCreatedKey, common.BlogExchange)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogStats)

	return &blog, nil
}

// GetBlogByID returns a blog with its owner populated.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		blog := cached.(Blog)
		return &blog, nil
	}

	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), *blog)

	return blog, nil
}

// GetBlogs lists blogs in creation order, optionally filtered by a title substring.
func (s *BlogService) GetBlogs(ctx context.Context, f Filters) ([]Blog, error) {
	v := common.NewValidator()
	validateFilters(v, f)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogs(ctx, f.Title, f.Limit, f.Offset)
}

// GetBlogsByUserID returns every blog owned by the user. An unknown user is ErrRecordNotFound.
func (s *BlogService) GetBlogsByUserID(ctx context.Context, userID int) ([]Blog, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogsByUserId(ctx, userID)
}

// UpdateBlog applies upd when CanUpdate allows it. The owner may change any field, other
// users may only add a single like.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, upd BlogUpdate, caller *userservice.User) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := CanUpdate(blog, upd, caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotOwner
	}

	if upd.Title != nil {
		blog.Title = *upd.Title
	}
	if upd.Author != nil {
		blog.Author = *upd.Author
	}
	if upd.URL != nil {
		blog.URL = *upd.URL
	}
	if upd.Likes != nil {
		blog.Likes = *upd.Likes
	}

	validateBlog(v, blog)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.updateBlog(ctx, blog)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlog(id), common.CacheKeyBlogStats)

	return blog, nil
}

// DeleteBlog removes a blog. Only its owner may delete it.
func (s *BlogService) DeleteBlog(ctx context.Context, id int, caller *userservice.User) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return err
	}

	ok, err := CanDelete(blog, caller)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotOwner
	}

	err = s.m.deleteBlog(ctx, id)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(id), common.CacheKeyBlogStats)

	return nil
}

// AddComment appends a comment to the blog, with script elements removed.
func (s *BlogService) AddComment(ctx context.Context, id int, comment string) (*Blog, error) {
	comment = sanitizeText(comment)

	v := common.NewValidator()
	validateInt(v, id, "id")
	validateComment(v, comment)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.appendComment(ctx, id, comment)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlog(id))

	return s.GetBlogByID(ctx, id)
}

// GetStats computes the aggregate statistics over every stored blog.
func (s *BlogService) GetStats(ctx context.Context) (*Stats, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogStats); ok {
		stats := cached.(Stats)
		return &stats, nil
	}

	blogs, err := s.m.getBlogs(ctx, "", 0, 0)
	if err != nil {
		return nil, err
	}

	stats, err := computeStats(blogs)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlogStats, *stats)

	return stats, nil
}

func computeStats(blogs []Blog) (*Stats, error) {
	var (
		stats Stats
		err   error
	)

	stats.TotalLikes, err = blogstats.TotalLikes(blogs)
	if err != nil {
		return nil, fmt.Errorf("total likes: %w", err)
	}

	stats.FavoriteBlog, err = blogstats.FavoriteBlog(blogs)
	if err != nil {
		return nil, fmt.Errorf("favorite blog: %w", err)
	}

	stats.MostBlogs, err = blogstats.MostBlogs(blogs)
	if err != nil {
		return nil, fmt.Errorf("most blogs: %w", err)
	}

	stats.MostLikes, err = blogstats.MostLikes(blogs)
	if err != nil {
		return nil, fmt.Errorf("most likes: %w", err)
	}

	return &stats, nil
}
