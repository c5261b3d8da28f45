package blogservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/blogstats"
	"github.com/sushihentaime/bloglist/internal/common"
)

type Blog struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	UserID    int       `json:"-"`
	User      Owner     `json:"user"`
	Comments  []string  `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// Owner is the populated summary of the user a blog belongs to.
type Owner struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (b Blog) AuthorName() string { return b.Author }
func (b Blog) LikeCount() int     { return b.Likes }

// BlogUpdate holds the fields of an update request. A nil field was omitted.
type BlogUpdate struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

type Filters struct {
	Title  string
	Limit  int
	Offset int
}

type Stats struct {
	TotalLikes   int                    `json:"total_likes"`
	FavoriteBlog *Blog                  `json:"favorite_blog"`
	MostBlogs    *blogstats.AuthorBlogs `json:"most_blogs"`
	MostLikes    *blogstats.AuthorLikes `json:"most_likes"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m  *BlogModel
	c  *common.Cache
	mb common.MessageProducer
}
