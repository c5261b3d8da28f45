package userservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

const (
	AccessTokenTime time.Duration = 24 * time.Hour

	tokenIssuer = "bloglist"
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m      *DBModel
	c      *common.Cache
	tokens *TokenMaker
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"-"`
	Version   int       `json:"-"`

	// Blogs is only populated when listing users.
	Blogs []BlogRef `json:"blogs"`
}

// BlogRef is the slice of a blog shown next to its owner.
type BlogRef struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// AuthToken is returned on login.
type AuthToken struct {
	Token    string    `json:"token"`
	Expiry   time.Time `json:"expiry"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
}

// TokenConfig carries the signing secret and lifetime of access tokens.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
}
