package blogservice

import (
	"errors"

	"github.com/sushihentaime/bloglist/internal/userservice"
)

var (
	ErrInvalidCaller = errors.New("invalid caller")
	ErrNotOwner      = errors.New("caller does not own the blog")
)

// CanDelete reports whether caller owns blog.
func CanDelete(blog *Blog, caller *userservice.User) (bool, error) {
	if err := checkCaller(caller); err != nil {
		return false, err
	}

	if blog == nil {
		return false, nil
	}

	return blog.UserID == caller.ID, nil
}

// CanUpdate reports whether caller may apply proposed to stored. The owner may change
// anything. Anyone else may only add exactly one like, resubmitting title, author and
// url unchanged.
func CanUpdate(stored *Blog, proposed BlogUpdate, caller *userservice.User) (bool, error) {
	if err := checkCaller(caller); err != nil {
		return false, err
	}

	if stored == nil {
		return false, nil
	}

	if stored.UserID == caller.ID {
		return true, nil
	}

	if !sameString(proposed.Title, stored.Title) ||
		!sameString(proposed.Author, stored.Author) ||
		!sameString(proposed.URL, stored.URL) {
		return false, nil
	}

	return proposed.Likes != nil && *proposed.Likes == stored.Likes+1, nil
}

func checkCaller(caller *userservice.User) error {
	if caller == nil || caller.IsAnonymous() || caller.ID <= 0 {
		return ErrInvalidCaller
	}

	return nil
}

// an omitted field counts as a change
func sameString(proposed *string, stored string) bool {
	return proposed != nil && *proposed == stored
}
