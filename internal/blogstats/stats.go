// Package blogstats computes aggregate statistics over blog records held in memory.
//
// Every function reads its input only. Author aggregations break ties by the
// author that appears first in the input.
package blogstats

import (
	"errors"
	"fmt"
)

var ErrMalformedRecord = errors.New("malformed blog record")

// Record is the part of a blog the statistics need.
type Record interface {
	AuthorName() string
	LikeCount() int
}

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes returns the sum of likes across blogs, 0 for an empty slice.
func TotalLikes[R Record](blogs []R) (int, error) {
	total := 0
	for i, b := range blogs {
		if err := checkRecord(i, b); err != nil {
			return 0, err
		}
		total += b.LikeCount()
	}

	return total, nil
}

// FavoriteBlog returns a copy of the blog with the most likes, or nil for an empty slice.
// Only a strictly greater count replaces the current favourite.
func FavoriteBlog[R Record](blogs []R) (*R, error) {
	if len(blogs) == 0 {
		return nil, nil
	}

	best := 0
	for i, b := range blogs {
		if err := checkRecord(i, b); err != nil {
			return nil, err
		}
		if b.LikeCount() > blogs[best].LikeCount() {
			best = i
		}
	}

	fav := blogs[best]
	return &fav, nil
}

// MostBlogs returns the author with the most blogs, or nil for an empty slice.
func MostBlogs[R Record](blogs []R) (*AuthorBlogs, error) {
	t, err := tallyBy(blogs, func(R) int { return 1 })
	if err != nil || t == nil {
		return nil, err
	}

	author, count := t.max()
	return &AuthorBlogs{Author: author, Blogs: count}, nil
}

// MostLikes returns the author whose blogs have the most likes in total, or nil for an empty slice.
func MostLikes[R Record](blogs []R) (*AuthorLikes, error) {
	t, err := tallyBy(blogs, func(b R) int { return b.LikeCount() })
	if err != nil || t == nil {
		return nil, err
	}

	author, likes := t.max()
	return &AuthorLikes{Author: author, Likes: likes}, nil
}

// tally keeps per-author totals together with the order authors were first seen.
type tally struct {
	authors []string
	totals  map[string]int
}

func (t *tally) add(author string, n int) {
	if _, ok := t.totals[author]; !ok {
		t.authors = append(t.authors, author)
	}
	t.totals[author] += n
}

func (t *tally) max() (string, int) {
	best := t.authors[0]
	for _, author := range t.authors[1:] {
		if t.totals[author] > t.totals[best] {
			best = author
		}
	}

	return best, t.totals[best]
}

func tallyBy[R Record](blogs []R, weight func(R) int) (*tally, error) {
	if len(blogs) == 0 {
		return nil, nil
	}

	t := &tally{totals: make(map[string]int)}
	for i, b := range blogs {
		if err := checkRecord(i, b); err != nil {
			return nil, err
		}
		t.add(b.AuthorName(), weight(b))
	}

	return t, nil
}

func checkRecord[R Record](i int, b R) error {
	if b.AuthorName() == "" {
		return fmt.Errorf("%w: blog %d has no author", ErrMalformedRecord, i)
	}
	if b.LikeCount() < 0 {
		return fmt.Errorf("%w: blog %d has negative likes", ErrMalformedRecord, i)
	}

	return nil
}
