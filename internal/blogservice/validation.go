package blogservice

import (
	"github.com/sushihentaime/bloglist/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must not be more than 200 characters long")
}

func validateAuthor(v *common.Validator, author string) {
	v.Check(author != "", "author", "must be provided")
	v.Check(v.CheckStringLength(author, 1, 100), "author", "must not be more than 100 characters long")
}

func validateURL(v *common.Validator, url string) {
	v.Check(url != "", "url", "must be provided")
	v.Check(v.IsHTTPURL(url), "url", "must be a valid http or https URL")
}

func validateLikes(v *common.Validator, likes int) {
	v.Check(likes >= 0, "likes", "must not be negative")
}

func validateComment(v *common.Validator, comment string) {
	v.Check(comment != "", "comment", "must be provided")
	v.Check(v.CheckStringLength(comment, 1, 500), "comment", "must not be more than 500 characters long")
}

func validateBlog(v *common.Validator, blog *Blog) {
	validateTitle(v, blog.Title)
	validateAuthor(v, blog.Author)
	validateURL(v, blog.URL)
	validateLikes(v, blog.Likes)
}

func validateFilters(v *common.Validator, f Filters) {
	v.Check(f.Limit >= 0, "limit", "must not be negative")
	v.Check(f.Limit <= 100, "limit", "must not be more than 100")
	v.Check(f.Offset >= 0, "offset", "must not be negative")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
