package utils

import "github.com/gofiber/fiber/v2"

// Pagination is the page window applied to transaction history listings.
type Pagination struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// GetPagination reads page and limit from the query string, falling back to
// the given defaults when a value is missing or not a positive integer.
func GetPagination(c *fiber.Ctx, defaultPage, defaultLimit int) Pagination {
	page := c.QueryInt("page", defaultPage)
	if page < 1 {
		page = defaultPage
	}

	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}
