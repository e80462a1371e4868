package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Params struct {
	Page  int
	Limit int
}

// ParseFromRequest reads page/limit query parameters from a Fiber context,
// clamping page to at least 1 and limit to [1, maxLimit].
func ParseFromRequest(c *fiber.Ctx, defaultLimit, maxLimit int) Params {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return Params{Page: page, Limit: limit}
}
