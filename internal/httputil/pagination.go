package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	appValidation "github.com/codecollab/server/internal/validation"
)

// Listing bounds shared by /users/all and /projects/all.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Page is a validated offset/limit window.
type Page struct {
	Offset int
	Limit  int
}

// ParsePagination reads ?offset= and ?limit= from the query string. Missing values
// default to 0 and DefaultLimit. Invalid values return a validation error with
// per-parameter details.
func ParsePagination(c *gin.Context) (Page, error) {
	errs := validation.Errors{}
	page := Page{Offset: 0, Limit: DefaultLimit}

	if raw, ok := c.GetQuery("offset"); ok {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			errs["offset"] = validation.NewError("validation_offset", "must be a non-negative integer")
		}
		page.Offset = offset
	}

	if raw, ok := c.GetQuery("limit"); ok {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxLimit {
			errs["limit"] = validation.NewError("validation_limit", "must be between 1 and "+strconv.Itoa(MaxLimit))
		}
		page.Limit = limit
	}

	if len(errs) > 0 {
		return Page{}, appValidation.WrapValidationError(errs)
	}
	return page, nil
}
