// Package store translates the API's paginated, filtered queries into gorm
// calls over the books, users and user_books tables.
package store

import (
	"errors"
	"math"
	"strconv"

	"gorm.io/gorm"
)

// PageSize is the number of records in one pagination window.
const PageSize = 10

// AllPages selects the whole result set.
const AllPages = 0

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrUnknownReference = errors.New("user or book does not exist")
)

// Page is a window of rows together with the total number of matches.
type Page[T any] struct {
	Rows  []T   `json:"rows"`
	Count int64 `json:"count"`
}

// ParsePage converts a raw, already validated page parameter into a page
// number. "" yields AllPages; fractions are truncated and values below 1
// become 1.
func ParsePage(raw string) int {
	if raw == "" {
		return AllPages
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 1 {
		return 1
	}
	if f > math.MaxInt32/PageSize {
		return math.MaxInt32 / PageSize
	}
	return int(f)
}

// Paginate is a gorm scope selecting the window of page. AllPages applies
// no limit or offset.
func Paginate(page int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= AllPages {
			return db
		}
		return db.Limit(PageSize).Offset((page - 1) * PageSize)
	}
}

// creationOrder keeps windows stable slices of the unpaged ordering.
func creationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at").Order("id")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
