// internal/app/store/storeutil/storeutil.go
package storeutil

import (
	"math"

	"go.mongodb.org/mongo-driver/mongo/options"
)

// ClampPage keeps a 1-based page and a page size inside their valid ranges.
// A page below 1 becomes 1; a size below 1 becomes defaultSize and a size
// above maxSize becomes maxSize. The page is capped at MaxPage(maxSize) so
// the skip count cannot overflow.
func ClampPage(page, size, defaultSize, maxSize int64) (int64, int64) {
	switch {
	case page < 1:
		page = 1
	case page > MaxPage(maxSize):
		page = MaxPage(maxSize)
	}
	switch {
	case size < 1:
		size = defaultSize
	case size > maxSize:
		size = maxSize
	}
	return page, size
}

// MaxPage is the largest page whose skip, (page-1)*size, fits in an int64.
func MaxPage(size int64) int64 {
	if size < 1 {
		size = 1
	}
	return math.MaxInt64 / size
}

// Paginate returns *options.FindOptions with skip/limit given a 1-based page.
func Paginate(limit, page int64) *options.FindOptions {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	if page > MaxPage(limit) {
		page = MaxPage(limit)
	}
	sk := (page - 1) * limit
	return options.Find().SetLimit(limit).SetSkip(sk)
}
