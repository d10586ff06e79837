package order

import (
	"fmt"
	"time"

	"orderflow/internal/pkg/errs"
)

// businessIDPrefix starts every public order identifier.
const businessIDPrefix = "ORD"

// FormatBusinessID builds the public date-based order identifier from the
// checkout day and that day's sequence number, e.g. ORD-20250101-0042.
// Sequence allocation itself lives in the persistence layer so that
// concurrent checkouts never collide.
func FormatBusinessID(day time.Time, sequence int64) (string, error) {
	if day.IsZero() {
		return "", errs.NewValueIsRequiredError("day")
	}
	if sequence < 1 {
		return "", errs.NewValueIsOutOfRangeError("sequence", sequence, 1, 9999999)
	}
	return fmt.Sprintf("%s-%s-%04d", businessIDPrefix, day.Format("20060102"), sequence), nil
}
