package invoicing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NumberPrefix builds the date-bucketed invoice number prefix from the
// generation date, e.g. "INV-20250115-". Numbers are bucketed by the calendar
// day the allocation runs on, not by any stored timestamp.
func NumberPrefix(generationDate time.Time) string {
	return "INV-" + generationDate.Format("20060102") + "-"
}

// NextNumber computes the next invoice number under prefix given the most
// recently issued number with that prefix. An empty lastNumber starts the
// day's sequence at 1. The numeric suffix is zero-padded to a minimum of
// three digits; sequences past 999 simply grow wider.
//
// A suffix that does not parse is a hard error: silently restarting at 1
// would risk issuing a duplicate.
func NextNumber(lastNumber, prefix string) (string, error) {
	sequence := 1
	if lastNumber != "" {
		parts := strings.Split(lastNumber, "-")
		if len(parts) != 3 {
			return "", fmt.Errorf("malformed invoice number %q", lastNumber)
		}
		last, err := strconv.Atoi(parts[2])
		if err != nil {
			return "", fmt.Errorf("malformed invoice number %q: %w", lastNumber, err)
		}
		sequence = last + 1
	}
	return fmt.Sprintf("%s%03d", prefix, sequence), nil
}
