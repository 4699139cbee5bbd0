package pipeline

import (
	"strings"

	"github.com/matzehuels/qrsheet/pkg/errors"
)

// CleanCodes trims every code and drops blanks, keeping input order.
// It fails with EMPTY_SOURCE when nothing is left.
func CleanCodes(codes []string) ([]string, error) {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySource, "no valid data found")
	}
	return out, nil
}
