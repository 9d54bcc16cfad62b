package gen

import (
	"fmt"
	"strings"

	"icondex/internal/dataset"
)

// Summary renders the fixed textual form of a record that gets embedded.
// The template is deterministic: the same record always embeds the same
// string, so reruns produce comparable vectors.
func Summary(rec *dataset.Record) string {
	return fmt.Sprintf(
		"Icon: %s. Also known as: %s. Description: %s Tags: %s. Categories: %s.",
		rec.Name,
		joinOrNone(rec.CommonNames),
		rec.Description,
		joinOrNone(rec.Tags),
		joinOrNone(rec.Categories),
	)
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
