// Package genres holds the fixed genre catalog the app filters by and its
// mapping to TMDB genre ids.
package genres

import (
	"strconv"
	"strings"
)

var labelToID = map[string]int{
	"Acción":          28,
	"Comedia":         35,
	"Drama":           18,
	"Terror":          27,
	"Romance":         10749,
	"Ciencia ficción": 878,
}

// Labels returns the supported genre labels in a stable order.
func Labels() []string {
	return []string{"Acción", "Comedia", "Drama", "Terror", "Romance", "Ciencia ficción"}
}

func IsValidLabel(label string) bool {
	_, ok := labelToID[label]
	return ok
}

// IDsFor resolves genre labels to a comma-joined TMDB id list, as the
// discover endpoint expects. Unknown labels are skipped.
func IDsFor(labels []string) string {
	ids := make([]string, 0, len(labels))
	for _, l := range labels {
		if id, ok := labelToID[l]; ok {
			ids = append(ids, strconv.Itoa(id))
		}
	}
	return strings.Join(ids, ",")
}
