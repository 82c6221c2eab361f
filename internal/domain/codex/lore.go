package codex

import (
	"fmt"
	"math/rand"
	"strings"
)

var loreTitles = map[string][]string{
	"creation_myth":    {"The First Dawn", "Song of the Shaping", "When the Sea Withdrew", "The Breaking of the Silence"},
	"historical_event": {"The Long Winter", "The Sundering War", "The Year of Ash", "The Great Crossing"},
	"legend":           {"The Sleeper Under the Hill", "The Lantern-Bearer", "The King Who Walked Away", "The Hollow Crown"},
}

var loreOpenings = []string{
	"Before the first maps were drawn",
	"In an age remembered only in song",
	"When the mountains were young",
	"Long before the coastal towns rose",
}

var loreClosings = []string{
	"and the old folk swear it is true.",
	"though no two tellings agree.",
	"and the land still bears the mark of it.",
	"but the rest of the tale is lost.",
}

// LoreTitle picks a title for the given lore type; unknown types fall back to
// the legend table.
func LoreTitle(rng *rand.Rand, loreType string) string {
	titles, ok := loreTitles[loreType]
	if !ok {
		titles = loreTitles["legend"]
	}
	return pick(rng, titles)
}

// LoreContent writes a short passage for the lore type, weaving in any
// requested themes.
func LoreContent(rng *rand.Rand, loreType string, themes []string) string {
	var sb strings.Builder
	sb.WriteString(pick(rng, loreOpenings))
	switch loreType {
	case "creation_myth":
		sb.WriteString(", the world was shaped from noise and silence, shore by shore")
	case "historical_event":
		sb.WriteString(", a reckoning came that redrew the borders of every realm")
	default:
		sb.WriteString(", a figure passed through these lands and left a story behind")
	}
	if len(themes) > 0 {
		sb.WriteString(fmt.Sprintf("; the old tellings dwell on %s", strings.Join(themes, " and ")))
	}
	sb.WriteString(", ")
	sb.WriteString(pick(rng, loreClosings))
	return sb.String()
}

// EventDate invents a timeline date for events recorded without one.
func EventDate(rng *rand.Rand) string {
	return fmt.Sprintf("Year %d", rng.Intn(7000)-5000)
}
