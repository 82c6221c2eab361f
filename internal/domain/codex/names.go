// Package codex generates the flavor text layered on top of generated
// terrain: POI names and descriptions, NPCs, rumors, secrets and world lore.
// Every generator draws from an explicitly passed *rand.Rand so output is
// reproducible for a fixed seed.
package codex

import (
	"fmt"
	"math/rand"
)

var poiNamePrefixes = map[string][]string{
	"settlement": {"Vale", "Haven", "Keep", "Watch", "Rest", "Ford"},
	"ruin":       {"Elden", "Forgotten", "Ancient", "Lost", "Crumbled", "Fallen"},
	"temple":     {"Sanctum", "Shrine", "Altar", "Monastery", "Abbey", "Cathedral"},
	"cave":       {"Gloom", "Echo", "Whisper", "Dark", "Deep", "Hollow"},
	"fortress":   {"Iron", "Stone", "Black", "White", "Eagle", "Wolf"},
	"mine":       {"Deeprock", "Ironvein", "Gold", "Silver", "Crystal", "Ore"},
}

var poiNameSuffixes = map[string][]string{
	"settlement": {"wood", "brook", "field", "hill", "dale", "mere"},
	"ruin":       {"tower", "hall", "citadel", "bastion", "spire", "keep"},
	"temple":     {" of Light", " of Shadows", " of the Moon", " of the Sun", " of Stars", " of Dawn"},
	"cave":       {"delve", "pit", "maw", "abyss", "chasm", "depths"},
	"fortress":   {"hold", "keep", "fort", "castle", "stronghold", "citadel"},
	"mine":       {"pit", "shaft", "delve", "tunnel", "gallery", "works"},
}

// POIName builds a name for a point of interest from its type's prefix and
// suffix tables. Unknown types get a generic fallback.
func POIName(rng *rand.Rand, poiType string) string {
	prefixes, ok := poiNamePrefixes[poiType]
	if !ok {
		prefixes = []string{"Mystic"}
	}
	suffixes, ok := poiNameSuffixes[poiType]
	if !ok {
		suffixes = []string{" Place"}
	}
	return pick(rng, prefixes) + pick(rng, suffixes)
}

var poiDescriptionTraits = map[string][]string{
	"settlement": {"friendly inhabitants", "vibrant market", "ancient traditions", "strategic location"},
	"ruin":       {"ancient glory", "forgotten magic", "lost knowledge", "past tragedies"},
	"temple":     {"pilgrims gather", "mysteries unfold", "ancient rituals persist", "divine presence lingers"},
	"cave":       {"untold treasures", "dangerous creatures", "ancient secrets", "forgotten pathways"},
	"fortress":   {"countless battles", "ancient sieges", "generations of defenders", "legendary conflicts"},
	"mine":       {"precious ores", "rare crystals", "ancient artifacts", "mystical minerals"},
}

// POIDescription writes one flavor sentence for a named point of interest.
func POIDescription(rng *rand.Rand, poiType, name string) string {
	trait, ok := poiDescriptionTraits[poiType]
	if !ok {
		return fmt.Sprintf("%s is a place of mystery and wonder.", name)
	}
	switch poiType {
	case "settlement":
		return fmt.Sprintf("%s is a bustling settlement known for its %s.", name, pick(rng, trait))
	case "ruin":
		return fmt.Sprintf("The crumbling remains of %s whisper tales of %s.", name, pick(rng, trait))
	case "temple":
		return fmt.Sprintf("%s stands as a sacred site where %s.", name, pick(rng, trait))
	case "cave":
		return fmt.Sprintf("Dark and foreboding, %s hides %s within its depths.", name, pick(rng, trait))
	case "fortress":
		return fmt.Sprintf("%s looms as an impregnable bastion, its walls bearing the scars of %s.", name, pick(rng, trait))
	default:
		return fmt.Sprintf("Deep within %s, miners toil to extract %s from the earth.", name, pick(rng, trait))
	}
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}
