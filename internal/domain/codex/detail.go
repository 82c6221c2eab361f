package codex

import (
	"fmt"
	"math/rand"
)

// NPC is a generated inhabitant attached to a detailed point of interest.
type NPC struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	Alignment   string `json:"alignment"`
}

var npcFirstNames = []string{"Aelric", "Brianna", "Cedric", "Daria", "Eamon", "Fiona", "Garrick", "Hilda"}
var npcLastNames = []string{"Ironwood", "Stormborn", "Frostveil", "Darkleaf", "Brightforge", "Shadowmere"}
var npcAlignments = []string{"friendly", "neutral", "hostile", "unpredictable"}

var npcRoles = map[string][]string{
	"settlement": {"Mayor", "Blacksmith", "Innkeeper", "Healer", "Guard", "Merchant"},
	"ruin":       {"Ghost", "Scholar", "Adventurer", "Guardian", "Looter", "Historian"},
	"temple":     {"High Priest", "Acolyte", "Paladin", "Seer", "Monk", "Confessor"},
	"cave":       {"Explorer", "Miner", "Bandit", "Hermit", "Beast", "Treasure Hunter"},
	"fortress":   {"Captain", "Soldier", "Armsmaster", "Scout", "Prisoner", "Spymaster"},
	"mine":       {"Foreman", "Miner", "Assayer", "Engineer", "Laborer", "Prospector"},
}

var npcTraits = map[string][]string{
	"settlement": {"welcoming", "hardworking", "wise", "cunning", "generous", "suspicious"},
	"ruin":       {"haunted", "knowledgeable", "brave", "greedy", "cursed", "obsessed"},
	"temple":     {"devout", "mysterious", "peaceful", "fanatical", "enlightened", "ascetic"},
	"cave":       {"tough", "resourceful", "paranoid", "ruthless", "lonely", "determined"},
	"fortress":   {"disciplined", "vigilant", "loyal", "brutal", "strategic", "honorable"},
	"mine":       {"strong", "practical", "greedy", "skilled", "weary", "ambitious"},
}

var npcFeatures = []string{"piercing eyes", "a scarred face", "an air of authority", "a quiet demeanor"}

// GenerateNPC rolls a named inhabitant appropriate to the POI type.
func GenerateNPC(rng *rand.Rand, poiType string) NPC {
	roles, ok := npcRoles[poiType]
	if !ok {
		roles = []string{"Mysterious Figure"}
	}
	traits, ok := npcTraits[poiType]
	if !ok {
		traits = []string{"mysterious"}
	}
	return NPC{
		ID:          fmt.Sprintf("npc_%08x", rng.Uint32()),
		Name:        fmt.Sprintf("%s %s", pick(rng, npcFirstNames), pick(rng, npcLastNames)),
		Role:        pick(rng, roles),
		Description: fmt.Sprintf("A %s individual with %s.", pick(rng, traits), pick(rng, npcFeatures)),
		Alignment:   pick(rng, npcAlignments),
	}
}

var rumorFoundations = []string{"ancient ruins", "a buried treasure", "a sacred site", "a dragon's hoard"}
var rumorSubjects = []string{"a betrayed king", "a murdered priestess", "a fallen warrior", "a heartbroken lover"}
var rumorHiddenThings = []string{"a secret tunnel", "a magical artifact", "a cursed relic", "a portal to another world"}
var rumorGifts = []string{"visions", "healing", "curses", "blessings"}

// GenerateRumor produces one rumor line about a named POI.
func GenerateRumor(rng *rand.Rand, poiType, poiName string) string {
	switch poiType {
	case "settlement":
		return fmt.Sprintf("They say %s was built on %s.", poiName, pick(rng, rumorFoundations))
	case "ruin":
		return fmt.Sprintf("%s is haunted by the ghost of %s.", poiName, pick(rng, rumorSubjects))
	case "temple":
		return fmt.Sprintf("%s is said to grant %s to those who pass its trials.", poiName, pick(rng, rumorGifts))
	default:
		return fmt.Sprintf("Travelers whisper that %s hides %s.", poiName, pick(rng, rumorHiddenThings))
	}
}

var secretKinds = []string{
	"a sealed vault beneath the foundations",
	"a passage that opens only at moonrise",
	"a ledger naming those who vanished here",
	"a pact struck long ago and never honored",
	"a relic kept from the founding days",
}

// GenerateSecret produces one secret line for a detailed POI.
func GenerateSecret(rng *rand.Rand, poiType string) string {
	return fmt.Sprintf("Hidden within is %s, known only to a few.", pick(rng, secretKinds))
}
