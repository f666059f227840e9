package wanderingservice

import (
	wanderingtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/wandering"
)

// Monster is one entry in the wandering threat catalogue.
type Monster struct {
	Title       string
	Description string
	Difficulty  wanderingtypes.EventDifficulty
}

// WanderingMonsters is the fixed threat catalogue the spawner draws from.
var WanderingMonsters = []Monster{
	// Test threat, only spawned on explicit request.
	{"Suspiciously Sturdy Training Dummy", "A practice target wobbles into the square, daring anyone to take a swing.", wanderingtypes.EventTest},

	// Minor threats.
	{"Mist-Touched Strays", "Feral animals warped by lingering arcane fog snap at anything that moves.", wanderingtypes.EventMinor},
	{"Candle-Watch Wisps", "Small floating lights hover near roads, luring travelers off the path.", wanderingtypes.EventMinor},
	{"Grave-Dust Crawlers", "Bone-white insects spill from disturbed burial sites, biting and burrowing.", wanderingtypes.EventMinor},
	{"Fogbound Pickpockets", "Shadowy figures dart through the mist, vanishing with coin and keys.", wanderingtypes.EventMinor},
	{"Murmurleaf Thicket", "Shrubs whisper and shift, entangling passersby who linger too long.", wanderingtypes.EventMinor},
	{"Cracked Lantern Spirits", "Flickering spirits cling to old lamps, flaring violently when disturbed.", wanderingtypes.EventMinor},
	{"Ashfall Beetle Swarm", "A chittering mass of ember-dusted beetles rolls across the ground.", wanderingtypes.EventMinor},
	{"Lost Pack Animals", "Abandoned beasts wander in a panic, kicking and charging through camps.", wanderingtypes.EventMinor},
	{"Mist-Hollow Bats", "Clouds of pale bats erupt from ruined structures at dusk.", wanderingtypes.EventMinor},
	{"Veil-Sick Travelers", "Confused wanderers lash out, convinced the party are figments of the mist.", wanderingtypes.EventMinor},
	{"Grasping Fogbanks", "Thick fog congeals into chilling tendrils that pull at boots and cloaks.", wanderingtypes.EventMinor},
	{"Echoing Footsteps", "Invisible presences pace nearby, causing panic and false alarms.", wanderingtypes.EventMinor},

	// Standard threats.
	{"Mistbound Marauders", "Bandits cloaked in enchanted fog ambush travelers along trade paths.", wanderingtypes.EventStandard},
	{"Gravecoil Serpent", "A massive serpent nests among tombstones, striking from below.", wanderingtypes.EventStandard},
	{"Veil-Warped Brute", "A lone humanoid twisted by magic rampages without reason or memory.", wanderingtypes.EventStandard},
	{"Hollow Watchtower Warden", "An abandoned guard tower stirs, animated by lingering duty and rage.", wanderingtypes.EventStandard},
	{"Mist-Harvest Coven", "Ritualists gather arcane fog in crystal vessels for unknown purposes.", wanderingtypes.EventStandard},
	{"Briarhide Charger", "A horned beast armored in thorned bark storms through the vale.", wanderingtypes.EventStandard},
	{"Echo-Walkers", "Phantom figures mimic the party's movements, attacking at opportune moments.", wanderingtypes.EventStandard},
	{"Gravemark Reavers", "Desecrators plunder burial grounds, guarded by crude undead constructs.", wanderingtypes.EventStandard},
	{"Fogshard Elemental", "Condensed mist crystallizes into a hostile elemental form.", wanderingtypes.EventStandard},
	{"Moon-Scarred Hunter", "A cursed tracker stalks prey under lunar influence, unable to stop.", wanderingtypes.EventStandard},

	// Major threats.
	{"Rootbound Colossus", "Ancient roots tear free from the earth, forming a towering guardian.", wanderingtypes.EventMajor},
	{"Mistbound Behemoth", "A massive silhouette moves within the fog, its footsteps shaking the vale.", wanderingtypes.EventMajor},
	{"Gravetide Herald", "A robed figure rings a rusted bell, raising the dead with each toll.", wanderingtypes.EventMajor},
	{"The Hollow Huntsman", "A headless rider emerges from the mist, tracking those marked by fate.", wanderingtypes.EventMajor},
	{"Veins of the Vale", "The land itself ruptures, spawning living stone and wrathful earth-spirits.", wanderingtypes.EventMajor},

	// Critical threats.
	{"Veilbreak Manifestation", "Reality thins as something pushes through from beyond the veil.", wanderingtypes.EventCritical},
	{"The Mist Sovereign", "A towering entity of fog and will claims dominion over the vale itself.", wanderingtypes.EventCritical},
	{"Cataclysm Bloom", "A massive arcane growth pulses violently, warping everything nearby.", wanderingtypes.EventCritical},
	{"Echo of a Slumbering Titan", "A fragment of a greater being awakens, reshaping the land with each movement.", wanderingtypes.EventCritical},
	{"The Veiled Catastrophe", "An approaching calamity made manifest, heralding devastation if unchecked.", wanderingtypes.EventCritical},
}

// monstersByDifficulty filters the catalogue.
func monstersByDifficulty(d wanderingtypes.EventDifficulty) []Monster {
	var out []Monster
	for _, m := range WanderingMonsters {
		if m.Difficulty == d {
			out = append(out, m)
		}
	}
	return out
}

// pickRandomMonster rolls a difficulty by spawn weight, then a uniform
// monster of that difficulty. The test difficulty never spawns on its own.
func pickRandomMonster(randInt func(n int) int) Monster {
	difficulties := []wanderingtypes.EventDifficulty{
		wanderingtypes.EventMinor,
		wanderingtypes.EventStandard,
		wanderingtypes.EventMajor,
		wanderingtypes.EventCritical,
	}
	totalWeight := 0
	for _, d := range difficulties {
		totalWeight += wanderingtypes.SpawnWeights[d]
	}

	roll := randInt(totalWeight)
	difficulty := difficulties[len(difficulties)-1]
	for _, d := range difficulties {
		w := wanderingtypes.SpawnWeights[d]
		if roll < w {
			difficulty = d
			break
		}
		roll -= w
	}

	candidates := monstersByDifficulty(difficulty)
	return candidates[randInt(len(candidates))]
}
