// internal/game/types.go
//
// Core type definitions for the conjugation battle engine.
// Defines:
//   - Capability: bit-flag set of skill effects.
//   - SkillCard, VerbCard, Player, Boss: session state records.
//   - Outcome: the structured result of resolving one play.

package game

import "github.com/BNDS-Robin23/spanish-rogue/internal/grammar"

// Capability is a bit-flag set of independent skill effects. New effects
// add a flag; existing ones never change meaning.
type Capability uint8

const (
	// CapTripleDamageDirectional triples damage when the played rule card's
	// display pattern contains an arrow marker. Stacks multiplicatively.
	CapTripleDamageDirectional Capability = 1 << iota
	// CapRetainOnPlay gives an independent 50% chance to keep the played
	// cards in hand.
	CapRetainOnPlay
)

// Has reports whether every flag in want is present in c.
func (c Capability) Has(want Capability) bool { return c&want == want }

// SkillCard is a permanent player-owned modifier.
type SkillCard struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cost        int        `json:"cost"`
	Caps        Capability `json:"-"`
}

// VerbCard is a dealt infinitive. Immutable once dealt.
type VerbCard struct {
	Infinitive string `json:"infinitive"`
}

// Player holds the player's combat and deck state.
type Player struct {
	HP            int // may go negative internally; clamped for display
	Coins         int
	Skills        []SkillCard // insertion order preserved for display
	HandVerbs     []VerbCard
	HandRules     []grammar.RuleCard
	BaseHandVerbs int // verb-hand capacity; only grows via upgrades
	BaseHandRules int // rule-hand capacity; only grows via upgrades
}

// Boss is the current opponent. Replaced wholesale each major round.
type Boss struct {
	Name       string
	HP         int
	BaseDamage int // displayed attack stat, scaled per major round
}

// Outcome is the structured result of resolving a single play. It is the
// only way failures surface: an out-of-range selection sets OK=false and
// leaves the session untouched; every other well-formed play yields a
// scored outcome.
type Outcome struct {
	OK           bool   `json:"ok"`
	Message      string `json:"message"`
	Damage       int    `json:"damage"`
	CoinsGained  int    `json:"coinsGained"`
	BossDefeated bool   `json:"bossDefeated"`
	PlayerDamage int    `json:"playerDamage"`
	PlayerDead   bool   `json:"playerDead"`
	PlayerHP     int    `json:"playerHp"` // clamped at 0 for display
	Produced     string `json:"produced"`
	Expected     string `json:"expected"`
}
