// internal/game/engine.go
//
// Round engine for a single battle session.
// Responsibilities:
//   - Create new sessions with starting player/boss values and dealt hands.
//   - Deal hands: verbs cycled from a shuffled pool, rules drawn from the
//     generated universe with relevant irregular rules preferred.
//   - Resolve a play: validate indexes, apply the rule, compare against the
//     expected form, score damage/coins, run skill effects, detect boss and
//     player defeat.
//   - Drive the shop purchase and the major-round upgrade transitions.
//
// Notes:
//   - The engine owns the session exclusively; one in-flight operation at a
//     time, no persistence, no suspension points.
//   - The lexicon is an injected read-only collaborator; a nil lexicon
//     degrades to the built-in verb pool and generic rules only.
//   - randomID() is a compact hex identifier for correlating server state.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/BNDS-Robin23/spanish-rogue/internal/grammar"
)

const (
	startingHP         = 20
	startingHandSize   = 3
	bossBaseHP         = 20
	bossHPPerRound     = 10
	bossBaseDamage     = 5
	bossDamagePerRound = 2
	skillPrice         = 10
)

// fallbackVerbPool keeps the game playable when no lexicon is available.
var fallbackVerbPool = []string{
	"hablar", "comer", "vivir", "estudiar", "leer", "escribir",
	"amar", "beber", "abrir", "correr", "saltar", "cantar",
}

// Session is the full mutable state of one game, created once per session
// and mutated in place until the player is defeated.
type Session struct {
	ID         string
	Player     *Player
	Boss       *Boss
	MajorRound int
	Subround   int
	Question   grammar.Person // the person the player must conjugate toward
	VerbPool   []string

	lex grammar.Lexicon // lookups only, never mutated; may be nil
	rng RNG
}

// NewSession constructs a session with freshly dealt hands. A nil lexicon
// (or one with no verbs) switches to the fallback verb pool and generic
// rules only. A nil rng selects the default unseeded source.
func NewSession(lex grammar.Lexicon, rng RNG) *Session {
	if rng == nil {
		rng = newRNG()
	}
	pool := fallbackVerbPool
	if lex != nil {
		if infs := lex.Infinitives(); len(infs) > 0 {
			pool = infs
		} else {
			lex = nil
		}
	}
	s := &Session{
		ID: randomID(),
		Player: &Player{
			HP:            startingHP,
			BaseHandVerbs: startingHandSize,
			BaseHandRules: startingHandSize,
		},
		Boss:       newBoss(1),
		MajorRound: 1,
		Subround:   1,
		VerbPool:   append([]string(nil), pool...),
		lex:        lex,
		rng:        rng,
	}
	s.RefreshHands()
	return s
}

// newBoss builds the boss for a major round, scaled by the round number.
func newBoss(round int) *Boss {
	return &Boss{
		Name:       fmt.Sprintf("Boss R%d", round),
		HP:         bossBaseHP + bossHPPerRound*(round-1),
		BaseDamage: bossBaseDamage + bossDamagePerRound*(round-1),
	}
}

// Dead reports whether the session has reached its terminal state.
func (s *Session) Dead() bool { return s.Player.HP <= 0 }

// RefreshHands replaces both hands and picks a new question. Verb cards
// are cycled from a shuffled copy of the pool, so cards repeat when the
// capacity exceeds the pool. Rule cards prefer irregular rules bound to a
// currently-held verb, falling back to generic-only when the preferred
// pool is too small.
func (s *Session) RefreshHands() {
	p := s.Player

	pool := append([]string(nil), s.VerbPool...)
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	hand := make([]VerbCard, p.BaseHandVerbs)
	for i := range hand {
		hand[i] = VerbCard{Infinitive: pool[i%len(pool)]}
	}
	p.HandVerbs = hand

	held := make(map[string]bool, len(hand))
	for _, v := range hand {
		held[v.Infinitive] = true
	}

	all := grammar.PresentIndicativeRules(s.lex)
	s.rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })

	var generic, relevant []grammar.RuleCard
	for _, r := range all {
		switch {
		case !r.Irregular():
			generic = append(generic, r)
		case held[r.Verb]:
			relevant = append(relevant, r)
		}
	}

	rulePool := append(append([]grammar.RuleCard(nil), relevant...), generic...)
	if len(rulePool) < p.BaseHandRules {
		rulePool = generic
	}
	s.rng.Shuffle(len(rulePool), func(i, j int) { rulePool[i], rulePool[j] = rulePool[j], rulePool[i] })

	rules := make([]grammar.RuleCard, p.BaseHandRules)
	for i := range rules {
		rules[i] = rulePool[i%len(rulePool)]
	}
	p.HandRules = rules

	s.Question = grammar.Person(s.rng.Intn(grammar.NumPersons))
}

// bossAttackDamage computes the counterattack for a failed play:
// a base that grows every other major round, jittered by -1/0/+1,
// never below 1.
func (s *Session) bossAttackDamage() int {
	base := 3 + (s.MajorRound-1)/2
	dmg := base + s.rng.Intn(3) - 1
	if dmg < 1 {
		return 1
	}
	return dmg
}

// ResolvePlay resolves the play of (verb, rule) hand indexes against the
// current question. Out-of-range indexes yield OK=false with the session
// unchanged. Otherwise the play always produces a scored outcome: success
// damages the boss and awards coins; failure triggers the boss
// counterattack. Unless the boss fell or the player died, the subround
// advances and hands are refreshed before returning.
func (s *Session) ResolvePlay(verbIndex, ruleIndex int) Outcome {
	p := s.Player
	out := Outcome{OK: true, PlayerHP: p.HP}

	if verbIndex < 0 || verbIndex >= len(p.HandVerbs) ||
		ruleIndex < 0 || ruleIndex >= len(p.HandRules) {
		out.OK = false
		out.Message = "invalid selection"
		return out
	}

	verb := p.HandVerbs[verbIndex]
	rule := p.HandRules[ruleIndex]

	boundMismatch := rule.Verb != "" && rule.Verb != verb.Infinitive

	produced, applied := grammar.Apply(verb.Infinitive, rule)
	expected := grammar.ExpectedForm(verb.Infinitive, s.Question, s.lex)
	out.Produced = produced
	out.Expected = expected

	matches := expected != "" && grammar.FormsEqual(produced, expected)

	var success bool
	if expected != "" {
		success = matches
	} else {
		// No expectation computable: fall back to the rule's own person.
		success = applied && rule.Person == s.Question
	}

	var damage int
	var msg string
	if success {
		damage = 4 + s.rng.Intn(4)
		msg = verb.Infinitive + " -> " + produced
	} else {
		var reason string
		switch {
		case boundMismatch:
			reason = "that rule card only applies to " + rule.Verb
		case rule.Person != s.Question && !matches:
			reason = "the rule card does not match the question"
		default:
			reason = "incorrect conjugation"
		}
		msg = fmt.Sprintf("%s; correct answer: %s -> %s", reason, verb.Infinitive, expected)
	}

	for _, sk := range p.Skills {
		if sk.Caps.Has(CapTripleDamageDirectional) && strings.Contains(rule.Pattern(), "->") {
			damage *= 3
		}
	}

	s.Boss.HP -= damage
	out.Damage = damage

	if damage > 0 {
		gain := 1 + s.rng.Intn(3)
		p.Coins += gain
		out.CoinsGained = gain
		out.Message = msg
	} else {
		pdmg := s.bossAttackDamage()
		p.HP -= pdmg
		out.PlayerDamage = pdmg
		out.PlayerHP = clampHP(p.HP)
		out.Message = msg
		if p.HP <= 0 {
			out.PlayerDead = true
		}
	}

	retain := false
	for _, sk := range p.Skills {
		if sk.Caps.Has(CapRetainOnPlay) && s.rng.Float64() < 0.5 {
			retain = true
			break
		}
	}
	if !retain {
		p.HandVerbs = append(p.HandVerbs[:verbIndex], p.HandVerbs[verbIndex+1:]...)
		p.HandRules = append(p.HandRules[:ruleIndex], p.HandRules[ruleIndex+1:]...)
	}

	if s.Boss.HP <= 0 {
		bonus := 8 + s.rng.Intn(5)
		p.Coins += bonus
		out.BossDefeated = true
		out.Message += fmt.Sprintf("; boss defeated! +%d coins", bonus)
		// The major-round-clear transition owns the next refresh.
		return out
	}

	if out.PlayerDead {
		return out
	}

	s.Subround++
	s.RefreshHands()
	return out
}

// BuyDirectionSkill purchases the triple-damage skill for 10 coins.
// Buying it again stacks multiplicatively.
func (s *Session) BuyDirectionSkill() bool {
	if s.Player.Coins < skillPrice {
		return false
	}
	s.Player.Coins -= skillPrice
	s.Player.Skills = append(s.Player.Skills, SkillCard{
		Name:        "Directional Strike",
		Description: "rule cards containing -> deal x3 damage",
		Cost:        skillPrice,
		Caps:        CapTripleDamageDirectional,
	})
	return true
}

// ChooseUpgrade advances to the next major round: the subround resets, the
// boss is replaced with a scaled one, and the chosen upgrade is applied
// (1: verb-hand capacity, 2: rule-hand capacity, 3: retention skill). An
// out-of-range option is replaced with a uniformly random one. Hands are
// always refreshed afterwards.
func (s *Session) ChooseUpgrade(option int) {
	s.MajorRound++
	s.Subround = 1
	s.Boss = newBoss(s.MajorRound)

	if option < 1 || option > 3 {
		option = 1 + s.rng.Intn(3)
	}
	switch option {
	case 1:
		s.Player.BaseHandVerbs++
	case 2:
		s.Player.BaseHandRules++
	case 3:
		s.Player.Skills = append(s.Player.Skills, SkillCard{
			Name:        "Card Keeper",
			Description: "50% chance to keep played cards",
			Cost:        0,
			Caps:        CapRetainOnPlay,
		})
	}

	s.RefreshHands()
}

// clampHP floors a hit-point value at zero for display.
func clampHP(hp int) int {
	if hp < 0 {
		return 0
	}
	return hp
}

// randomID returns a compact 16-hex-char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
