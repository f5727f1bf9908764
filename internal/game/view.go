// internal/game/view.go
//
// Display-safe projection of a session for the presentation layer.
// Reads state only; never mutates it.

package game

import "github.com/BNDS-Robin23/spanish-rogue/internal/grammar"

// View is a display-safe snapshot of a session.
type View struct {
	GameID     string     `json:"gameId"`
	MajorRound int        `json:"majorRound"`
	Subround   int        `json:"subround"`
	Boss       BossView   `json:"boss"`
	Player     PlayerView `json:"player"`
	Question   string     `json:"question"`
}

// BossView is the boss as shown to the player.
type BossView struct {
	Name   string `json:"name"`
	HP     int    `json:"hp"`
	Attack int    `json:"attack"`
}

// PlayerView is the player as shown to the player. HP is clamped at zero.
type PlayerView struct {
	HP     int      `json:"hp"`
	Coins  int      `json:"coins"`
	Skills []string `json:"skills"`
	Verbs  []string `json:"verbs"`
	Rules  []string `json:"rules"`
	Dead   bool     `json:"dead"`
}

// View builds the display snapshot of the session.
func (s *Session) View() View {
	p := s.Player
	skills := make([]string, len(p.Skills))
	for i, sk := range p.Skills {
		skills[i] = sk.Name
	}
	verbs := make([]string, len(p.HandVerbs))
	for i, v := range p.HandVerbs {
		verbs[i] = v.Infinitive
	}
	rules := make([]string, len(p.HandRules))
	for i, r := range p.HandRules {
		rules[i] = displayRule(r)
	}
	return View{
		GameID:     s.ID,
		MajorRound: s.MajorRound,
		Subround:   s.Subround,
		Boss:       BossView{Name: s.Boss.Name, HP: s.Boss.HP, Attack: s.Boss.BaseDamage},
		Player: PlayerView{
			HP:     clampHP(p.HP),
			Coins:  p.Coins,
			Skills: skills,
			Verbs:  verbs,
			Rules:  rules,
			Dead:   s.Dead(),
		},
		Question: s.Question.Label(),
	}
}

// displayRule renders a rule card for the hand listing: the target person,
// the transformation pattern, and the verb restriction when bound.
func displayRule(r grammar.RuleCard) string {
	out := r.Person.Label() + ": " + r.Pattern()
	if r.Irregular() {
		out += " (only " + r.Verb + ")"
	}
	return out
}
