// internal/httpserver/routes_game.go
//
// HTTP routes for battle sessions.
// Exposes endpoints under /game:
//   - POST /game/new        → start a session (optional auth; run row persisted)
//   - GET  /game/{gameID}   → display snapshot of a session
//   - POST /game/play       → resolve a (verb, rule) play for the question
//   - POST /game/shop/skill → buy the triple-damage skill for 10 coins
//   - POST /game/upgrade    → pick an upgrade and enter the next major round
//
// Sessions live in memory only; the runs table is history/stats bookkeeping
// and every gameplay write to it is best effort (logged, never fatal).

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/BNDS-Robin23/spanish-rogue/internal/game"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Get("/{gameID}", s.handleGameView)
		r.Post("/play", s.handlePlay)
		r.Post("/shop/skill", s.handleShopSkill)
		r.Post("/upgrade", s.handleUpgrade)
	})
}

// newGameRes is the payload for POST /game/new.
type newGameRes struct {
	GameID string    `json:"gameId"`
	View   game.View `json:"view"`
}

// handleNewGame creates a new in-memory session and persists a DB "owner"
// row (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	sess := game.NewSession(s.lex, nil)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		_, err := s.db.Exec(`INSERT INTO runs (id, user_id, started_at, status, major_round, subround)
		                     VALUES (?,?,?,?,1,1)`, sess.ID, me.ID, now, "playing")
		if err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert user run row")
		}
	} else {
		anon := s.ensureAnonID(w, r)
		_, err := s.db.Exec(`INSERT INTO runs (id, anonymous_id, started_at, status, major_round, subround)
		                     VALUES (?,?,?,?,1,1)`, sess.ID, anon, now, "playing")
		if err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID).Msg("insert anon run row")
		}
	}

	_ = json.NewEncoder(w).Encode(newGameRes{GameID: sess.ID, View: sess.View()})
}

// handleGameView returns the display snapshot for a session.
func (s *Server) handleGameView(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.View())
}

// playReq/Res payloads for POST /game/play.
type playReq struct {
	GameID    string `json:"gameId"`
	VerbIndex int    `json:"verbIndex"`
	RuleIndex int    `json:"ruleIndex"`
}
type playRes struct {
	Outcome game.Outcome `json:"outcome"`
	View    game.View    `json:"view"`
}

// handlePlay resolves a play against an in-memory session, persists run
// progress, and (if the run ended) updates user stats in a best-effort
// transaction.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if sess.Dead() {
		http.Error(w, `{"error":"game_over"}`, http.StatusBadRequest)
		return
	}

	out := sess.ResolvePlay(req.VerbIndex, req.RuleIndex)
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	if out.OK {
		s.persistPlay(r, sess, out)
	}

	_ = json.NewEncoder(w).Encode(playRes{Outcome: out, View: sess.View()})
}

// persistPlay records run progress and, on terminal outcomes, user stats.
// Non-fatal if it fails.
func (s *Server) persistPlay(r *http.Request, sess *game.Session, out game.Outcome) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)

	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin run tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE runs SET major_round=?, subround=?, coins=? WHERE id=?`,
		sess.MajorRound, sess.Subround, sess.Player.Coins, sess.ID); err != nil {
		log.Warn().Err(err).Msg("update run progress")
	}

	if out.BossDefeated {
		if _, err := tx.Exec(`UPDATE runs SET bosses_defeated = bosses_defeated + 1 WHERE id=?`, sess.ID); err != nil {
			log.Warn().Err(err).Msg("update run boss count")
		}
		if me != nil {
			if _, err := tx.Exec(`UPDATE users SET bosses_defeated = bosses_defeated + 1 WHERE id=?`, me.ID); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("credit boss defeat")
			}
		}
	}

	if out.PlayerDead {
		if _, err := tx.Exec(`UPDATE runs SET status=?, finished_at=? WHERE id=?`,
			"dead", time.Now().UTC().Format(time.RFC3339), sess.ID); err != nil {
			log.Warn().Err(err).Msg("finish run")
		}
		if me != nil {
			if err := s.bumpStats(tx, me.ID, sess.MajorRound); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
	}
	_ = tx.Commit()
}

// shopReq/Res payloads for POST /game/shop/skill.
type shopReq struct {
	GameID string `json:"gameId"`
}
type shopRes struct {
	OK    bool `json:"ok"`
	Coins int  `json:"coins"`
}

// handleShopSkill buys the directional triple-damage skill when the player
// can afford it.
func (s *Server) handleShopSkill(w http.ResponseWriter, r *http.Request) {
	var req shopReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	ok := sess.BuyDirectionSkill()
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(shopRes{OK: ok, Coins: sess.Player.Coins})
}

// upgradeReq is the payload for POST /game/upgrade.
type upgradeReq struct {
	GameID string `json:"gameId"`
	Option int    `json:"option"` // 1: verb hand +1, 2: rule hand +1, 3: retention skill
}

// handleUpgrade applies the chosen upgrade and advances to the next major
// round.
func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	var req upgradeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if sess.Dead() {
		http.Error(w, `{"error":"game_over"}`, http.StatusBadRequest)
		return
	}

	sess.ChooseUpgrade(req.Option)
	if err := s.store.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	if _, err := s.db.Exec(`UPDATE runs SET major_round=?, subround=? WHERE id=?`,
		sess.MajorRound, sess.Subround, sess.ID); err != nil {
		log.Warn().Err(err).Msg("update run round")
	}

	_ = json.NewEncoder(w).Encode(sess.View())
}

// leaderboardRow is one entry returned by GET /leaderboard.
type leaderboardRow struct {
	Username       string `json:"username"`
	MajorRound     int    `json:"majorRound"`
	BossesDefeated int    `json:"bossesDefeated"`
	Coins          int    `json:"coins"`
}

// handleLeaderboard returns the top runs, furthest round first.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Query(`
        SELECT COALESCE(u.username, 'anonymous'), r.major_round, r.bosses_defeated, r.coins
        FROM runs r
        LEFT JOIN users u ON u.id = r.user_id
        ORDER BY r.major_round DESC, r.bosses_defeated DESC, r.coins DESC, r.started_at ASC
        LIMIT 20`)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	out := []leaderboardRow{}
	for rows.Next() {
		var lr leaderboardRow
		if err := rows.Scan(&lr.Username, &lr.MajorRound, &lr.BossesDefeated, &lr.Coins); err == nil {
			out = append(out, lr)
		}
	}
	_ = json.NewEncoder(w).Encode(out)
}

// bumpStats increments runs played and raises the best-round high-water
// mark (within tx).
func (s *Server) bumpStats(tx *sql.Tx, userID string, finalRound int) error {
	var runs, best int
	row := tx.QueryRow(`SELECT runs_played, best_round FROM users WHERE id=?`, userID)
	if err := row.Scan(&runs, &best); err != nil {
		return err
	}
	runs++
	if finalRound > best {
		best = finalRound
	}
	_, err := tx.Exec(`UPDATE users SET runs_played=?, best_round=? WHERE id=?`, runs, best, userID)
	return err
}
