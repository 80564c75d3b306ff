// Package store is the embedded relational knowledge store: tournaments,
// matches, goals and team aliases, seeded once and read-only afterwards.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Tournament is one competition with its season and winner.
type Tournament struct {
	Name   string
	Season string
	Winner string
}

// Match is one fixture. HomeGoals/AwayGoals are NULL until the match has
// been played.
type Match struct {
	Date      string
	Kickoff   string
	Home      string
	Away      string
	Stadium   string
	City      string
	Sport     string
	HomeGoals sql.NullInt64
	AwayGoals sql.NullInt64
	IsToday   bool
}

// Goal credits one goal to a team's scorer at a minute of a match.
type Goal struct {
	MatchID int64
	Team    string
	Scorer  string
	Minute  int64
}

// Team holds a canonical lowercase name and up to two aliases used for
// free-text matching.
type Team struct {
	Name   string
	Alias1 sql.NullString
	Alias2 sql.NullString
}

// Store wraps the seeded in-memory database.
type Store struct {
	db *sql.DB
}

// Open creates an in-memory knowledge store and applies the seed data.
// The connection pool is pinned to one connection so every query sees the
// same in-memory database.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge store: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(seedSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed knowledge store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ResolveTeam returns the canonical name of the first team whose name or
// alias appears as a substring of the input, or false if none does.
func (s *Store) ResolveTeam(text string) (string, bool) {
	t := strings.ToLower(text)
	rows, err := s.db.Query(`SELECT name, alias1, alias2 FROM teams`)
	if err != nil {
		return "", false
	}
	defer rows.Close()
	for rows.Next() {
		var team Team
		if err := rows.Scan(&team.Name, &team.Alias1, &team.Alias2); err != nil {
			return "", false
		}
		if strings.Contains(t, team.Name) ||
			(team.Alias1.Valid && team.Alias1.String != "" && strings.Contains(t, team.Alias1.String)) ||
			(team.Alias2.Valid && team.Alias2.String != "" && strings.Contains(t, team.Alias2.String)) {
			return team.Name, true
		}
	}
	return "", false
}

// Tournaments returns up to limit tournaments in seed order.
func (s *Store) Tournaments(limit int) ([]Tournament, error) {
	rows, err := s.db.Query(`SELECT name, season, winner FROM tournaments LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("tournament query failed: %w", err)
	}
	defer rows.Close()
	var out []Tournament
	for rows.Next() {
		var t Tournament
		if err := rows.Scan(&t.Name, &t.Season, &t.Winner); err != nil {
			return nil, fmt.Errorf("tournament scan failed: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) scanMatches(query string, args ...any) ([]Match, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("match query failed: %w", err)
	}
	defer rows.Close()
	var out []Match
	for rows.Next() {
		var m Match
		var isToday int64
		if err := rows.Scan(&m.Date, &m.Kickoff, &m.Home, &m.Away, &m.Stadium, &m.City,
			&m.Sport, &m.HomeGoals, &m.AwayGoals, &isToday); err != nil {
			return nil, fmt.Errorf("match scan failed: %w", err)
		}
		m.IsToday = isToday != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

const matchColumns = `date, kickoff, home, away, stadium, city, sport, home_goals, away_goals, is_today`

// TodayFixtures returns all matches flagged as occurring today.
func (s *Store) TodayFixtures() ([]Match, error) {
	return s.scanMatches(`SELECT ` + matchColumns + ` FROM matches WHERE is_today = 1`)
}

// LatestResult returns the most recent completed match involving the team.
func (s *Store) LatestResult(team string) (Match, bool, error) {
	matches, err := s.scanMatches(`SELECT `+matchColumns+` FROM matches
		WHERE (lower(home) = ? OR lower(away) = ?) AND home_goals IS NOT NULL AND away_goals IS NOT NULL
		ORDER BY date DESC LIMIT 1`, team, team)
	if err != nil || len(matches) == 0 {
		return Match{}, false, err
	}
	return matches[0], true, nil
}

// LatestMatch returns the most recent match involving the team, played or
// not. An empty team returns the most recent match overall.
func (s *Store) LatestMatch(team string) (Match, bool, error) {
	var (
		matches []Match
		err     error
	)
	if team == "" {
		matches, err = s.scanMatches(`SELECT ` + matchColumns + ` FROM matches ORDER BY date DESC LIMIT 1`)
	} else {
		matches, err = s.scanMatches(`SELECT `+matchColumns+` FROM matches
			WHERE lower(home) = ? OR lower(away) = ?
			ORDER BY date DESC LIMIT 1`, team, team)
	}
	if err != nil || len(matches) == 0 {
		return Match{}, false, err
	}
	return matches[0], true, nil
}

// UpcomingMatch returns the earliest unplayed match involving the team.
func (s *Store) UpcomingMatch(team string) (Match, bool, error) {
	matches, err := s.scanMatches(`SELECT `+matchColumns+` FROM matches
		WHERE (lower(home) = ? OR lower(away) = ?) AND home_goals IS NULL AND away_goals IS NULL
		ORDER BY date ASC LIMIT 1`, team, team)
	if err != nil || len(matches) == 0 {
		return Match{}, false, err
	}
	return matches[0], true, nil
}

// GoalScorers returns the team's goals across fixtures, most recent match
// first, minute ascending within a match. Goals referencing matches
// outside the fixtures table are excluded by the join.
func (s *Store) GoalScorers(team string) ([]Goal, error) {
	rows, err := s.db.Query(`SELECT g.match_id, g.team, g.scorer, g.minute
		FROM goals g
		JOIN matches m ON m.id = g.match_id
		WHERE lower(g.team) = ?
		ORDER BY m.date DESC, g.minute`, team)
	if err != nil {
		return nil, fmt.Errorf("goal query failed: %w", err)
	}
	defer rows.Close()
	var out []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.MatchID, &g.Team, &g.Scorer, &g.Minute); err != nil {
			return nil, fmt.Errorf("goal scan failed: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// TopScorer returns the scorer with the most goals credited to the team
// across the whole ledger. Ties break to the first row in descending
// count order.
func (s *Store) TopScorer(team string) (scorer string, goals int64, ok bool, err error) {
	row := s.db.QueryRow(`SELECT scorer, COUNT(*) AS goals FROM goals
		WHERE lower(team) = ?
		GROUP BY scorer ORDER BY goals DESC LIMIT 1`, team)
	switch err = row.Scan(&scorer, &goals); err {
	case nil:
		return scorer, goals, true, nil
	case sql.ErrNoRows:
		return "", 0, false, nil
	default:
		return "", 0, false, fmt.Errorf("top scorer query failed: %w", err)
	}
}
