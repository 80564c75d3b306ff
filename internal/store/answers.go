package store

import (
	"fmt"
	"strings"

	"github.com/sportiq/sportiq/internal/intent"
)

// Reply wordings. Clarifications and not-found lines are normal branches,
// never errors.
const (
	askWhichTeam      = "Which team do you mean?"
	askForWhichTeam   = "For which team?"
	askWhichTeamShort = "Which team?"
	askWhichVenue     = "Which team or match do you mean? Try: where was Berlin United's last match?"

	helpText = "I can answer: today's fixtures, latest score, goal scorers, stadium and city, " +
		"sport type, upcoming, last match, top scorer, and tournament info."
	unmappedText = "Sorry, I could not map that to one of my 10 questions."
)

const tournamentLimit = 5

// Answer resolves a team from the raw text and dispatches the intent to
// its query. Intents that need a team short-circuit to a clarification
// before touching the database. Errors are database faults only.
func (s *Store) Answer(intentName, text string) (string, error) {
	team, hasTeam := s.ResolveTeam(text)

	switch intentName {
	case intent.TodayFixtures:
		matches, err := s.TodayFixtures()
		if err != nil {
			return "", err
		}
		if len(matches) == 0 {
			return "No fixtures today in the mock data.", nil
		}
		lines := make([]string, len(matches))
		for i, m := range matches {
			lines[i] = fmt.Sprintf("%s vs %s at %s, %s", m.Home, m.Away, m.Stadium, m.City)
		}
		return strings.Join(lines, "\n"), nil

	case intent.LatestScore:
		if !hasTeam {
			return askWhichTeam, nil
		}
		m, ok, err := s.LatestResult(team)
		if err != nil {
			return "", err
		}
		if !ok {
			return "No recent match found.", nil
		}
		return fmt.Sprintf("%s %d - %d %s on %s", m.Home, m.HomeGoals.Int64, m.AwayGoals.Int64, m.Away, m.Date), nil

	case intent.GoalScorers:
		if !hasTeam {
			return askForWhichTeam, nil
		}
		goals, err := s.GoalScorers(team)
		if err != nil {
			return "", err
		}
		if len(goals) == 0 {
			return "No goal data found.", nil
		}
		lines := make([]string, len(goals))
		for i, g := range goals {
			lines[i] = fmt.Sprintf("%s (%d')", g.Scorer, g.Minute)
		}
		return strings.Join(lines, "\n"), nil

	case intent.StadiumLocation:
		if !hasTeam {
			return askWhichVenue, nil
		}
		m, ok, err := s.LatestMatch(team)
		if err != nil {
			return "", err
		}
		if !ok {
			return "No stadium info found.", nil
		}
		return fmt.Sprintf("%s, %s for %s vs %s on %s", m.Stadium, m.City, m.Home, m.Away, m.Date), nil

	case intent.SportTypeForMatch:
		m, ok, err := s.LatestMatch(team)
		if err != nil {
			return "", err
		}
		if !ok {
			return "No sport type found.", nil
		}
		return fmt.Sprintf("%s vs %s is %s (%s)", m.Home, m.Away, m.Sport, m.Date), nil

	case intent.UpcomingForTeam:
		if !hasTeam {
			return askWhichTeamShort, nil
		}
		m, ok, err := s.UpcomingMatch(team)
		if err != nil {
			return "", err
		}
		if !ok {
			return "No upcoming match found.", nil
		}
		return fmt.Sprintf("Next: %s vs %s on %s %s at %s, %s", m.Home, m.Away, m.Date, m.Kickoff, m.Stadium, m.City), nil

	case intent.LastMatchForTeam:
		if !hasTeam {
			return askWhichTeamShort, nil
		}
		m, ok, err := s.LatestResult(team)
		if err != nil {
			return "", err
		}
		if !ok {
			return "No last match found.", nil
		}
		return fmt.Sprintf("Last: %s %d-%d %s at %s on %s", m.Home, m.HomeGoals.Int64, m.AwayGoals.Int64, m.Away, m.Stadium, m.Date), nil

	case intent.TopScorerTeam:
		if !hasTeam {
			return askWhichTeamShort, nil
		}
		scorer, goals, ok, err := s.TopScorer(team)
		if err != nil {
			return "", err
		}
		if !ok {
			return "No scorers found.", nil
		}
		return fmt.Sprintf("Top scorer: %s with %d", scorer, goals), nil

	case intent.TournamentInfo:
		tournaments, err := s.Tournaments(tournamentLimit)
		if err != nil {
			return "", err
		}
		if len(tournaments) == 0 {
			return "No tournament data found.", nil
		}
		lines := make([]string, len(tournaments))
		for i, t := range tournaments {
			lines[i] = fmt.Sprintf("%s %s", t.Name, t.Season)
		}
		return strings.Join(lines, "\n"), nil

	case intent.Help:
		return helpText, nil

	default:
		return unmappedText, nil
	}
}
