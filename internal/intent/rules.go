// Package intent maps free text to one of the fixed supported intents:
// an ordered rule router consulted before the classifier, canned
// small-talk replies, and the training corpus the classifier learns from.
package intent

import (
	"regexp"
	"strings"
)

// The fixed intent set. Every router rule and every knowledge-store query
// dispatches on one of these.
const (
	TodayFixtures     = "today_fixtures"
	LatestScore       = "latest_score"
	GoalScorers       = "goal_scorers"
	StadiumLocation   = "stadium_location"
	SportTypeForMatch = "sport_type_for_match"
	UpcomingForTeam   = "upcoming_for_team"
	LastMatchForTeam  = "last_match_for_team"
	TopScorerTeam     = "top_scorer_team"
	TournamentInfo    = "tournament_info"
	Help              = "help"
)

type rule struct {
	pattern *regexp.Regexp
	intent  string
}

// rules is evaluated in order and the first match wins. The order is part
// of the contract: today-fixtures phrasing must beat the generic
// score/result rule, and top-scorer phrasing must beat the generic
// who-scored rule.
var rules = []rule{
	{regexp.MustCompile(`who.*playing.*today|today.*fixtures|today.*matches`), TodayFixtures},
	{regexp.MustCompile(`\b(score|result)\b`), LatestScore},
	{regexp.MustCompile(`top scorer|leading scorer|highest.*scorer`), TopScorerTeam},
	{regexp.MustCompile(`who.*scored|goal.*scorer|scorers?`), GoalScorers},
	{regexp.MustCompile(`where.*match|which.*stadium|\bstadium\b|\bcity\b`), StadiumLocation},
	{regexp.MustCompile(`what.*sport|type of sport|sport type`), SportTypeForMatch},
	{regexp.MustCompile(`next match|upcoming|fixture`), UpcomingForTeam},
	{regexp.MustCompile(`last match|previous game`), LastMatchForTeam},
	{regexp.MustCompile(`tournament`), TournamentInfo},
	{regexp.MustCompile(`help|what can you do`), Help},
	{regexp.MustCompile(`who.*won|winner`), TournamentInfo},
}

// Route returns the first matching rule's intent for the lower-cased
// input, or false when no rule matches and the classifier should decide.
func Route(text string) (string, bool) {
	t := strings.ToLower(text)
	for _, r := range rules {
		if r.pattern.MatchString(t) {
			return r.intent, true
		}
	}
	return "", false
}
