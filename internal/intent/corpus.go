package intent

import (
	"fmt"
	"os"

	"github.com/sportiq/sportiq/internal/nlp"
	"gopkg.in/yaml.v3"
)

// Flashcards is the suggestion pool surfaced by the chat UI.
var Flashcards = []string{
	"who is playing today",
	"score berlin united",
	"result for munich city",
	"who scored for berlin united",
	"who scored for munich city",
	"where was the match",
	"which stadium was it played",
	"what sport is this match",
	"next match berlin united",
	"last match hamburg fc",
	"top scorer for munich city",
	"tournament info",
	"help",
}

// DefaultCorpus is the compiled-in training corpus. A corpus file loaded
// via LoadCorpus replaces it wholesale.
var DefaultCorpus = []nlp.Sample{
	{Text: "who is playing today", Intent: TodayFixtures},
	{Text: "any matches today", Intent: TodayFixtures},
	{Text: "what games are on today", Intent: TodayFixtures},
	{Text: "show me todays fixtures", Intent: TodayFixtures},
	{Text: "is there a game today", Intent: TodayFixtures},
	{Text: "which teams play today", Intent: TodayFixtures},
	{Text: "todays matches please", Intent: TodayFixtures},
	{Text: "fixtures for today", Intent: TodayFixtures},

	{Text: "score berlin united", Intent: LatestScore},
	{Text: "what was the result for munich city", Intent: LatestScore},
	{Text: "latest score for hamburg", Intent: LatestScore},
	{Text: "how did berlin united do", Intent: LatestScore},
	{Text: "final score of the munich game", Intent: LatestScore},
	{Text: "result hamburg fc", Intent: LatestScore},
	{Text: "did munich city win their game", Intent: LatestScore},
	{Text: "tell me the score", Intent: LatestScore},

	{Text: "who scored for munich city", Intent: GoalScorers},
	{Text: "goal scorers for berlin united", Intent: GoalScorers},
	{Text: "who got the goals", Intent: GoalScorers},
	{Text: "which players scored for hamburg", Intent: GoalScorers},
	{Text: "list the scorers", Intent: GoalScorers},
	{Text: "who put the ball in the net for berlin", Intent: GoalScorers},
	{Text: "goals scored by munich players", Intent: GoalScorers},
	{Text: "show me the goal scorers", Intent: GoalScorers},

	{Text: "where was the match", Intent: StadiumLocation},
	{Text: "which stadium was it played in", Intent: StadiumLocation},
	{Text: "what city hosted the game", Intent: StadiumLocation},
	{Text: "where did berlin united play", Intent: StadiumLocation},
	{Text: "name the venue of the last match", Intent: StadiumLocation},
	{Text: "stadium for the munich city game", Intent: StadiumLocation},
	{Text: "where is hamburg playing", Intent: StadiumLocation},
	{Text: "which ground was the match at", Intent: StadiumLocation},

	{Text: "what sport is this match", Intent: SportTypeForMatch},
	{Text: "which type of sport do they play", Intent: SportTypeForMatch},
	{Text: "is this football or something else", Intent: SportTypeForMatch},
	{Text: "sport type of the berlin game", Intent: SportTypeForMatch},
	{Text: "what kind of sport is the munich match", Intent: SportTypeForMatch},
	{Text: "tell me the sport for this fixture", Intent: SportTypeForMatch},
	{Text: "what do these teams actually play", Intent: SportTypeForMatch},
	{Text: "which sport is it", Intent: SportTypeForMatch},

	{Text: "next match berlin united", Intent: UpcomingForTeam},
	{Text: "when do munich city play next", Intent: UpcomingForTeam},
	{Text: "upcoming game for hamburg fc", Intent: UpcomingForTeam},
	{Text: "what is the next fixture for berlin", Intent: UpcomingForTeam},
	{Text: "when is the next munich game", Intent: UpcomingForTeam},
	{Text: "do hamburg have a game coming up", Intent: UpcomingForTeam},
	{Text: "next scheduled match for berlin united", Intent: UpcomingForTeam},
	{Text: "upcoming fixtures munich city", Intent: UpcomingForTeam},

	{Text: "last match hamburg fc", Intent: LastMatchForTeam},
	{Text: "previous game for berlin united", Intent: LastMatchForTeam},
	{Text: "how did the last munich city match end", Intent: LastMatchForTeam},
	{Text: "most recent completed game for hamburg", Intent: LastMatchForTeam},
	{Text: "berlin uniteds last played match", Intent: LastMatchForTeam},
	{Text: "what happened in munichs previous game", Intent: LastMatchForTeam},
	{Text: "last finished match for berlin", Intent: LastMatchForTeam},
	{Text: "previous result for hamburg fc", Intent: LastMatchForTeam},

	{Text: "top scorer for munich city", Intent: TopScorerTeam},
	{Text: "who is the leading scorer for berlin united", Intent: TopScorerTeam},
	{Text: "highest goal scorer of hamburg fc", Intent: TopScorerTeam},
	{Text: "best scorer at munich", Intent: TopScorerTeam},
	{Text: "who leads berlins scoring chart", Intent: TopScorerTeam},
	{Text: "top goal getter for hamburg", Intent: TopScorerTeam},
	{Text: "who has the most goals for munich city", Intent: TopScorerTeam},
	{Text: "leading scorer berlin united", Intent: TopScorerTeam},

	{Text: "tournament info", Intent: TournamentInfo},
	{Text: "which tournaments are there", Intent: TournamentInfo},
	{Text: "tell me about the cup", Intent: TournamentInfo},
	{Text: "who won the tournament", Intent: TournamentInfo},
	{Text: "what leagues do you know", Intent: TournamentInfo},
	{Text: "info about the city league", Intent: TournamentInfo},
	{Text: "tournament winner this season", Intent: TournamentInfo},
	{Text: "list the competitions", Intent: TournamentInfo},

	{Text: "help", Intent: Help},
	{Text: "what can you do", Intent: Help},
	{Text: "what questions can i ask", Intent: Help},
	{Text: "how do i use this", Intent: Help},
	{Text: "show me your capabilities", Intent: Help},
	{Text: "what do you know about", Intent: Help},
	{Text: "give me some examples", Intent: Help},
	{Text: "what can you answer", Intent: Help},
}

// LoadCorpus reads a YAML corpus file of {text, intent} records. An empty
// path returns the default corpus.
func LoadCorpus(path string) ([]nlp.Sample, error) {
	if path == "" {
		return DefaultCorpus, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}
	var samples []nlp.Sample
	if err := yaml.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("corpus file %s contains no samples", path)
	}
	return samples, nil
}
