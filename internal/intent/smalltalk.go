package intent

import (
	"regexp"
	"strings"
)

type cannedReply struct {
	pattern *regexp.Regexp
	reply   string
}

var smallTalk = []cannedReply{
	{regexp.MustCompile(`^(hi|hello|hey|yo)\b`), "Hey! I'm SportIQ. Ask me about scores, scorers, fixtures, or stadiums."},
	{regexp.MustCompile(`how are (you|u)|how's it going|how r u`), "Doing great, thanks! I can help with sports questions like scores or goal scorers."},
	{regexp.MustCompile(`thank(s| you)|thx`), "Happy to help."},
	{regexp.MustCompile(`bye|goodbye|see you|cya`), "See you next time."},
	{regexp.MustCompile(`which teams\??$`), "Try naming a team. For example: score Berlin United or who scored for Munich City."},
}

// SmallTalk returns a canned reply for greetings and pleasantries, checked
// before intent resolution. The second return is false for sports queries.
func SmallTalk(text string) (string, bool) {
	t := strings.TrimSpace(strings.ToLower(text))
	for _, c := range smallTalk {
		if c.pattern.MatchString(t) {
			return c.reply, true
		}
	}
	return "", false
}
