package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sportiq/sportiq/internal/bot"
	"github.com/sportiq/sportiq/internal/intent"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with SportIQ in an interactive terminal session",
	Long: `Open an interactive chat session. Type a question and press enter.

Keys:
  enter   send the question
  ctrl+f  toggle flashcard suggestions
  tab     fill the input with a suggestion
  ctrl+c  quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		withPolish, _ := cmd.Flags().GetBool("polish")

		b, err := buildBot(withPolish)
		if err != nil {
			return fmt.Errorf("failed to start SportIQ: %w", err)
		}
		defer b.Close()

		p := tea.NewProgram(newChatModel(b), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().Bool("polish", false, "Rewrite answers in a friendlier tone via OpenRouter")
}

var (
	botStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))
	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("179"))
)

const flashCount = 3

type replyMsg bot.Reply

type flashTickMsg time.Time

type chatModel struct {
	bot        *bot.Bot
	transcript viewport.Model
	input      textinput.Model
	lines      []string
	status     string
	ready      bool
	typing     bool
	flashOn    bool
	flash      []string
}

func newChatModel(b *bot.Bot) chatModel {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Try: score Berlin United, who scored for Munich City, where was the match"
	input.Focus()
	return chatModel{
		bot:   b,
		input: input,
		lines: []string{botStyle.Render("SportIQ:") + " Hi! Ask me about fixtures, scores, scorers, stadiums, or sport type."},
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func flashTick() tea.Cmd {
	return tea.Tick(6*time.Second, func(t time.Time) tea.Msg {
		return flashTickMsg(t)
	})
}

func pickFlashcards() []string {
	pool := append([]string(nil), intent.Flashcards...)
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > flashCount {
		pool = pool[:flashCount]
	}
	return pool
}

func (m chatModel) send(text string) (tea.Model, tea.Cmd) {
	m.lines = append(m.lines, userStyle.Render("You:")+" "+text)
	m.typing = true
	m.refreshTranscript()
	b := m.bot
	return m, func() tea.Msg {
		return replyMsg(b.Respond(context.Background(), text))
	}
}

func (m *chatModel) refreshTranscript() {
	if !m.ready {
		return
	}
	content := strings.Join(m.lines, "\n")
	if m.typing {
		content += "\n" + botStyle.Render("SportIQ:") + " typing..."
	}
	m.transcript.SetContent(content)
	m.transcript.GotoBottom()
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		transcriptCmd tea.Cmd
		inputCmd      tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.typing {
				return m, nil
			}
			m.input.SetValue("")
			return m.send(text)
		case "ctrl+f":
			m.flashOn = !m.flashOn
			if m.flashOn {
				m.flash = pickFlashcards()
				return m, flashTick()
			}
			m.flash = nil
			return m, nil
		case "tab":
			if m.flashOn && len(m.flash) > 0 {
				m.input.SetValue(m.flash[rand.Intn(len(m.flash))])
				m.input.CursorEnd()
			}
			return m, nil
		}

	case replyMsg:
		m.typing = false
		m.lines = append(m.lines, botStyle.Render("SportIQ:")+" "+msg.Answer)
		if msg.Intent != "" {
			m.status = fmt.Sprintf("intent: %s  confidence: %.2f", msg.Intent, msg.Confidence)
			if msg.Team != "" {
				m.status += "  team: " + msg.Team
			}
			if msg.UsedModel != "" {
				m.status += "  polished by " + msg.UsedModel
			}
		} else {
			m.status = ""
		}
		m.refreshTranscript()
		return m, nil

	case flashTickMsg:
		if !m.flashOn {
			return m, nil
		}
		m.flash = pickFlashcards()
		return m, flashTick()

	case tea.WindowSizeMsg:
		if !m.ready {
			m.transcript = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.transcript.Width = msg.Width
			m.transcript.Height = msg.Height - 4
		}
		m.refreshTranscript()
	}

	m.transcript, transcriptCmd = m.transcript.Update(msg)
	m.input, inputCmd = m.input.Update(msg)
	return m, tea.Batch(transcriptCmd, inputCmd)
}

func (m chatModel) View() string {
	if !m.ready {
		return "starting..."
	}
	var footer []string
	if m.flashOn && len(m.flash) > 0 {
		footer = append(footer, flashStyle.Render("try: "+strings.Join(m.flash, "  |  ")))
	}
	if m.status != "" {
		footer = append(footer, statusStyle.Render(m.status))
	}
	footer = append(footer, m.input.View())
	return m.transcript.View() + "\n" + strings.Join(footer, "\n")
}
