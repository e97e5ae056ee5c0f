package telegram

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"triviabot/internal/domain/entities"
)

func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

// esc escapes plain text for HTML parse mode.
func esc(s string) string {
	return html.EscapeString(s)
}

// SendQuiz sends a question with its answer keyboard. Also used by the
// scheduler as the daily quiz notifier.
func (h *Handler) SendQuiz(chatID int64, view *entities.QuestionView) error {
	text := fmt.Sprintf("%s\n\nCategory: %s\nDifficulty: %s", view.Text, view.Category, view.Difficulty)
	msg := newPlainMessage(chatID, text)
	msg.ReplyMarkup = buildAnswerKeyboard(view)
	return h.send(msg)
}

func displayName(from *tgbotapi.User) string {
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	if name == "" {
		name = from.UserName
	}
	if name == "" {
		name = "Anonymous"
	}
	return name
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func formatLeaderboard(entries []entities.LeaderboardEntry, userID int64) string {
	var b strings.Builder
	b.WriteString("<b>Leaderboard</b>\n")

	var mine *entities.LeaderboardEntry
	for i := range entries {
		e := entries[i]
		b.WriteString(fmt.Sprintf("%d. %s — %d\n", e.Rank, esc(e.DisplayName), e.Score))
		if e.UserID == userID {
			mine = &entries[i]
		}
	}

	if mine != nil {
		b.WriteString(fmt.Sprintf("\nYour rank: %d with a score of %d.", mine.Rank, mine.Score))
	} else {
		b.WriteString("\n" + msgNotOnLeaderboard)
	}

	return b.String()
}

func formatHistory(entries []entities.ScoreHistoryEntry) string {
	var b strings.Builder
	b.WriteString("<b>Your score history</b>\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf(
			"%+d (%s) — total %d, %s\n",
			e.Delta,
			e.Reason,
			e.Total,
			e.CreatedAt.Format("2 Jan 15:04"),
		))
	}
	return b.String()
}

func formatStats(stats *entities.UserStats) string {
	return fmt.Sprintf(
		"<b>Your stats</b>\nTotal score: %d\nCorrect answers: %d\nMissed or wrong: %d\nCurrent streak: %d",
		stats.Total,
		stats.CorrectCount,
		stats.IncorrectCount,
		stats.Streak,
	)
}

func formatRecentQuizzes(records []entities.QuizRecord) string {
	var b strings.Builder
	b.WriteString("<b>Your recent quizzes</b>\n")
	for _, r := range records {
		mark := "❌"
		if r.Correct {
			mark = "✅"
		}
		if r.Outcome == entities.SessionExpired {
			mark = "⌛"
		}
		b.WriteString(fmt.Sprintf("%s %s — %s\n", mark, esc(r.Text), esc(r.Answer)))
	}
	return b.String()
}

func formatAllUsers(entries []entities.LeaderboardEntry) string {
	var b strings.Builder
	b.WriteString("<b>All users</b>\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("ID: %d, Name: %s, Score: %d\n", e.UserID, esc(e.DisplayName), e.Score))
	}
	return b.String()
}
