// messages.go contains message templates for Telegram. All user-facing
// phrasing lives here, outside the core.

package telegram

const (
	msgWelcome = "Welcome to the Quiz Bot! Type /help for commands."

	msgHelp = `Available commands:
/quiz [category] [difficulty] - Start a quiz
/leaderboard - See top scorers
/my_score - View your current score
/score_history - View your score history
/stats - View your quiz statistics
/my_quizzes - See your recent quizzes
/user_info - Check your own information
/cancel - Cancel the active question
/schedule_quiz on|off - Toggle the daily quiz
/reset - Reset your score to 0
/help - Show this help message

Categories: general, entertainment, science, sports, geography, history
Difficulties: easy, medium, hard`

	msgQuizUnavailable  = "Sorry, I couldn't fetch a question right now. Please try again later."
	msgNoActiveQuestion = "That question is no longer answerable. Start a new quiz with /quiz"
	msgTimeUp           = "Time's up! That question has expired. Try another one with /quiz"
	msgNothingToCancel  = "You have no active question."
	msgCancelled        = "Question cancelled. Start a new one with /quiz"
	msgScoreReset       = "Your score has been reset to 0."
	msgNoHistory        = "You have no score history yet."
	msgNoQuizzes        = "You haven't taken any quizzes yet!"
	msgDailyOn          = "Daily quiz enabled. You'll get one question every day."
	msgDailyOff         = "Daily quiz disabled."
	msgScheduleUsage    = "Usage: /schedule_quiz on|off"
	msgAdjustUsage      = "Usage: /adjust <user_id> <delta>"
	msgNotAuthorized    = "Sorry, you are not authorized to use this command."
	msgInternalError    = "Something went wrong. Please try again later."
	msgUnknownCommand   = "Unknown command. Type /help to see what I can do."
	msgLeaderboardEmpty = "Nobody has scored yet. Be the first with /quiz!"
	msgNotOnLeaderboard = "You are not in the top yet. Keep playing to improve your score!"
)
