package handlers

// BotInterface is what handlers need from the Telegram transport. Keyboards
// are passed as interface{} so this package stays free of the bot API types.
type BotInterface interface {
	SendMessage(chatID int64, text string, keyboard interface{}) int
	EditMessage(chatID int64, messageID int, text string, keyboard interface{})
	AnswerCallbackQuery(callbackID, text string)
	SendStarsInvoice(chatID int64, title, description, payload string, stars int) error
	SendMainMenu(chatID int64, isAdmin bool)
}
