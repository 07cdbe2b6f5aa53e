package entity

// SessionState состояние чата с ботом
type SessionState string

const (
	StateMainMenu       SessionState = "main_menu"       // В главном меню
	StateAwaitingRecord SessionState = "awaiting_record" // Ожидание ID записи
	StateProcessing     SessionState = "processing"      // Идёт классификация
)

// Session состояние диалога одного пользователя
type Session struct {
	UserID int64        // Telegram User ID
	ChatID int64        // Telegram Chat ID
	State  SessionState // Текущее состояние
}

// NewSession создаёт сессию в главном меню
func NewSession(userID, chatID int64) *Session {
	return &Session{
		UserID: userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние сессии
func (s *Session) SetState(state SessionState) {
	s.State = state
}
