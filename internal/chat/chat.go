package chat

// Role of a conversation turn. The provider only knows "user" and "model";
// assistant turns are mapped on the way out.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the running conversation. Turns are append-only for
// the session lifetime and are sent by the client with every request rather
// than persisted server-side.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// StreakContext is embedded into the coach preamble so replies can reference
// the user's numbers.
type StreakContext struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

type ConverseRequest struct {
	History []Turn `json:"history"`
	Message string `json:"message"`
}

// Reply is what the coach always produces, provider or not. Offline marks the
// canned-phrase path so the client can tell the difference.
type Reply struct {
	Content string `json:"content"`
	Offline bool   `json:"offline"`
}
