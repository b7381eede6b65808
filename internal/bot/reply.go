// Package bot implements the chat-facing handler layer. It is invoked with
// already-parsed transport events (commands, button callbacks, free-text
// messages, embedded-app payloads) and returns plain text plus optional
// buttons; it never talks to the chat transport directly.
package bot

// User identifies the chat user an event belongs to.
type User struct {
	ID        int64
	FirstName string
}

// Button is one labeled action rendered under a reply. Exactly one of
// CallbackData and WebAppURL is set.
type Button struct {
	Label        string `json:"label"`
	CallbackData string `json:"callback_data,omitempty"`
	WebAppURL    string `json:"web_app_url,omitempty"`
}

// Reply is the result of handling one inbound event. Messages holds follow-up
// texts sent after the main one (proactive suggestions).
type Reply struct {
	Text     string     `json:"text"`
	Buttons  [][]Button `json:"buttons,omitempty"`
	Messages []Reply    `json:"messages,omitempty"`
}

func textReply(text string) Reply {
	return Reply{Text: text}
}
