package reactions

// Discord Unicode emoji constants used by the reaction router
const (
	// EmojiCrossMark is added to the source message when no thread could be opened for it
	EmojiCrossMark = "❌"
)
