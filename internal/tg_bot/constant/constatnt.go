package constant

const (
	EMOJI_HUGGING_FACE = "\U0001F917" //🤗
	EMOJI_WAVING_HAND  = "\U0001F44B" //👋
	EMOJI_FACE_KISS    = "\U0001F618" //😘
	EMOJI_BOXING_GLOVE = "\U0001F94A" //🥊
	EMOJI_BULLET       = "\u2022"     //•

	// Warnings before a member is kicked
	MAX_WARNINGS = 3

	// Telegram rejects longer text messages
	MAX_MESSAGE_LENGTH = 4096

	MSG_ADMIN_ONLY          = "You must be an admin to use this command."
	MSG_TARGET_USAGE        = "Please specify a user to %s (reply or mention)."
	MSG_INSUFFICIENT_RIGHTS = "Failed to %s user. Do I have sufficient rights?"

	MSG_PONG               = "Pong!"
	MSG_NO_RULES           = "No rules have been set for this group."
	MSG_AI_FAILED          = "Failed to generate a response."
	MSG_NO_DEFINITION      = "No definition found."
	MSG_TRANSLATION_FAILED = "Translation failed."
	MSG_WEATHER_FAILED     = "Couldn't retrieve weather data."
	MSG_INVALID_EXPRESSION = "Invalid expression."
)
