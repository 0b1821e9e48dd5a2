package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// Default title until the first routed turn names the session
	DefaultSessionTitle = "Unnamed session"

	// Maximum characters of the first user turn used as the title
	SessionTitleMaxLength = 40

	InitialGreeting = "Hi, what would you like to research today?"

	// Reply shown when a handler fails fatally; the session itself stays alive
	GenericFailureReply = "⚠️ Sorry, something went wrong while processing your request. Please try again."

	// Event types published on the internal bus
	EventSummaryCreated       = "SUMMARY_CREATED"
	EventResearchRunCompleted = "RESEARCH_RUN_COMPLETED"
)
