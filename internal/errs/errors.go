package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody   = Error("invalid request body")
	ErrUserAlreadyExists    = Error("user already exists")
	ErrUserNotFound         = Error("user not found")
	ErrWrongPassword        = Error("wrong password")
	ErrInvalidEmail         = Error("invalid email")
	ErrInvalidPassword      = Error("invalid password")
	ErrInvalidUser          = Error("invalid user")
	ErrInvalidRequest       = Error("invalid request")
	ErrInvalidParams        = Error("invalid params")
	ErrInvalidPageOrSize    = Error("invalid page or size")
	ErrFirstName            = Error("first name is empty or too short")
	ErrLastName             = Error("last name is empty or too short")
	ErrUnauthorized         = Error("unauthorized")
	ErrInvalidPeerId        = Error("invalid peer id")
	ErrSelfConversation     = Error("cannot open a conversation with yourself")
	ErrConversationNotFound = Error("conversation not found")
	ErrEmptyConversation    = Error("conversation has no messages")
	ErrStoreUnavailable     = Error("message store unavailable")
)
