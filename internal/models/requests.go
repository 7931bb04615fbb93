package models

type LoginRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// MessageRequest is the body of a send, over REST or the socket channel.
// Content is passed through verbatim; the receiver comes from the route.
type MessageRequest struct {
	Content string `json:"content"`
}
