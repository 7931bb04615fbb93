package enums

// Event names shared by the SSE stream and the websocket channel.
const (
	FEED_EVENT_MESSAGE = "message"
	FEED_EVENT_CLOSE   = "close"

	SOCKET_EVENT_SEND_MESSAGE = "send_message"
	SOCKET_EVENT_NEW_MESSAGE  = "new_message"
)

const (
	FEED_CLOSE_REASON_INACTIVITY = "closed due to inactivity, reopen the stream to continue"
	FEED_CLOSE_REASON_STORE      = "closed due to a store error, reopen the stream to continue"
)
