package models

const REDIS_CHANNEL_CHAT = "chat_channel"

type RedisPublishedMessage struct {
	Event   string `json:"event"`
	PairKey string `json:"pair_key"`
	Payload any    `json:"payload"`
}
