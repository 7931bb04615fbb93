package models

import (
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

type SocketClient struct {
	Conn   *websocket.Conn
	UserId uint
}

// SocketHub tracks open websocket connections keyed by conversation pair
// key, so a message committed by any instance fans out to every client
// watching that pair. The owning handler serializes all access.
type SocketHub struct {
	Pairs map[string][]*SocketClient
	Redis *redis.Client
}
