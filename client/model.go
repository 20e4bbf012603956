package client

import (
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ross1116/pokebattlesim/internal/battle"
)

type Config struct {
	ServerHost string
	ServerPort string
	Username   string
	// ClearScreen redraws the terminal before each state frame.
	ClearScreen bool
}

type Client struct {
	Config      *Config
	HTTP        *http.Client
	Conn        *websocket.Conn
	BattleID    string
	MessageChan chan Message
	Out         io.Writer

	GameActive bool
	View       battle.SideView
	Result     string

	// mu serializes writes on Conn and guards connected.
	mu        sync.Mutex
	connected bool
}

// Message is a frame from the server: log, state, game_end or error.
type Message struct {
	Type    string                 `json:"type"`
	Message map[string]interface{} `json:"message"`
}
