// Package client is a terminal front end for battles hosted by the server package.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ross1116/pokebattlesim/internal/battle"
)

func New(config *Config) *Client {
	return &Client{
		Config:      config,
		HTTP:        &http.Client{Timeout: 30 * time.Second},
		MessageChan: make(chan Message, 32),
		Out:         os.Stdout,
	}
}

func (c *Client) baseURL(scheme string) string {
	return fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(c.Config.ServerHost, c.Config.ServerPort))
}

// Connect starts a new battle over HTTP and attaches to its websocket stream.
func (c *Client) Connect(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{"player": c.Config.Username})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL("http")+"/battles", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug().Str("url", req.URL.String()).Msg("creating battle")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to create battle: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("failed to create battle: %s: %s", resp.Status, apiErr.Error)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return fmt.Errorf("decode battle: %w", err)
	}
	c.BattleID = created.ID

	wsURL := c.baseURL("ws") + "/battles/" + c.BattleID + "/ws"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}
	log.Debug().Str("battle", c.BattleID).Msg("connected")

	c.mu.Lock()
	c.Conn = conn
	c.connected = true
	c.mu.Unlock()
	c.GameActive = true
	go c.handleIncomingMessages()
	return nil
}

func (c *Client) SendAction(action battle.BattleAction) error {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return fmt.Errorf("not connected to server")
	}
	c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	err := c.Conn.WriteJSON(action)
	c.Conn.SetWriteDeadline(time.Time{})
	c.mu.Unlock()
	if err != nil {
		log.Warn().Err(err).Msg("failed to send action, disconnecting")
		c.Disconnect()
		return fmt.Errorf("failed to send action: %w", err)
	}
	return nil
}

func (c *Client) handleIncomingMessages() {
	defer close(c.MessageChan)
	for {
		var msg Message
		if err := c.Conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("connection closed")
			}
			return
		}
		log.Debug().Str("type", msg.Type).Msg("received message")
		c.MessageChan <- msg
	}
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Disconnect closes the connection once. It may be called from any goroutine.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return
	}
	c.Conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	c.Conn.Close()
	c.connected = false
}
