package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ross1116/pokebattlesim/internal/battle"
)

func (server *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s, err := server.session(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	conn, err := server.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("battle", s.id).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	log.Info().Str("battle", s.id).Str("remote", conn.RemoteAddr().String()).Msg("websocket connected")

	server.runGameLoop(r, conn, s)
}

// runGameLoop reads player actions and streams each turn back as log frames followed by a
// state frame, until the battle ends or the client goes away.
func (server *Server) runGameLoop(r *http.Request, conn *websocket.Conn, s *session) {
	snap := s.snapshot()
	if err := server.SendResponse(conn, stateResponse(snap.View, snap.Log)); err != nil {
		return
	}
	if snap.Winner != "" {
		server.sendGameEnd(conn, snap.Winner, snap.View.Name)
		return
	}

	for {
		var action battle.BattleAction
		if err := conn.ReadJSON(&action); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				log.Debug().Err(err).Str("battle", s.id).Msg("websocket read ended")
			}
			return
		}

		var sendErr error
		result, err := s.playTurn(action, func(line string) {
			if sendErr == nil {
				sendErr = server.SendResponse(conn, Response{Type: "log", Message: map[string]interface{}{"line": line}})
			}
		})
		if err != nil {
			if server.SendResponse(conn, errorFrame(err)) != nil {
				return
			}
			continue
		}
		if sendErr != nil {
			return
		}
		if err := server.SendResponse(conn, stateResponse(result.View, nil)); err != nil {
			return
		}
		if result.Winner != "" {
			server.saveReport(r.Context(), s)
			server.sendGameEnd(conn, result.Winner, result.View.Name)
			return
		}
	}
}

func stateResponse(view battle.SideView, lines []string) Response {
	msg := map[string]interface{}{"view": view}
	if lines != nil {
		msg["log"] = lines
	}
	return Response{Type: "state", Message: msg}
}

func errorFrame(err error) Response {
	return Response{Type: "error", Message: map[string]interface{}{"error": err.Error(), "status": statusFor(err)}}
}

func (server *Server) sendGameEnd(conn *websocket.Conn, winner, playerName string) {
	result, message := "lose", "You lost the battle!"
	if winner == playerName {
		result, message = "win", "You won the battle!"
	}
	server.SendResponse(conn, Response{
		Type: "game_end",
		Message: map[string]interface{}{
			"winner":  winner,
			"result":  result,
			"message": message,
		},
	})
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "battle over"))
}
