package socket

import (
	"fmt"
	"net/http"
	"sync"

	"amora_server/logger"
	"amora_server/utils"

	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
)

// Presence tracking
var (
	onlineUsers   = make(map[string]string) // email -> socket id
	onlineUsersMu sync.RWMutex
)

// IsUserOnline checks if a user has a live socket
func IsUserOnline(email string) bool {
	onlineUsersMu.RLock()
	defer onlineUsersMu.RUnlock()
	_, exists := onlineUsers[email]
	return exists
}

// NewServer initializes the Socket.IO server. Clients authenticate with
// their session token in the handshake query, join a personal room for
// notification pushes and join chat rooms on demand.
func NewServer() *socketio.Server {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		u := s.URL()
		token := u.Query().Get("token")
		if token == "" {
			logger.Warn().Str("socket", s.ID()).Msg("socket rejected: no token")
			return fmt.Errorf("authentication required")
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			logger.Warn().Str("socket", s.ID()).Msg("socket rejected: invalid token")
			return fmt.Errorf("invalid token")
		}

		s.SetContext(claims.Email)

		onlineUsersMu.Lock()
		onlineUsers[claims.Email] = s.ID()
		onlineUsersMu.Unlock()

		// Personal room for notification pushes
		s.Join(claims.Email)

		logger.Info().Str("socket", s.ID()).Str("email", claims.Email).Msg("socket connected")
		return nil
	})

	server.OnEvent("/", "join_chat", func(s socketio.Conn, chatID string) {
		if chatID == "" {
			return
		}
		s.Join(chatID)
	})

	server.OnEvent("/", "leave_chat", func(s socketio.Conn, chatID string) {
		if chatID == "" {
			return
		}
		s.Leave(chatID)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		onlineUsersMu.Lock()
		for email, socketID := range onlineUsers {
			if socketID == s.ID() {
				delete(onlineUsers, email)
				break
			}
		}
		onlineUsersMu.Unlock()
		logger.Info().Str("socket", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Error().Err(e).Msg("socket error")
	})

	return server
}

// Pusher adapts the socket server to the services' Notifier interface.
type Pusher struct {
	Server *socketio.Server
}

func (p *Pusher) PushToUser(email, event string, payload interface{}) {
	if p.Server != nil {
		p.Server.BroadcastToRoom("/", email, event, payload)
	}
}

func (p *Pusher) PushToChat(chatID, event string, payload interface{}) {
	if p.Server != nil {
		p.Server.BroadcastToRoom("/", chatID, event, payload)
	}
}
