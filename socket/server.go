package socket

import (
	"context"
	"log"

	"vibin_client/models"

	socketio "github.com/googollee/go-socket.io"
)

const namespace = "/"

// Server pushes swipe screen events to connected UI clients. Each client joins
// the room of the screen it renders.
type Server struct {
	io *socketio.Server
}

// NewSocketServer initializes and returns a new Socket.IO server
func NewSocketServer() *Server {
	server := socketio.NewServer(nil)

	// Handle connection events
	server.OnConnect(namespace, func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	// Handle join events
	server.OnEvent(namespace, "join", func(c socketio.Conn, data map[string]string) {
		screenID := data["screenId"]
		if screenID == "" {
			log.Println("❌ Invalid screenId in join request")
			return
		}
		log.Printf("👥 Socket %s joined screen %s\n", c.ID(), screenID)
		c.Join(screenID)
	})

	server.OnError(namespace, func(c socketio.Conn, err error) {
		if c == nil {
			log.Printf("❌ Socket error: %v", err)
			return
		}
		log.Printf("❌ Socket %s error: %v", c.ID(), err)
	})

	// Handle disconnection
	server.OnDisconnect(namespace, func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
	})

	return &Server{io: server}
}

// Handler serves the Socket.IO endpoint.
func (s *Server) Handler() *socketio.Server {
	return s.io
}

// Serve runs the Socket.IO event loop until Close.
func (s *Server) Serve() error {
	return s.io.Serve()
}

// Close stops the Socket.IO server.
func (s *Server) Close() error {
	return s.io.Close()
}

// Notify broadcasts a screen event to the screen's room.
func (s *Server) Notify(screenID, event string, payload any) {
	if !s.io.BroadcastToRoom(namespace, screenID, event, payload) {
		log.Printf("⚠️ No socket namespace for screen %s event %s", screenID, event)
	}
}

// Navigate hands a conversation intent to the UI of the screen.
func (s *Server) Navigate(ctx context.Context, screenID string, intent *models.NavigationIntent) error {
	log.Printf("📩 Navigating screen %s to %s", screenID, intent.Path)
	s.Notify(screenID, models.EventNavigate, intent)
	return nil
}
