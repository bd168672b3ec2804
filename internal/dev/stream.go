package dev

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lu-dev/lu/pkg/dom"
)

// MessageType represents the type of stream message.
type MessageType string

const (
	MessageMutation MessageType = "mutation"
	MessageReload   MessageType = "reload"
	MessageCSS      MessageType = "css"
	MessageError    MessageType = "error"
)

// Message is sent to browsers via WebSocket.
type Message struct {
	Type MessageType `json:"type"`

	// Mutation fields.
	Kind    string `json:"kind,omitempty"`
	Target  string `json:"target,omitempty"`
	Name    string `json:"name,omitempty"`
	Old     string `json:"old,omitempty"`
	Value   string `json:"value,omitempty"`
	Removed bool   `json:"removed,omitempty"`

	File  string `json:"file,omitempty"`
	Error string `json:"error,omitempty"`
}

// MutationMessage converts a document mutation to a stream message.
func MutationMessage(rec dom.MutationRecord) Message {
	return Message{
		Type:    MessageMutation,
		Kind:    rec.Kind.String(),
		Target:  rec.Target.Describe(),
		Name:    rec.Name,
		Old:     rec.OldValue,
		Value:   rec.Value,
		Removed: rec.Removed,
	}
}

// Stream fans messages out to connected WebSocket clients.
type Stream struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
}

// NewStream creates a new stream.
func NewStream() *Stream {
	return &Stream{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // dev only
			},
		},
	}
}

// ServeHTTP upgrades the connection and holds it until the client leaves.
func (s *Stream) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// Mutation sends a document mutation to all clients.
func (s *Stream) Mutation(rec dom.MutationRecord) {
	s.Broadcast(MutationMessage(rec))
}

// Reload asks all clients to reload the page.
func (s *Stream) Reload() {
	s.Broadcast(Message{Type: MessageReload})
}

// CSS asks all clients to reload stylesheets.
func (s *Stream) CSS(file string) {
	s.Broadcast(Message{Type: MessageCSS, File: file})
}

// Error shows an error overlay on all clients.
func (s *Stream) Error(msg string) {
	s.Broadcast(Message{Type: MessageError, Error: msg})
}

// Broadcast sends msg to all clients, dropping the ones that fail.
func (s *Stream) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	// gorilla connections support one concurrent writer
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			s.mu.Lock()
			delete(s.clients, client)
			s.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (s *Stream) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close closes all client connections.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
}

// StreamPath is where the stream is mounted.
const StreamPath = "/_lu/stream"

// ClientScript is injected before </body> of the served page. It applies
// mutation messages to the live document and reloads on file changes.
const ClientScript = `<script>
(function() {
    'use strict';

    var delay = 1000;

    function find(target) {
        var i = target.indexOf('#');
        if (i >= 0) {
            return document.getElementById(target.slice(i + 1));
        }
        return null;
    }

    function apply(msg) {
        var el = find(msg.target);
        if (!el) {
            return;
        }
        switch (msg.kind) {
            case 'attribute':
                if (msg.removed) {
                    el.removeAttribute(msg.name);
                } else {
                    el.setAttribute(msg.name, msg.value);
                }
                break;
            case 'class':
                el.classList.toggle(msg.name, !msg.removed);
                break;
            case 'property':
                el[msg.name] = msg.removed ? false : msg.value;
                break;
        }
    }

    function reloadCSS() {
        document.querySelectorAll('link[rel="stylesheet"]').forEach(function(link) {
            var url = new URL(link.href);
            url.searchParams.set('_reload', Date.now());
            link.href = url.toString();
        });
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/_lu/stream');

        ws.onopen = function() {
            delay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            switch (msg.type) {
                case 'mutation':
                    apply(msg);
                    break;
                case 'reload':
                    location.reload();
                    break;
                case 'css':
                    reloadCSS();
                    break;
                case 'error':
                    console.error('[lu]', msg.error);
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                delay = Math.min(delay * 2, 30000);
                connect();
            }, delay);
        };
    }

    connect();
})();
</script>
`
