package session

import (
	"sync"
	"time"

	"github.com/Scrimzay/plunderpunk/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	minInterval = 50 * time.Millisecond
	writeWait   = 10 * time.Second
)

// Broadcaster pushes game state to every websocket watching one session:
// on a fixed tick, and right away after each accepted action.
type Broadcaster struct {
	state      func() ([]byte, error)
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	notify     chan struct{} // Buffered, coalesces bursts of changes
	done       chan struct{}
	closeOnce  sync.Once
	interval   time.Duration
	mu         sync.RWMutex
	WriteMu    map[*websocket.Conn]*sync.Mutex // Per-conn write locks
	log        *logrus.Entry
}

func NewBroadcaster(state func() ([]byte, error), interval time.Duration) *Broadcaster {
	if interval < minInterval {
		interval = minInterval
	}
	return &Broadcaster{
		state:      state,
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		notify:     make(chan struct{}, 1),
		done:       make(chan struct{}),
		interval:   interval,
		WriteMu:    make(map[*websocket.Conn]*sync.Mutex),
		log:        logger.Component("broadcaster"),
	}
}

func (b *Broadcaster) Run() {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case conn := <-b.register:
			// Send initial state
			if data, ok := b.encode(); ok {
				if err := b.Send(conn, data); err != nil {
					b.log.WithError(err).Warn("Initial send failed")
					b.drop(conn)
				}
			}

		case conn := <-b.unregister:
			b.drop(conn)

		case <-ticker.C:
			b.broadcast()

		case <-b.notify:
			b.broadcast()

		case <-b.done:
			b.mu.Lock()
			for conn := range b.clients {
				conn.Close()
			}
			b.clients = map[*websocket.Conn]bool{}
			b.WriteMu = map[*websocket.Conn]*sync.Mutex{}
			b.mu.Unlock()
			return
		}
	}
}

func (b *Broadcaster) broadcast() {
	if b.Clients() == 0 {
		return
	}
	data, ok := b.encode()
	if !ok {
		return
	}

	var dead []*websocket.Conn
	b.mu.RLock()
	for conn := range b.clients {
		if err := b.writeLocked(conn, websocket.TextMessage, data); err != nil {
			b.log.WithError(err).Debug("Broadcast error")
			dead = append(dead, conn)
		}
	}
	b.mu.RUnlock()

	for _, conn := range dead {
		b.drop(conn)
	}
}

func (b *Broadcaster) encode() ([]byte, bool) {
	data, err := b.state()
	if err != nil {
		b.log.WithError(err).Error("State marshal error")
		return nil, false
	}
	return data, true
}

func (b *Broadcaster) drop(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[conn]; ok {
		delete(b.clients, conn)
		delete(b.WriteMu, conn)
		conn.Close()
	}
}

// Register adds a client and queues its initial state. It returns false once
// the broadcaster is closed.
func (b *Broadcaster) Register(conn *websocket.Conn) bool {
	select {
	case <-b.done:
		return false
	default:
	}

	b.mu.Lock()
	b.clients[conn] = true
	b.WriteMu[conn] = &sync.Mutex{}
	b.mu.Unlock()

	select {
	case b.register <- conn:
		return true
	case <-b.done:
		b.drop(conn)
		return false
	}
}

func (b *Broadcaster) Unregister(conn *websocket.Conn) {
	select {
	case b.unregister <- conn:
	case <-b.done:
	}
}

// Notify asks for a broadcast as soon as possible.
func (b *Broadcaster) Notify() {
	select {
	case b.notify <- struct{}{}:
	default:
		// Already pending, skip
	}
}

// Send writes one message to a single client, used for replies.
func (b *Broadcaster) Send(conn *websocket.Conn, data []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writeLocked(conn, websocket.TextMessage, data)
}

// Ping sends a keepalive to a single client.
func (b *Broadcaster) Ping(conn *websocket.Conn) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writeLocked(conn, websocket.PingMessage, nil)
}

// writeLocked expects b.mu to be held.
func (b *Broadcaster) writeLocked(conn *websocket.Conn, messageType int, data []byte) error {
	mu, ok := b.WriteMu[conn]
	if !ok {
		return websocket.ErrCloseSent
	}
	mu.Lock()
	defer mu.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(messageType, data)
}

func (b *Broadcaster) Clients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *Broadcaster) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}
