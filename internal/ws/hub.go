package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	TopicOrders = "orders"
	TopicTables = "tables"
)

// Hub はダッシュボードへのリアルタイム配信の中心。
// 書き込み成功のたびに全量スナップショットを流す。同じ通知が重複して
// 届くことがある前提なので、受け手は冪等に適用すること。
type Hub struct {
	clients    map[string]map[*websocket.Conn]bool // topic -> set of clients
	broadcast  chan broadcastMessage
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
	logger     *zap.Logger
}

type subscription struct {
	conn  *websocket.Conn
	topic string
}

type broadcastMessage struct {
	topic   string
	payload interface{}
}

// 配信メッセージの外形
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan broadcastMessage, 64),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		logger:     logger,
	}
}

// Run はregister/unregister/broadcastを回し続ける。goroutineで起動する。
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.topic] == nil {
				h.clients[sub.topic] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.topic][sub.conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.topic][sub.conn]; ok {
				delete(h.clients[sub.topic], sub.conn)
				sub.conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.topic] {
				if err := conn.WriteJSON(msg.payload); err != nil {
					h.logger.Warn("ws write failed, dropping client",
						zap.String("topic", msg.topic),
						zap.Error(err),
					)
					delete(h.clients[msg.topic], conn)
					conn.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish はトピックの全購読者へペイロードを流す
func (h *Hub) Publish(topic string, payload interface{}) {
	h.broadcast <- broadcastMessage{topic: topic, payload: payload}
}

var upgrader = websocket.Upgrader{
	// オリジン制限はCORSミドルウェア側の責務
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler は /ws?topic=orders|tables をwebsocketへ upgrade する
func (h *Hub) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		topic := c.QueryParam("topic")
		if topic != TopicOrders && topic != TopicTables {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid topic"})
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}

		sub := subscription{conn: conn, topic: topic}
		h.register <- sub

		//切断検知のための読み捨てループ
		go func() {
			defer func() { h.unregister <- sub }()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		return nil
	}
}
