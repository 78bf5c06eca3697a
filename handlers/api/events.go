package api

import (
	"bufio"
	"encoding/json"
	"sync"
	"time"

	"meetminder/models"
	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// Event is a realtime dashboard event pushed to connected clients.
type Event struct {
	ID      string                 `json:"id"`
	Type    string                 `json:"type"` // "meeting_created", "meeting_status", "notification"
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
	Time    time.Time              `json:"time"`
}

// EventBroker fans dashboard events out to SSE and WebSocket
// subscribers.
type EventBroker struct {
	subscribers map[string]chan Event
	mu          sync.RWMutex
}

// NewEventBroker creates an empty broker.
func NewEventBroker() *EventBroker {
	return &EventBroker{
		subscribers: make(map[string]chan Event),
	}
}

// HandleSSE streams events to the client over Server-Sent Events.
func (b *EventBroker) HandleSSE(c *fiber.Ctx) error {
	if _, err := CurrentUserID(c); err != nil {
		return err
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	subscriberID := uuid.New().String()
	messageChan := make(chan Event, 10)

	b.mu.Lock()
	b.subscribers[subscriberID] = messageChan
	b.mu.Unlock()

	utils.Log.Info("SSE subscriber connected: %s", subscriberID)

	ctx := c.Context()
	ctx.SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			b.mu.Lock()
			delete(b.subscribers, subscriberID)
			close(messageChan)
			b.mu.Unlock()
			utils.Log.Info("SSE subscriber disconnected: %s", subscriberID)
		}()

		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case event := <-messageChan:
				data, _ := json.Marshal(event)
				w.WriteString("data: " + string(data) + "\n\n")
				if err := w.Flush(); err != nil {
					return
				}

			case <-ticker.C:
				w.WriteString(": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}

			case <-ctx.Done():
				return
			}
		}
	}))

	return nil
}

// HandleWebSocket streams events over a WebSocket connection.
func (b *EventBroker) HandleWebSocket(c *websocket.Conn) {
	subscriberID := uuid.New().String()
	messageChan := make(chan Event, 10)

	b.mu.Lock()
	b.subscribers[subscriberID] = messageChan
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.subscribers, subscriberID)
		close(messageChan)
		b.mu.Unlock()

		c.Close()
		utils.Log.Info("WebSocket subscriber disconnected: %s", subscriberID)
	}()

	utils.Log.Info("WebSocket subscriber connected: %s", subscriberID)

	for event := range messageChan {
		if err := c.WriteJSON(event); err != nil {
			utils.Log.Error("Failed to send WebSocket event: %v", err)
			break
		}
	}
}

// Broadcast sends an event to every subscriber. Subscribers with full
// channels are skipped.
func (b *EventBroker) Broadcast(event Event) {
	event.ID = uuid.New().String()
	event.Time = time.Now()

	b.mu.RLock()
	defer b.mu.RUnlock()

	for subscriberID, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			utils.Log.Warn("Event channel full for subscriber %s", subscriberID)
		}
	}
}

// NotifyMeetingCreated announces a newly stored meeting.
func (b *EventBroker) NotifyMeetingCreated(meeting models.Meeting) {
	b.Broadcast(Event{
		Type:    "meeting_created",
		Message: "New meeting detected",
		Data: map[string]interface{}{
			"meetingId": meeting.ID,
			"title":     meeting.Title,
		},
	})
}

// NotifyMeetingStatus announces a meeting status transition.
func (b *EventBroker) NotifyMeetingStatus(meeting models.Meeting) {
	b.Broadcast(Event{
		Type:    "meeting_status",
		Message: "Meeting status changed",
		Data: map[string]interface{}{
			"meetingId": meeting.ID,
			"title":     meeting.Title,
			"status":    string(meeting.Status),
		},
	})
}

// NotifyNotification announces a stored notification.
func (b *EventBroker) NotifyNotification(notification models.Notification) {
	b.Broadcast(Event{
		Type:    "notification",
		Message: notification.Message,
		Data: map[string]interface{}{
			"notificationId": notification.ID,
		},
	})
}
