package mx

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Event is a room timeline event as returned by /messages.
type Event struct {
	EventID   string         `json:"event_id"`
	Type      string         `json:"type"`
	Sender    string         `json:"sender"`
	Timestamp int64          `json:"origin_server_ts"` // milliseconds
	Content   map[string]any `json:"content"`
}

// Body returns the plain-text body of a message event, if any.
func (e Event) Body() string {
	b, _ := e.Content["body"].(string)
	return b
}

// Time converts the origin server timestamp to local time.
func (e Event) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

type messageContent struct {
	MsgType       string         `json:"msgtype"`
	Body          string         `json:"body"`
	Format        string         `json:"format,omitempty"`
	FormattedBody string         `json:"formatted_body,omitempty"`
	NewContent    any            `json:"m.new_content,omitempty"`
	RelatesTo     map[string]any `json:"m.relates_to,omitempty"`
}

func (c *Client) txnID() string {
	return fmt.Sprintf("mxtool-%d", time.Now().UnixNano())
}

// SendMessage posts a text (or notice) message. htmlBody may be empty; when
// set it is sent as org.matrix.custom.html alongside the plain body.
func (c *Client) SendMessage(ctx context.Context, roomID, body, htmlBody string, notice bool) (string, error) {
	msgType := "m.text"
	if notice {
		msgType = "m.notice"
	}
	content := messageContent{MsgType: msgType, Body: body}
	if htmlBody != "" {
		content.Format = "org.matrix.custom.html"
		content.FormattedBody = htmlBody
	}
	return c.sendEvent(ctx, roomID, "m.room.message", content)
}

// EditMessage replaces the body of a previously sent event via m.replace.
func (c *Client) EditMessage(ctx context.Context, roomID, eventID, body string) (string, error) {
	content := messageContent{
		MsgType: "m.text",
		Body:    "* " + body,
		NewContent: messageContent{
			MsgType: "m.text",
			Body:    body,
		},
		RelatesTo: map[string]any{
			"rel_type": "m.replace",
			"event_id": eventID,
		},
	}
	return c.sendEvent(ctx, roomID, "m.room.message", content)
}

// React attaches an m.annotation reaction to an event.
func (c *Client) React(ctx context.Context, roomID, eventID, key string) (string, error) {
	content := map[string]any{
		"m.relates_to": map[string]any{
			"rel_type": "m.annotation",
			"event_id": eventID,
			"key":      key,
		},
	}
	return c.sendEvent(ctx, roomID, "m.reaction", content)
}

// Redact removes an event's content, optionally with a reason.
func (c *Client) Redact(ctx context.Context, roomID, eventID, reason string) (string, error) {
	body := map[string]any{}
	if reason != "" {
		body["reason"] = reason
	}
	var out struct {
		EventID string `json:"event_id"`
	}
	path := "/rooms/" + url.PathEscape(roomID) + "/redact/" + url.PathEscape(eventID) + "/" + c.txnID()
	if err := c.put(ctx, path, body, &out); err != nil {
		return "", err
	}
	return out.EventID, nil
}

// Messages fetches the most recent limit events, newest first.
func (c *Client) Messages(ctx context.Context, roomID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	q := url.Values{
		"dir":   {"b"},
		"limit": {strconv.Itoa(limit)},
	}
	var out struct {
		Chunk []Event `json:"chunk"`
	}
	if err := c.get(ctx, "/rooms/"+url.PathEscape(roomID)+"/messages", q, &out); err != nil {
		return nil, err
	}
	return out.Chunk, nil
}

func (c *Client) sendEvent(ctx context.Context, roomID, eventType string, content any) (string, error) {
	var out struct {
		EventID string `json:"event_id"`
	}
	path := "/rooms/" + url.PathEscape(roomID) + "/send/" + url.PathEscape(eventType) + "/" + c.txnID()
	if err := c.put(ctx, path, content, &out); err != nil {
		return "", err
	}
	return out.EventID, nil
}
