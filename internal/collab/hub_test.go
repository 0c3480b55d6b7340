package collab

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/glyphforge/glyphforge/backend-go/internal/document"
)

func newTestHub() *Hub {
	loader := func(projectID string) (*document.FontDocument, error) {
		return document.NewEmptyDocument(projectID, "Test Font", "glyph_a"), nil
	}
	saver := func(projectID string, doc *document.FontDocument) error { return nil }
	return NewHub(loader, saver, time.Minute)
}

// joinTestClient adds a connectionless client straight to a room. Send only
// touches the buffered channel, so no websocket is needed.
func joinTestClient(h *Hub, userID, clientID string) *Client {
	c := NewClient(h, nil, userID, userID, "font_t", clientID)
	h.addClient(c)
	return c
}

// drainMessages decodes everything buffered on the client's send channel.
func drainMessages(t *testing.T, c *Client) []Message {
	t.Helper()
	var msgs []Message
	for {
		select {
		case data := <-c.send:
			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("unmarshal queued message: %v", err)
			}
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func findMessage(msgs []Message, msgType string) (Message, bool) {
	for _, m := range msgs {
		if m.Type == msgType {
			return m, true
		}
	}
	return Message{}, false
}

func TestOpSubmitDefaultsToActiveGlyph(t *testing.T) {
	h := newTestHub()
	sender := joinTestClient(h, "user_a", "client_1")
	peer := joinTestClient(h, "user_b", "client_2")
	drainMessages(t, sender)
	drainMessages(t, peer)

	// The sender opens glyph_a via presence, then submits a paths op with no
	// glyph ID.
	presence, _ := json.Marshal(PresencePayload{GlyphID: "glyph_a"})
	h.handlePresenceUpdate(sender, &Message{Type: TypePresenceUpdate, Payload: presence})

	if got := sender.ActiveGlyph(); got != "glyph_a" {
		t.Fatalf("ActiveGlyph = %q, want glyph_a", got)
	}

	submit, _ := json.Marshal(OperationSubmitPayload{Operation: Operation{
		ID:    "op_1",
		Type:  OpGlyphPathsApply,
		Paths: json.RawMessage(`[{"id":"path_1","kind":"freehand","subtype":"pen","points":[{"x":0,"y":0},{"x":10,"y":0}]}]`),
	}})
	h.handleOpSubmit(sender, &Message{Type: TypeOpSubmit, Payload: submit})

	ackMsg, ok := findMessage(drainMessages(t, sender), TypeOpAck)
	if !ok {
		t.Fatal("sender did not receive an ack")
	}
	var ack OperationAckPayload
	if err := json.Unmarshal(ackMsg.Payload, &ack); err != nil {
		t.Fatalf("unmarshal ack: %v", err)
	}
	if ack.OperationID != "op_1" {
		t.Errorf("ack operation = %q, want op_1", ack.OperationID)
	}

	broadcastMsg, ok := findMessage(drainMessages(t, peer), TypeOpBroadcast)
	if !ok {
		t.Fatal("peer did not receive the broadcast")
	}
	var broadcast OperationBroadcastPayload
	if err := json.Unmarshal(broadcastMsg.Payload, &broadcast); err != nil {
		t.Fatalf("unmarshal broadcast: %v", err)
	}
	if broadcast.Operation.GlyphID != "glyph_a" {
		t.Errorf("broadcast glyph = %q, want glyph_a", broadcast.Operation.GlyphID)
	}

	glyph := h.rooms["font_t"].state.GetDocument().Glyphs["glyph_a"]
	if len(glyph.Paths) != 1 || glyph.Paths[0].ID != "path_1" {
		t.Errorf("glyph paths = %v", glyph.Paths)
	}
}

func TestOpSubmitWithoutOpenGlyphIsRejected(t *testing.T) {
	h := newTestHub()
	sender := joinTestClient(h, "user_a", "client_1")
	drainMessages(t, sender)

	submit, _ := json.Marshal(OperationSubmitPayload{Operation: Operation{
		ID:    "op_1",
		Type:  OpGlyphPathsApply,
		Paths: json.RawMessage(`[]`),
	}})
	h.handleOpSubmit(sender, &Message{Type: TypeOpSubmit, Payload: submit})

	if _, ok := findMessage(drainMessages(t, sender), TypeOpNack); !ok {
		t.Fatal("expected a nack for an op with no resolvable glyph")
	}
}

func TestIsGlyphScoped(t *testing.T) {
	scoped := map[string]bool{
		OpGlyphPathsApply: true,
		OpGlyphAdvance:    true,
		OpGlyphDelete:     true,
		OpGlyphCreate:     false,
		OpFontRename:      false,
	}
	for opType, want := range scoped {
		if got := isGlyphScoped(opType); got != want {
			t.Errorf("isGlyphScoped(%q) = %v, want %v", opType, got, want)
		}
	}
}

func TestNewHubDefaultsSaveInterval(t *testing.T) {
	loader := func(projectID string) (*document.FontDocument, error) { return nil, nil }
	saver := func(projectID string, doc *document.FontDocument) error { return nil }
	if h := NewHub(loader, saver, 0); h.saveInterval != defaultSaveInterval {
		t.Errorf("saveInterval = %v, want %v", h.saveInterval, defaultSaveInterval)
	}
}
