package collab

import "encoding/json"

type Message struct {
	Type      string          `json:"type"`
	ProjectID string          `json:"projectId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	UserID    string          `json:"userId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

type PresencePayload struct {
	Cursor      *CursorPos `json:"cursor,omitempty"`
	GlyphID     string     `json:"glyphId,omitempty"`
	Selection   []string   `json:"selection,omitempty"`
	Tool        string     `json:"tool,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
}

// CursorPos is a collaborator's pointer position in logical canvas units.
type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
	// GlyphEditors groups present user IDs by the glyph they have open, so a
	// joining client can mark busy glyphs without walking every presence.
	GlyphEditors map[string][]string `json:"glyphEditors,omitempty"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Document sync
	TypeDocSync = "doc.sync"

	// Operation message types
	TypeOpSubmit    = "op.submit"
	TypeOpAck       = "op.ack"
	TypeOpNack      = "op.nack"
	TypeOpBroadcast = "op.broadcast"
)

// Operation types a client may submit.
const (
	OpGlyphPathsApply = "glyph.paths.apply"
	OpGlyphAdvance    = "glyph.advance"
	OpGlyphCreate     = "glyph.create"
	OpGlyphDelete     = "glyph.delete"
	OpFontRename      = "font.rename"
)

// Operation represents one document mutation. PathsApply carries the full
// replacement path collection a glyph editing session committed; the server
// applies it atomically and re-broadcasts it.
type Operation struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	ClientSeq int64  `json:"clientSeq"`
	GlyphID   string `json:"glyphId,omitempty"`

	// For glyph.paths.apply
	Paths         json.RawMessage `json:"paths,omitempty"`
	PreviousPaths json.RawMessage `json:"previousPaths,omitempty"`

	// For glyph.advance
	Advance         *float64 `json:"advance,omitempty"`
	PreviousAdvance *float64 `json:"previousAdvance,omitempty"`

	// For glyph.create
	Glyph json.RawMessage `json:"glyph,omitempty"`

	// For glyph.delete
	PreviousGlyph json.RawMessage `json:"previousGlyph,omitempty"`

	// For font.rename
	Name         string `json:"name,omitempty"`
	PreviousName string `json:"previousName,omitempty"`
}

// OperationSubmitPayload is the payload for op.submit messages.
type OperationSubmitPayload struct {
	Operation Operation `json:"operation"`
}

// OperationAckPayload is the payload for op.ack messages.
type OperationAckPayload struct {
	OperationID     string `json:"operationId"`
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

// OperationNackPayload is the payload for op.nack messages.
type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

// OperationBroadcastPayload is the payload for op.broadcast messages.
type OperationBroadcastPayload struct {
	Operation Operation `json:"operation"`
	UserID    string    `json:"userId"`
	ServerSeq int64     `json:"serverSeq"`
}

// DocSyncPayload carries the authoritative document to a joining client.
type DocSyncPayload struct {
	Document  json.RawMessage `json:"document"`
	ServerSeq int64           `json:"serverSeq"`
}
