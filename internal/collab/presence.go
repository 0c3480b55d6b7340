package collab

import (
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
)

// PresenceManager tracks who is in a font room and which glyph each editor
// has open. The glyph roster lets clients mark glyphs that are being edited
// by someone else.
type PresenceManager struct {
	mu      sync.RWMutex
	entries map[string]*PresencePayload // userID -> presence
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		entries: make(map[string]*PresencePayload),
	}
}

func (pm *PresenceManager) Update(userID string, p *PresencePayload) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.entries[userID] = p
}

func (pm *PresenceManager) Remove(userID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.entries, userID)
}

func (pm *PresenceManager) GetAll() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	result := make(map[string]*PresencePayload, len(pm.entries))
	for k, v := range pm.entries {
		result[k] = v
	}
	return result
}

// GlyphEditors groups present user IDs by their open glyph, sorted for
// stable output. Users without an open glyph are not listed.
func (pm *PresenceManager) GlyphEditors() map[string][]string {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	editors := make(map[string][]string)
	for userID, p := range pm.entries {
		if p.GlyphID == "" {
			continue
		}
		editors[p.GlyphID] = append(editors[p.GlyphID], userID)
	}
	for _, ids := range editors {
		sort.Strings(ids)
	}
	return editors
}

// StateMessage snapshots the room's presence for a joining client: everyone's
// last payload plus the glyph roster.
func (pm *PresenceManager) StateMessage() *Message {
	payload, err := json.Marshal(PresenceStatePayload{
		Presences:    pm.GetAll(),
		GlyphEditors: pm.GlyphEditors(),
	})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{
		Type:    TypePresenceState,
		Payload: payload,
	}
}
