package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	errNotArray   = errors.New("payload is not a JSON array")
	errMissingID  = errors.New("record ID is required")
	errIDType     = errors.New("record ID must be a string or a number")
	errDuplicated = errors.New("duplicate record ID")
)

// wireRecord is the JSON shape served by the collection endpoint.
type wireRecord struct {
	ID        json.RawMessage `json:"id"`
	Name      text            `json:"name"`
	Email     text            `json:"email"`
	Major     text            `json:"major"`
	Stage     text            `json:"stage"`
	Level     text            `json:"level"`
	Avatar    text            `json:"avatar"`
	AvatarURL text            `json:"avatarUrl,omitempty"`
	CreatedAt text            `json:"createdAt"`
}

// text is an optional string attribute. Any JSON value other than a string
// (null, number, bool, object, array) decodes as empty.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		s = ""
	}
	*t = text(s)
	return nil
}

// Decode parses a JSON array of records.
// IDs may be strings or numbers and must be unique within the payload.
func Decode(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotArray
	}

	var wire []wireRecord
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}

	records := make([]Record, 0, len(wire))
	seen := make(map[string]struct{}, len(wire))
	for i := range wire {
		w := &wire[i]
		id, err := parseID(w.ID)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("record %d: %w %q", i, errDuplicated, id)
		}
		seen[id] = struct{}{}

		avatar := w.Avatar
		if avatar == "" {
			avatar = w.AvatarURL
		}
		records = append(records, Reconstruct(id, Fields{
			Name:      string(w.Name),
			Email:     string(w.Email),
			Major:     string(w.Major),
			Stage:     string(w.Stage),
			Level:     string(w.Level),
			AvatarURL: string(avatar),
			CreatedAt: string(w.CreatedAt),
		}))
	}
	return records, nil
}

// Encode serializes records in the endpoint's wire shape. Decode(Encode(r)) yields r.
func Encode(records []Record) ([]byte, error) {
	wire := make([]wireRecord, len(records))
	for i := range records {
		r := &records[i]
		id, err := json.Marshal(r.id)
		if err != nil {
			return nil, fmt.Errorf("marshal id: %w", err)
		}
		wire[i] = wireRecord{
			ID:        id,
			Name:      text(r.name),
			Email:     text(r.email),
			Major:     text(r.major),
			Stage:     text(r.stage),
			Level:     text(r.level),
			Avatar:    text(r.avatarURL),
			CreatedAt: text(r.createdAt),
		}
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("marshal records: %w", err)
	}
	return data, nil
}

func parseID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errMissingID
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: %w", errIDType, err)
		}
		if s == "" {
			return "", errMissingID
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", errIDType
	}
	return n.String(), nil
}
