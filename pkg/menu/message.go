package menu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// ApplicationClickTag prefixes "MC"+id messages.
	ApplicationClickTag = "MC"
	// ContextClickTag prefixes "XC"+json messages.
	ContextClickTag = "XC"
)

var ErrMalformedMessage = errors.New("malformed menu message")

type contextMenuMessage struct {
	MenuItemID string `json:"menuItemID"`
	Data       string `json:"data"`
}

// Event is the decoded form of an outbound message.
type Event struct {
	Kind       Kind
	MenuItemID string
	Data       string
}

func applicationMessage(id string) string {
	return ApplicationClickTag + id
}

func contextMessage(id, data string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(contextMenuMessage{MenuItemID: id, Data: data}); err != nil {
		return "", err
	}
	return ContextClickTag + strings.TrimSuffix(buf.String(), "\n"), nil
}

// ParseMessage decodes a message emitted by Dispatch.
func ParseMessage(msg string) (Event, error) {
	switch {
	case strings.HasPrefix(msg, ApplicationClickTag):
		return Event{Kind: ApplicationMenu, MenuItemID: msg[len(ApplicationClickTag):]}, nil
	case strings.HasPrefix(msg, ContextClickTag):
		var m contextMenuMessage
		if err := json.Unmarshal([]byte(msg[len(ContextClickTag):]), &m); err != nil {
			return Event{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}
		return Event{Kind: ContextMenu, MenuItemID: m.MenuItemID, Data: m.Data}, nil
	default:
		return Event{}, fmt.Errorf("%w: unknown tag in %q", ErrMalformedMessage, msg)
	}
}
