package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"whatsupp/internal/api"
)

const (
	maxChatBodyBytes = 1 << 20

	ChatPlaceholderReply = "Got it. Chat is not connected yet. Next step is wiring this to search + filters and then the database."
)

var errTrailingData = errors.New("trailing data after json body")

type ChatResponse struct {
	Reply    string `json:"reply"`
	Received string `json:"received"`
}

// Chat echoes the message back with a fixed reply. A missing or non-string
// message is treated as "".
func (h Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	message, err := readChatMessage(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.WriteError(w, http.StatusRequestEntityTooLarge, api.MsgBodyTooLarge)
			return
		}
		api.WriteError(w, http.StatusBadRequest, api.MsgInvalidJSON)
		return
	}

	api.WriteJSON(w, http.StatusOK, ChatResponse{
		Reply:    ChatPlaceholderReply,
		Received: message,
	})
}

// readChatMessage only parses JSON bodies; any other content type counts as an
// empty body.
func readChatMessage(w http.ResponseWriter, r *http.Request) (string, error) {
	if !isJSON(r.Header.Get("Content-Type")) {
		return "", nil
	}

	var body any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes))
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", err
	}
	// Exactly one JSON value; anything but whitespace after it is malformed.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return "", err
	}

	obj, ok := body.(map[string]any)
	if !ok {
		return "", nil
	}
	msg, _ := obj["message"].(string)
	return msg, nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
