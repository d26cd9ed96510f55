// Package input decodes analysis requests from JSON documents and raw
// RFC 5322 messages.
package input

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"

	"github.com/mikey/inbox-analyzer/internal/core"
)

const (
	// snippetLength is the number of body characters kept as a message snippet
	snippetLength = 200
	maxBodySize   = 64 * 1024
)

var headerDecoder = new(mime.WordDecoder)

// ReadAnalysisRequest decodes a full analysis request
func ReadAnalysisRequest(r io.Reader) (*core.AnalysisRequest, error) {
	var req core.AnalysisRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to decode analysis request: %w", err)
	}
	for i := range req.Senders {
		if req.Senders[i].Category == "" {
			req.Senders[i].Category = core.CategoryUnknown
		}
	}
	return &req, nil
}

// ReadSenderGroup decodes a single sender group
func ReadSenderGroup(r io.Reader) (*core.SenderGroup, error) {
	var group core.SenderGroup
	if err := json.NewDecoder(r).Decode(&group); err != nil {
		return nil, fmt.Errorf("failed to decode sender group: %w", err)
	}
	if group.Category == "" {
		group.Category = core.CategoryUnknown
	}
	return &group, nil
}

// ReadMessage parses a raw message into an Email. The snippet is the start
// of the plain-text body with whitespace collapsed.
func ReadMessage(r io.Reader) (*core.Email, error) {
	msg, err := mail.ReadMessage(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to parse email: %w", err)
	}

	body, err := bodyText(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to read email body: %w", err)
	}

	snippet := strings.Join(strings.Fields(body), " ")
	if runes := []rune(snippet); len(runes) > snippetLength {
		snippet = string(runes[:snippetLength])
	}

	return &core.Email{
		ID:      msg.Header.Get("Message-Id"),
		Sender:  decodeHeader(msg.Header.Get("From")),
		Subject: decodeHeader(msg.Header.Get("Subject")),
		Date:    msg.Header.Get("Date"),
		Snippet: snippet,
	}, nil
}

// bodyText returns the text/plain parts of a multipart message, or the whole
// body of any other message
func bodyText(msg *mail.Message) (string, error) {
	body := io.LimitReader(msg.Body, maxBodySize)

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		raw, err := io.ReadAll(body)
		return string(raw), err
	}

	var text bytes.Buffer
	mr := multipart.NewReader(body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if text.Len() > 0 {
				break
			}
			return "", err
		}

		partType := "text/plain"
		if ct := part.Header.Get("Content-Type"); ct != "" {
			if partType, _, err = mime.ParseMediaType(ct); err != nil {
				continue
			}
		}
		if partType != "text/plain" {
			continue
		}
		if _, err := text.ReadFrom(part); err != nil {
			continue
		}
		text.WriteByte('\n')
	}
	return text.String(), nil
}

func decodeHeader(value string) string {
	decoded, err := headerDecoder.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}
