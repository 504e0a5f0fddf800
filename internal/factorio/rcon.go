package factorio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// RunCommand posts an RCON command and returns the server's reply text.
func (c *Client) RunCommand(ctx context.Context, command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", ErrEmptyCommand
	}

	payload, err := json.Marshal(CommandRequest{Command: command})
	if err != nil {
		return "", fmt.Errorf("encode command: %w", err)
	}

	c.logger.Debug("running rcon command", "command", command)

	body, err := c.post(ctx, "/rcon", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("rcon request: %w", err)
	}

	return decodeCommandResult(body)
}

// decodeCommandResult requires a string result field.
func decodeCommandResult(body []byte) (string, error) {
	var payload struct {
		Result *string `json:"result"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", invalidResponse("decode rcon result: %v", err)
	}
	if payload.Result == nil {
		return "", invalidResponse("rcon: missing result")
	}
	return *payload.Result, nil
}

// Save asks the server to save the map. A blank filename uses the
// server's current save name. It returns the saved file name.
func (c *Client) Save(ctx context.Context, filename string) (string, error) {
	form := url.Values{}
	if name := strings.TrimSpace(filename); name != "" {
		form.Set("filename", name)
	}

	body, err := c.post(ctx, "/save", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("save request: %w", err)
	}

	saved, err := decodeText(body, "save")
	if err != nil {
		return "", err
	}

	c.logger.Info("map saved", "filename", saved)

	return saved, nil
}

// Shutdown asks the server to quit and returns its reply.
func (c *Client) Shutdown(ctx context.Context) (string, error) {
	body, err := c.post(ctx, "/shutdown", "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		return "", fmt.Errorf("shutdown request: %w", err)
	}
	return decodeText(body, "shutdown")
}

// decodeText decodes a JSON string body. The backend double-encodes
// some replies, so a string that itself holds a JSON string is unwrapped.
func decodeText(body []byte, op string) (string, error) {
	var text string
	if err := json.Unmarshal(body, &text); err != nil {
		return "", invalidResponse("decode %s reply: %v", op, err)
	}

	var inner string
	if strings.HasPrefix(text, `"`) && json.Unmarshal([]byte(text), &inner) == nil {
		text = inner
	}

	return text, nil
}
