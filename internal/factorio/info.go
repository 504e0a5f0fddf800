package factorio

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Seed fetches the map seed.
func (c *Client) Seed(ctx context.Context) (Seed, error) {
	body, err := c.get(ctx, "/seed")
	if err != nil {
		return "", fmt.Errorf("get seed request: %w", err)
	}
	return decodeSeed(body)
}

// decodeSeed accepts a JSON string or number.
func decodeSeed(body []byte) (Seed, error) {
	if !gjson.ValidBytes(body) {
		return "", invalidResponse("seed: not JSON")
	}

	result := gjson.ParseBytes(body)
	switch result.Type {
	case gjson.String:
		return Seed(result.String()), nil
	case gjson.Number:
		return Seed(result.Raw), nil
	default:
		return "", invalidResponse("seed: expected string or number, got %s", result.Type)
	}
}

type uptimePayload struct {
	Hours   *int `json:"hours"`
	Minutes *int `json:"minutes"`
	Seconds *int `json:"seconds"`
}

// Uptime fetches the game time.
func (c *Client) Uptime(ctx context.Context) (*Uptime, error) {
	body, err := c.get(ctx, "/uptime")
	if err != nil {
		return nil, fmt.Errorf("get uptime request: %w", err)
	}
	return decodeUptime(body)
}

// decodeUptime parses an uptime object. Missing components are zero.
func decodeUptime(body []byte) (*Uptime, error) {
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return nil, invalidResponse("uptime: expected object")
	}

	var payload uptimePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, invalidResponse("decode uptime: %v", err)
	}

	uptime := &Uptime{}
	for _, field := range []struct {
		name string
		src  *int
		dst  *int
	}{
		{"hours", payload.Hours, &uptime.Hours},
		{"minutes", payload.Minutes, &uptime.Minutes},
		{"seconds", payload.Seconds, &uptime.Seconds},
	} {
		if field.src == nil {
			continue
		}
		if *field.src < 0 {
			return nil, invalidResponse("uptime: negative %s", field.name)
		}
		*field.dst = *field.src
	}

	return uptime, nil
}
