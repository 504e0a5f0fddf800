package factorio

import (
	"context"
	"encoding/json"
	"fmt"
)

type playerPayload struct {
	Name   *string `json:"name"`
	Online *bool   `json:"online"`
}

func (p *playerPayload) player() (Player, error) {
	if p == nil {
		return Player{}, fmt.Errorf("null player entry")
	}
	if p.Name == nil || *p.Name == "" {
		return Player{}, fmt.Errorf("player entry without name")
	}
	if p.Online == nil {
		return Player{}, fmt.Errorf("player %q without online flag", *p.Name)
	}
	return Player{Name: *p.Name, Online: *p.Online}, nil
}

type rosterPayload struct {
	Count   *int                      `json:"count"`
	Players map[string]*playerPayload `json:"players"`
}

// Players fetches the player roster.
func (c *Client) Players(ctx context.Context) (*PlayerRoster, error) {
	body, err := c.get(ctx, "/players")
	if err != nil {
		return nil, fmt.Errorf("get players request: %w", err)
	}

	roster, err := decodePlayers(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("player roster retrieved", "count", roster.Count)

	return roster, nil
}

// decodePlayers parses and validates a players payload.
func decodePlayers(body []byte) (*PlayerRoster, error) {
	var payload rosterPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, invalidResponse("decode players: %v", err)
	}

	if payload.Count == nil || *payload.Count < 0 {
		return nil, invalidResponse("players: missing or negative count")
	}
	if payload.Players == nil {
		return nil, invalidResponse("players: missing players mapping")
	}
	if *payload.Count != len(payload.Players) {
		return nil, invalidResponse("players: count %d does not match %d entries", *payload.Count, len(payload.Players))
	}

	roster := &PlayerRoster{
		Count:   *payload.Count,
		Players: make(map[string]Player, len(payload.Players)),
	}
	for key, entry := range payload.Players {
		player, err := entry.player()
		if err != nil {
			return nil, invalidResponse("players[%q]: %v", key, err)
		}
		roster.Players[key] = player
	}

	return roster, nil
}

// Admins fetches the admin roster in the order the backend returns it.
func (c *Client) Admins(ctx context.Context) ([]Player, error) {
	body, err := c.get(ctx, "/admins")
	if err != nil {
		return nil, fmt.Errorf("get admins request: %w", err)
	}

	admins, err := decodeAdmins(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("admin roster retrieved", "count", len(admins))

	return admins, nil
}

// decodeAdmins parses and validates an admins payload.
func decodeAdmins(body []byte) ([]Player, error) {
	var payload []*playerPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, invalidResponse("decode admins: %v", err)
	}
	if payload == nil {
		return nil, invalidResponse("admins: null list")
	}

	admins := make([]Player, 0, len(payload))
	for i, entry := range payload {
		admin, err := entry.player()
		if err != nil {
			return nil, invalidResponse("admins[%d]: %v", i, err)
		}
		admins = append(admins, admin)
	}

	return admins, nil
}
