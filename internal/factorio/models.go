package factorio

// Player is a single entry of the player or admin roster.
type Player struct {
	Name   string `json:"name"`
	Online bool   `json:"online"`
}

// PlayerRoster is the response of the players endpoint.
type PlayerRoster struct {
	Count   int               `json:"count"`
	Players map[string]Player `json:"players"`
}

// Seed is the map seed in its textual form. The backend sends either a
// JSON string or a JSON number.
type Seed string

// Uptime is the game time reported by the backend. Absent fields are zero.
type Uptime struct {
	Hours   int `json:"hours,omitempty"`
	Minutes int `json:"minutes,omitempty"`
	Seconds int `json:"seconds,omitempty"`
}

// CommandRequest is the body posted to the rcon endpoint.
type CommandRequest struct {
	Command string `json:"command"`
}

// CommandResponse is the success body of the rcon endpoint.
type CommandResponse struct {
	Result string `json:"result"`
}
