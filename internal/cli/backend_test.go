package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/steviee/factorio-dash/internal/factorio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend serves canned replies for every backend endpoint
type fakeBackend struct {
	mu       sync.Mutex
	requests []string
	forms    []string
	status   int
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{status: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /players", func(w http.ResponseWriter, r *http.Request) {
		fb.reply(w, r, `{"count":2,"players":{"bob":{"name":"bob","online":false},"alice":{"name":"alice","online":true}}}`)
	})
	mux.HandleFunc("GET /admins", func(w http.ResponseWriter, r *http.Request) {
		fb.reply(w, r, `[{"name":"zed","online":true},{"name":"amy","online":false}]`)
	})
	mux.HandleFunc("GET /seed", func(w http.ResponseWriter, r *http.Request) {
		fb.reply(w, r, `1234567`)
	})
	mux.HandleFunc("GET /uptime", func(w http.ResponseWriter, r *http.Request) {
		fb.reply(w, r, `{"hours":1,"seconds":4}`)
	})
	mux.HandleFunc("POST /rcon", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.forms = append(fb.forms, string(body))
		fb.mu.Unlock()
		fb.reply(w, r, `{"result":"done"}`)
	})
	mux.HandleFunc("POST /save", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		fb.mu.Lock()
		fb.forms = append(fb.forms, r.PostForm.Encode())
		fb.mu.Unlock()
		fb.reply(w, r, `"_autosave1.zip"`)
	})
	mux.HandleFunc("POST /shutdown", func(w http.ResponseWriter, r *http.Request) {
		fb.reply(w, r, `"Server is shutting down"`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return fb, server
}

func (fb *fakeBackend) reply(w http.ResponseWriter, r *http.Request, body string) {
	fb.mu.Lock()
	fb.requests = append(fb.requests, r.Method+" "+r.URL.Path)
	status := fb.status
	fb.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"detail":"bad command"}`))
		return
	}
	_, _ = w.Write([]byte(body))
}

func (fb *fakeBackend) paths() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]string(nil), fb.requests...)
}

func (fb *fakeBackend) bodies() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]string(nil), fb.forms...)
}

func (fb *fakeBackend) setStatus(status int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.status = status
}

func testClient(server *httptest.Server) *factorio.Client {
	return factorio.NewClient(&factorio.Config{
		BaseURL: server.URL,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestRunPlayers(t *testing.T) {
	_, server := newFakeBackend(t)

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runPlayers(context.Background(), &out, testClient(server), false))

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "Players (2):", lines[0])
		assert.Contains(t, lines[1], "alice")
		assert.Contains(t, lines[1], "Online")
		assert.Contains(t, lines[2], "bob")
		assert.Contains(t, lines[2], "Offline")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, runPlayers(context.Background(), &out, testClient(server), true))

		var result struct {
			Status string `json:"status"`
			Data   struct {
				Count   int               `json:"count"`
				Players []factorio.Player `json:"players"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, "success", result.Status)
		assert.Equal(t, 2, result.Data.Count)
		assert.Equal(t, []factorio.Player{{Name: "alice", Online: true}, {Name: "bob"}}, result.Data.Players)
	})
}

func TestRunAdmins(t *testing.T) {
	_, server := newFakeBackend(t)

	var out bytes.Buffer
	require.NoError(t, runAdmins(context.Background(), &out, testClient(server), false))

	output := out.String()
	assert.Contains(t, output, "Admins (2):")
	assert.Less(t, strings.Index(output, "zed"), strings.Index(output, "amy"), "backend order is kept")
}

func TestRunInfo(t *testing.T) {
	_, server := newFakeBackend(t)

	var out bytes.Buffer
	require.NoError(t, runInfo(context.Background(), &out, testClient(server), false))

	assert.Contains(t, out.String(), "Seed:      1234567")
	assert.Contains(t, out.String(), "Game Time: 1h 4s\n")
}

func TestRunRCON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fb, server := newFakeBackend(t)

		var out bytes.Buffer
		require.NoError(t, runRCON(context.Background(), &out, testClient(server), false, "  /time "))

		assert.Equal(t, "done\n", out.String())
		bodies := fb.bodies()
		require.Len(t, bodies, 1)
		assert.JSONEq(t, `{"command":"/time"}`, bodies[0])
	})

	t.Run("application error", func(t *testing.T) {
		fb, server := newFakeBackend(t)
		fb.setStatus(http.StatusBadRequest)

		var out bytes.Buffer
		err := runRCON(context.Background(), &out, testClient(server), true, "/nope")
		require.Error(t, err)

		var appErr *factorio.ApplicationError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "bad command", appErr.Message())

		var result Output
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, "error", result.Status)
		assert.Contains(t, result.Error, "bad command")
	})

	t.Run("blank command", func(t *testing.T) {
		fb, server := newFakeBackend(t)

		err := runRCON(context.Background(), io.Discard, testClient(server), false, "   ")
		require.ErrorIs(t, err, factorio.ErrEmptyCommand)
		assert.Empty(t, fb.paths())
	})
}

func TestRunSave(t *testing.T) {
	fb, server := newFakeBackend(t)

	var out bytes.Buffer
	require.NoError(t, runSave(context.Background(), &out, testClient(server), false, "before-nukes"))

	assert.Equal(t, "Game saved to _autosave1.zip\n", out.String())
	bodies := fb.bodies()
	require.Len(t, bodies, 1)
	assert.Equal(t, "filename=before-nukes", bodies[0])
}

func TestShutdownCommand(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		stdin        string
		wantOutput   string
		wantShutdown bool
	}{
		{
			name:         "force skips prompt",
			args:         []string{"shutdown", "--force"},
			wantOutput:   "Server shutting down",
			wantShutdown: true,
		},
		{
			name:         "confirmed",
			args:         []string{"shutdown"},
			stdin:        "y\n",
			wantOutput:   "Server is shutting down",
			wantShutdown: true,
		},
		{
			name:       "declined",
			args:       []string{"shutdown"},
			stdin:      "n\n",
			wantOutput: "Shutdown cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, server := newFakeBackend(t)
			isolateConfig(t)
			t.Setenv("FACTORIO_DASH_BACKEND_URL", server.URL)

			cmd := NewRootCommand("dev", "unknown", "unknown", "unknown")
			cmd.SetArgs(tt.args)
			cmd.SetIn(strings.NewReader(tt.stdin))
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(io.Discard)

			require.NoError(t, cmd.Execute())
			assert.Contains(t, out.String(), tt.wantOutput)

			if tt.wantShutdown {
				assert.Equal(t, []string{"POST /shutdown"}, fb.paths())
			} else {
				assert.Empty(t, fb.paths())
			}
		})
	}
}

func TestBackendCommands_Execute(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     []string
		wantPath []string
	}{
		{
			name:     "players",
			args:     []string{"players"},
			want:     []string{"Players (2):", "alice"},
			wantPath: []string{"GET /players"},
		},
		{
			name:     "admins json",
			args:     []string{"--json", "admins"},
			want:     []string{`"status": "success"`, `"name": "zed"`},
			wantPath: []string{"GET /admins"},
		},
		{
			name:     "rcon joins arguments",
			args:     []string{"rcon", "/promote", "alice"},
			want:     []string{"done"},
			wantPath: []string{"POST /rcon"},
		},
		{
			name:     "save without filename",
			args:     []string{"save"},
			want:     []string{"Game saved to _autosave1.zip"},
			wantPath: []string{"POST /save"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, server := newFakeBackend(t)
			isolateConfig(t)
			t.Setenv("FACTORIO_DASH_BACKEND_URL", server.URL)

			output := runRoot(t, tt.args...)

			for _, want := range tt.want {
				assert.Contains(t, output, want)
			}
			assert.Equal(t, tt.wantPath, fb.paths())
		})
	}
}

func TestBackendCommands_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	isolateConfig(t)
	t.Setenv("FACTORIO_DASH_BACKEND_URL", url)

	cmd := NewRootCommand("dev", "unknown", "unknown", "unknown")
	cmd.SetArgs([]string{"--json", "players"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, factorio.IsTransportError(err))

	var result Output
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Error, "failed to load players")
}
