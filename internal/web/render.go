package web

import (
	"bytes"
	"html/template"
	"log/slog"

	"github.com/steviee/factorio-dash/internal/dashboard"
	"github.com/steviee/factorio-dash/internal/factorio"
)

var fragments = template.Must(template.New("fragments").Parse(`
{{- define "roster" -}}
<p><strong>Total {{.Title}}: {{.Count}}</strong></p>
<table><thead><tr><th>{{.Column}}</th><th>Status</th></tr></thead><tbody>
{{- range .Rows}}<tr><td>{{.Name}}</td><td class="{{.Class}}">{{.Label}}</td></tr>{{end -}}
</tbody></table>
{{- end -}}

{{- define "footer" -}}
<div class="footer-content">
<span><strong>Seed:</strong> {{.Seed}}</span>
<span><strong>Game Time:</strong> {{.Uptime}}</span>
</div>
{{- end -}}

{{- define "error" -}}<p class="error">{{.}}</p>{{- end -}}

{{- define "text" -}}{{.}}{{- end -}}
`))

type rosterRow struct {
	Name  string
	Class string
	Label string
}

type rosterView struct {
	Title  string
	Column string
	Count  int
	Rows   []rosterRow
}

// HTMLRenderer renders regions as escaped HTML fragments.
type HTMLRenderer struct {
	logger *slog.Logger
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer(logger *slog.Logger) *HTMLRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTMLRenderer{logger: logger}
}

// Players renders the player table.
func (r *HTMLRenderer) Players(roster *factorio.PlayerRoster) string {
	players := dashboard.SortedPlayers(roster)
	return r.execute("roster", rosterView{
		Title:  "Players",
		Column: "Player Name",
		Count:  len(players),
		Rows:   rows(players),
	})
}

// Admins renders the admin table.
func (r *HTMLRenderer) Admins(admins []factorio.Player) string {
	return r.execute("roster", rosterView{
		Title:  "Admins",
		Column: "Admin Name",
		Count:  len(admins),
		Rows:   rows(admins),
	})
}

// Footer renders the server info footer.
func (r *HTMLRenderer) Footer(info dashboard.FooterInfo) string {
	return r.execute("footer", info)
}

// Error renders an error paragraph.
func (r *HTMLRenderer) Error(message string) string {
	return r.execute("error", message)
}

// Text escapes text for display inside a <pre> element.
func (r *HTMLRenderer) Text(text string) string {
	return r.execute("text", text)
}

func (r *HTMLRenderer) execute(name string, data any) string {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("failed to render fragment", "template", name, "error", err)
		return `<p class="error">Render error</p>`
	}
	return buf.String()
}

func rows(players []factorio.Player) []rosterRow {
	out := make([]rosterRow, 0, len(players))
	for _, p := range players {
		class := "offline"
		if p.Online {
			class = "online"
		}
		out = append(out, rosterRow{
			Name:  p.Name,
			Class: class,
			Label: dashboard.StatusLabel(p.Online),
		})
	}
	return out
}
