package web

import (
	"html/template"
	"time"

	"github.com/steviee/factorio-dash/internal/dashboard"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="{{.RefreshSeconds}}">
<title>Factorio Server Dashboard</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 1em; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: left; }
.online { color: #218c3a; font-weight: bold; }
.offline { color: #b22222; }
.error { color: #b22222; }
.footer-content { display: flex; gap: 2em; }
footer { border-top: 1px solid #ccc; margin-top: 2em; padding-top: 1em; }
pre { background: #f4f4f4; padding: 0.5em; min-height: 1.5em; }
</style>
</head>
<body>
<h1>Factorio Server Dashboard</h1>
<p class="backend">Backend: {{.Backend}}</p>
<section><h2>Players</h2><div id="players-container">{{.Players}}</div></section>
<section><h2>Admins</h2><div id="admins-container">{{.Admins}}</div></section>
<section>
<h2>RCON</h2>
<form id="rcon-form" method="post" action="/rcon-form">
<input type="text" id="rcon-command" name="command" placeholder="/players online" autocomplete="off">
<button type="submit">Execute</button>
</form>
<pre id="rcon-result">{{.Result}}</pre>
</section>
<footer id="server-info">{{.ServerInfo}}</footer>
</body>
</html>
`))

type pageView struct {
	Backend        string
	RefreshSeconds int
	Players        template.HTML
	Admins         template.HTML
	ServerInfo     template.HTML
	Result         template.HTML
}

const loadingHTML = template.HTML("<p>Loading...</p>")

// newPageView builds the page from a snapshot. Region contents were
// produced by HTMLRenderer and are already escaped.
func newPageView(snap dashboard.Snapshot, backend string, refresh time.Duration) pageView {
	seconds := int(refresh / time.Second)
	if seconds < 1 {
		seconds = 1
	}

	return pageView{
		Backend:        backend,
		RefreshSeconds: seconds,
		Players:        regionHTML(snap, dashboard.PlayersRegion, loadingHTML),
		Admins:         regionHTML(snap, dashboard.AdminsRegion, loadingHTML),
		ServerInfo:     regionHTML(snap, dashboard.ServerInfoRegion, loadingHTML),
		Result:         regionHTML(snap, dashboard.CommandResultRegion, ""),
	}
}

func regionHTML(snap dashboard.Snapshot, id dashboard.RegionID, fallback template.HTML) template.HTML {
	content := snap.Content(id)
	if content == "" {
		return fallback
	}
	//nolint:gosec // G203: region content was escaped by HTMLRenderer
	return template.HTML(content)
}
