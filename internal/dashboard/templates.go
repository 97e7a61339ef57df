package dashboard

import (
	"html/template"
	"net/http"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0 auto; max-width: 1100px; padding: 1rem; }
.rover-container { display: flex; gap: 1rem; flex-wrap: wrap; }
.rover-card { cursor: pointer; padding: 1rem 2rem; border: 1px solid #c1440e; background: #fff4ee; }
.info-container { list-style: none; padding: 0; }
.photo-container { display: grid; grid-template-columns: repeat(auto-fill, minmax(220px, 1fr)); gap: .5rem; margin: 1rem 0; }
.photo { width: 100%; }
.status-notice.error { color: #a40000; }
#connection { display: none; color: #a40000; }
</style>
</head>
<body>
<p id="connection">Connection lost. Reload the page to continue.</p>
<div id="root">{{.Body}}</div>
<script>
(function () {
  var root = document.getElementById("root");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    if (msg.type === "render") {
      root.innerHTML = msg.html;
    } else if (msg.type === "error") {
      console.warn("dashboard:", msg.content);
    }
  };
  ws.onclose = function () {
    document.getElementById("connection").style.display = "block";
  };
  root.addEventListener("click", function (ev) {
    var el = ev.target.closest("[data-action]");
    if (!el || ws.readyState !== WebSocket.OPEN) {
      return;
    }
    var msg = { type: el.dataset.action };
    if (el.dataset.rover) {
      msg.rover = el.dataset.rover;
    }
    ws.send(JSON.stringify(msg));
  });
})();
</script>
</body>
</html>
`))

type pageData struct {
	Title string
	Body  template.HTML
}

// ServeIndex serves the page shell with the initial state already rendered.
func (d *Dashboard) ServeIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title: d.view.Title,
		Body:  template.HTML(d.render(d.initialState())),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		d.logger.WithError(err).Error("rendering page shell")
	}
}
