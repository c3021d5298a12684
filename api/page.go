package api

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(indexHTML))
}

// The button and the Enter key both submit the form, so every trigger goes
// through the same generate request.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>QR Code Generator</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #f4f4f4;
    color: #222;
    display: flex;
    justify-content: center;
    align-items: center;
    min-height: 100vh;
  }
  .card {
    background: #fff;
    border: 1px solid #ddd;
    border-radius: 12px;
    padding: 24px 50px;
    text-align: center;
    width: 400px;
  }
  form { display: flex; flex-direction: column; align-items: center; }
  #text { width: 300px; height: 30px; padding: 0 8px; font-size: 14px; }
  #frame {
    width: 300px; height: 300px;
    margin: 10px 0;
    display: flex;
    align-items: center;
    justify-content: center;
    border: 1px solid #eee;
  }
  #frame img { width: 300px; height: 300px; image-rendering: pixelated; }
  button { width: 100px; height: 30px; }
  #status { font-size: 13px; color: #666; margin-top: 8px; min-height: 1em; }
  #status.error { color: #c0392b; }
</style>
</head>
<body>
<div class="card">
  <form id="form">
    <input id="text" type="text" autocomplete="off" autofocus>
    <div id="frame"></div>
    <button type="submit">Generate QR</button>
  </form>
  <div id="status"></div>
</div>
<script>
(function() {
  var form = document.getElementById('form');
  var input = document.getElementById('text');
  var frame = document.getElementById('frame');
  var statusEl = document.getElementById('status');

  function show(message, isError) {
    statusEl.textContent = message || '';
    statusEl.className = isError ? 'error' : '';
  }

  form.addEventListener('submit', function(ev) {
    ev.preventDefault();
    fetch('/generate', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({ text: input.value })
    })
      .then(function(r) { return r.json(); })
      .then(function(data) {
        if (data.error) {
          show('Error generating QR code: ' + data.error, true);
          return;
        }
        if (data.status === 'empty') {
          show(data.message, false);
          return;
        }
        var img = document.createElement('img');
        img.setAttribute('alt', 'QR Code');
        img.setAttribute('src', 'data:image/png;base64,' + data.png);
        while (frame.firstChild) frame.removeChild(frame.firstChild);
        frame.appendChild(img);
        show('Version ' + data.version + ' (' + data.size + 'x' + data.size + '), level ' + data.level + ', ' + data.mode + ' mode', false);
      })
      .catch(function() {
        show('Connection error', true);
      });
  });
})();
</script>
</body>
</html>`
