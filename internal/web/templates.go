package web

import "html/template"

var scrollPage = template.Must(template.New("scroll").Parse(`<!DOCTYPE html>
<html>
<head><title>Scroll Normalizer</title></head>
<body>
<h1>Scroll Normalizer</h1>
<p>Rewrites the SCROLLS of an SSC file so the chart scrolls at a constant
rate across BPM changes.</p>
<form method="post" enctype="multipart/form-data">
  <input type="file" name="sscfile" accept=".ssc" required>
  <button type="submit">Normalize</button>
</form>
<p><a href="/fake-mines">Fake mines</a> &middot; <a href="/history">History</a></p>
</body>
</html>
`))

var fakeMinesPage = template.Must(template.New("fakemines").Parse(`<!DOCTYPE html>
<html>
<head><title>Fake Mines</title></head>
<body>
<h1>Fake Mines</h1>
<p>Adds a short fake region on every isolated mine in an SSC file so it
can never be hit during gameplay.</p>
<form method="post" enctype="multipart/form-data">
  <input type="file" name="sscfile" accept=".ssc" required>
  <label><input type="checkbox" name="allow_simultaneous">
    Allow simultaneous note &amp; mine</label>
  <label><input type="checkbox" name="allow_split_timing">
    Allow split timing</label>
  <button type="submit">Fix mines</button>
</form>
<p><a href="/scroll-normalizer">Scroll normalizer</a> &middot; <a href="/history">History</a></p>
</body>
</html>
`))

var historyPage = template.Must(template.New("history").Parse(`<!DOCTYPE html>
<html>
<head><title>History</title></head>
<body>
<h1>Recent runs</h1>
<table border="1" cellpadding="4">
<tr><th>When</th><th>Tool</th><th>File</th><th>Actions</th></tr>
{{range .}}<tr>
  <td>{{.Created.Format "2006-01-02 15:04:05"}}</td>
  <td>{{.Tool}}</td>
  <td>{{.Name}}</td>
  <td>{{range .Actions}}{{.}}<br>{{end}}</td>
</tr>
{{end}}</table>
<p><a href="/scroll-normalizer">Scroll normalizer</a> &middot; <a href="/fake-mines">Fake mines</a></p>
</body>
</html>
`))
