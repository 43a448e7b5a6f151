package main

// indexHTML is the single-page command UI. The boot ID is embedded so a
// browser holding a form from a previous process can detect the restart.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>deskfit</title>
<style>
  body { font-family: system-ui, sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; }
  form.command { display: flex; gap: .5rem; }
  input[name=query] { flex: 1; padding: .6rem; font-size: 1rem; }
  button { padding: .6rem 1.2rem; }
  pre.result { background: #f5f5f5; padding: 1rem; overflow-x: auto; white-space: pre-wrap; }
  .error { color: #b00020; }
  .tool-tag { color: #666; font-size: .85rem; }
  img.result-image { max-width: 320px; border: 1px solid #ddd; }
  fieldset { margin-top: 2rem; }
</style>
</head>
<body data-boot-id="{{.BootID}}">
<h1>deskfit</h1>
<p>Commands start with a tool keyword: <code>weather london</code>,
<code>news sports</code>, <code>qr code https://example.com</code>,
<code>geo code chennai</code>, <code>route chennai to trichy</code>.</p>

<form class="command" method="post" action="/">
  <input name="query" value="{{.Query}}" placeholder="weather london" autofocus>
  <button type="submit">Run</button>
</form>

{{if .Error}}<pre class="result error">{{.Error}}</pre>{{end}}
{{if .Tool}}<p class="tool-tag">tool: {{.Tool}}</p>{{end}}
{{if .IsImage}}
  <img class="result-image" src="{{.ImageSrc}}" alt="generated image">
  {{if .Result}}<p>{{.Result}}</p>{{end}}
{{else if .Result}}
  <pre class="result">{{urlize .Result}}</pre>
{{end}}

<fieldset>
  <legend>Image converter</legend>
  <form method="post" action="/image-convert" enctype="multipart/form-data">
    <input type="file" name="image" accept="image/*" required>
    <input name="convert_to" placeholder="to png" required>
    <button type="submit">Convert</button>
  </form>
</fieldset>

<script>
  // Clear a stale form if the server restarted since the page was rendered.
  const bootID = document.body.dataset.bootId;
  const stored = sessionStorage.getItem("bootID");
  if (stored && stored !== bootID) {
    document.querySelector("input[name=query]").value = "";
  }
  sessionStorage.setItem("bootID", bootID);
</script>
</body>
</html>
`
