package web

// indexHTML минимальная страница: всё состояние приходит по /ws, кнопки дергают /api.
const indexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Background Remover</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2rem auto; }
#drop { border: 2px dashed #888; padding: 2rem; text-align: center; }
.row { display: flex; gap: 1rem; margin-top: 1rem; }
.row img { max-width: 45%; background: repeating-conic-gradient(#ddd 0 25%, #fff 0 50%) 0 0 / 16px 16px; }
#error { color: #b00; }
</style>
</head>
<body>
<div id="drop">
  <p id="status"></p>
  <input type="file" id="file" accept="image/*">
</div>
<p id="error"></p>
<div>
  <button id="start">Remove background</button>
  <button id="reset">Reset</button>
  <a id="download" href="/api/result">Download PNG</a>
</div>
<div class="row"><img id="source" alt=""><img id="result" alt=""></div>
<script>
const $ = (id) => document.getElementById(id);
function render(v) {
  $("status").textContent = v.status;
  $("error").textContent = v.error || "";
  $("start").disabled = !v.canStart;
  $("reset").disabled = !v.canReset;
  $("file").disabled = !v.canUpload;
  $("download").style.display = v.canDownload ? "" : "none";
  $("source").src = v.sourceUrl || "";
  $("result").src = v.resultUrl || "";
}
async function post(path, body) {
  const r = await fetch(path, { method: "POST", body });
  render(await r.json());
}
function upload(file) {
  const fd = new FormData();
  fd.append("file", file);
  post("/api/image", fd);
}
$("file").onchange = (e) => e.target.files[0] && upload(e.target.files[0]);
$("drop").ondragover = (e) => e.preventDefault();
$("drop").ondrop = (e) => { e.preventDefault(); e.dataTransfer.files[0] && upload(e.dataTransfer.files[0]); };
$("start").onclick = () => post("/api/remove");
$("reset").onclick = () => post("/api/reset");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (m) => render(JSON.parse(m.data));
</script>
</body>
</html>
`
