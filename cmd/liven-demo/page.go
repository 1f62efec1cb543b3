package main

// demoPage is served to the browser and is also what the app binds against
// for each live connection; patches are deltas on this shared initial state.
const demoPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Liven demo</title>
  <style>
    body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
    .liven-loading { opacity: 0.5; }
    .liven-toast-container { position: fixed; top: 1rem; right: 1rem; }
    .liven-toast { padding: 0.5rem 1rem; margin-bottom: 0.5rem; border-radius: 4px; background: #eee; }
    .liven-toast-success { background: #d4edda; }
    .liven-toast-error { background: #f8d7da; }
    .liven-toast-warning { background: #fff3cd; }
  </style>
</head>
<body>
  <div id="liven-toasts" class="liven-toast-container" aria-live="polite"></div>

  <h1>Liven demo</h1>

  <section>
    <div id="panel"><p>Nothing loaded yet.</p></div>
    <a id="refresh" href="/api/panel" data-liven-get data-liven-target="#panel">Refresh panel</a>
  </section>

  <section>
    <div id="result"></div>
    <form id="contact" action="/api/contact" data-liven-post data-liven-target="#result">
      <label>Email <input type="text" name="email"></label>
      <label>Message <textarea name="body"></textarea></label>
      <button type="submit">Send</button>
    </form>
  </section>

  <script src="/client.js"></script>
</body>
</html>
`

// clientJS is the thin browser client: it relays trigger activations to the
// live endpoint and applies the patch frames that come back. Triggers must
// carry an id so the client can address them by selector.
const clientJS = `(function () {
  "use strict";

  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/live");

  function send(kind, selector, values) {
    ws.send(JSON.stringify({ type: "event", event: { kind: kind, selector: selector, values: values } }));
  }

  document.addEventListener("click", function (e) {
    var el = e.target.closest("[data-liven-get]");
    if (!el || !el.id) return;
    e.preventDefault();
    send("click", "#" + el.id);
  });

  document.addEventListener("submit", function (e) {
    var form = e.target.closest("[data-liven-post]");
    if (!form || !form.id) return;
    e.preventDefault();
    var values = {};
    new FormData(form).forEach(function (value, name) { values[name] = String(value); });
    send("submit", "#" + form.id, values);
  });

  function apply(patch) {
    document.querySelectorAll(patch.selector).forEach(function (el) {
      switch (patch.op) {
      case "set-html":
        el.innerHTML = patch.value || "";
        break;
      case "append":
        el.insertAdjacentHTML("beforeend", patch.value || "");
        break;
      case "add-class":
        el.classList.add(patch.name);
        break;
      case "remove-class":
        el.classList.remove(patch.name);
        break;
      case "set-attr":
        el.setAttribute(patch.name, patch.value);
        break;
      case "remove-attr":
        el.removeAttribute(patch.name);
        break;
      }
    });
  }

  ws.onmessage = function (msg) {
    var frame = JSON.parse(msg.data);
    if (frame.type === "patch") {
      (frame.patches || []).forEach(apply);
    }
  };

  document.addEventListener("click", function (e) {
    if (e.target.classList.contains("liven-toast-dismiss")) {
      e.target.closest(".liven-toast").remove();
    }
  });
})();
`
