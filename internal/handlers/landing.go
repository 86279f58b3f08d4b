package handlers

import "net/http"

const landingPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Exercise Tracker</title>
</head>
<body>
  <h1>Exercise Tracker</h1>
  <form action="/api/users" method="post">
    <h2>Create a New User</h2>
    <p><code>POST /api/users</code></p>
    <input name="username" placeholder="username">
    <input type="submit" value="Submit">
  </form>
  <form id="exercise-form" method="post">
    <h2>Add exercises</h2>
    <p><code>POST /api/users/:_id/exercises</code></p>
    <input name="_id" id="uid" placeholder=":_id">
    <input name="description" placeholder="description*">
    <input name="duration" placeholder="duration* (mins.)">
    <input name="date" placeholder="date (yyyy-mm-dd)">
    <input type="submit" value="Submit">
  </form>
  <p><strong>GET user's exercise log: </strong><code>GET /api/users/:_id/logs?[from][&amp;to][&amp;limit]</code></p>
  <script>
    document.getElementById("exercise-form").addEventListener("submit", function () {
      this.action = "/api/users/" + document.getElementById("uid").value + "/exercises";
    });
  </script>
</body>
</html>
`

// Landing handles GET / with a small static page describing the API.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(landingPage))
}
