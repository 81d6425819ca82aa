// Package http provides HTTP handlers and middleware for the worktime
// calendar API.
//
// The router exposes the following endpoints:
//   - POST /api/login: exchanges the shared password for a session cookie.
//     Body: {"password"}. Response: {"success":true} with an HttpOnly
//     `session` cookie. A wrong password yields 401 {"error":"Invalid password"}.
//   - GET /api/week?start=YYYY-MM-DD: returns the week payload for the week
//     containing the given date: window bounds, roster, blocks, day and
//     person summaries, and the week total.
//   - POST /api/blocks, PATCH /api/blocks/{id}, DELETE /api/blocks/{id}:
//     block mutations. Rejections surface the policy messages joined into a
//     single {"error"} string with status 400. Each successful mutation
//     responds with the refreshed payload of the affected week. The optional
//     X-Actor header attributes the change in the history log.
//   - GET /api/history?limit=N: returns the most recent mutations, newest
//     first (default 3).
//
// Every endpoint except /api/login requires a valid session cookie.
package http
