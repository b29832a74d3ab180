// Package websocket pushes solver events to browsers and other live clients.
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client joins one room, given as the ?room=
// query parameter of the upgrade request, and receives every event
// broadcast to that room. Events with an empty room go to every client.
//
// Message Protocol:
//
// Clients only listen; anything they send is discarded. Each event arrives
// as one JSON text frame:
//
//	{"room": "table-1", "event": "solve_result", "data": {...}, "timestamp": "..."}
//
// Events: solve_result (data is a service.SolveResult), anagram_result and
// dictionary_updated.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("room"))
//	})
//	hub.BroadcastSolveResult("table-1", result)
//
// Concurrency:
//
// Registration, removal and fan-out run on the hub goroutine. Broadcasting
// never blocks the caller; a client whose send buffer is full is dropped.
package websocket
