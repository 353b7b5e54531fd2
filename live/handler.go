package live

import (
	"net/http"

	"github.com/coder/websocket"
)

// Handler upgrades requests to websocket subscribers of hub. Each
// request is served until the client goes away.
func Handler(hub *Hub) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			hub.logger.Debug("live: accept failed", "err", err)
			return
		}
		hub.Add(conn)
		defer hub.Remove(conn)
		defer conn.Close(websocket.StatusNormalClosure, "")

		ctx := conn.CloseRead(r.Context())
		<-ctx.Done()
	})
}
