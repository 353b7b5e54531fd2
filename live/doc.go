// Package live streams generation progress to websocket subscribers.
//
// A Hub keeps the connected clients. Hub.Options plugs it into the
// collapse hooks so every collapse, contradiction and restart is
// broadcast as a JSON Message; Hub.Publish announces the final grid or
// the failure. Handler upgrades HTTP requests and keeps each subscriber
// registered until it disconnects.
//
// Clients never send anything meaningful; inbound frames are discarded.
// A client whose write fails or times out is dropped.
package live
