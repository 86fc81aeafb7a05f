// Package acl implements the Anti-Corruption Layer between the domain and
// the n8n webhook backend. The backend speaks a loosely typed wire dialect
// with Swedish field names, string-encoded numbers and several response
// envelope shapes; everything in this package exists to keep that dialect
// from leaking past the gateway.
package acl
