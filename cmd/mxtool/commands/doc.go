// Package commands defines the mxtool CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - send     Send a message to a room
//   - read     Print recent room messages
//   - edit     Replace the body of a sent message
//   - react    Attach a reaction to an event
//   - redact   Remove an event's content
//   - rooms    List joined rooms
//   - resolve  Resolve a room alias to its id
//   - backup   Key-backup status and restore
//
// # Implementation
//
// The root command loads the config file and builds the dependency graph
// (homeserver client, store, recovery service) before any subcommand runs.
// Room arguments accept an !id, a #alias, or a joined-room name.
package commands
