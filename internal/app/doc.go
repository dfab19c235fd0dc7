// Package app wires the configuration, homeserver client, local store and
// recovery service into the shared context subcommands run against.
package app
