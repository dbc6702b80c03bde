/*
Package application is a library for building servers and tools on top
of the credential operations of package protocol.

Config

This module implements the configuration layer shared by all executables:
a common section holding the logger settings, and loaders for the TOML
(default) and YAML encodings.

Encoding

This module implements the message encoding and decoding between the
server and its callers. Messages are JSON encoded protocol commands and
results.

Logger

This module implements a generic logging system that can be used by any
executable of this module.

ServerBase

This module provides the network layer of a server: it listens on Unix
sockets or TLS-protected TCP connections, decodes commands, serialises
state-changing commands against concurrent ones and writes the results
back. SendRequest is the caller side of the same connection.
*/
package application
