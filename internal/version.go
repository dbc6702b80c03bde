// Package internal holds build information shared by the executables.
package internal

// Version is the version of the sdt executables.
const Version = "0.1.0"
