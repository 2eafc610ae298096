// Package platform selects the shell interpreter used to execute command
// strings on the current operating system family. It exposes a host probe
// answering whether the host is Unix-like and a profile table mapping each
// family to an interpreter binary and its command flags.
package platform
