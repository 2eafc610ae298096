// Package cli assembles the cement command-line interface: the Cobra root
// command with its persistent configuration and logging flags, the Viper-backed
// configuration initialization with embedded defaults, and the run subcommand
// registration.
package cli
