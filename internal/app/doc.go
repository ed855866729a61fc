// Package app wires the storefront together: config and prefs, the shop
// client, the catalog and cart stores, cart sync and the terminal UI.
//
// NewEngine builds the state components without touching the network, which
// lets tests drive them against a stub API. Run is the process entry point.
package app
