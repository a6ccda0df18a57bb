// Package nightjar hunts ghost components: UI components declared in a
// project that nothing reachable from the entry point ever renders.
package nightjar

// Version is the current Nightjar release.
const Version = "0.3.0"
