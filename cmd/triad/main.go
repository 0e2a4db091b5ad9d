// Command triad drives the triad harmonizer outside a plugin host: it prints
// the plugin's metadata and renders standard MIDI files through it.
package main

func main() {
	Execute()
}
