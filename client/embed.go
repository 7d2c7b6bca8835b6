// Package client embeds the browser scripts served by the dev server.
package client

import "embed"

//go:embed src/*.js
var assets embed.FS

// LiveReloadScript is the name of the live-reload client.
const LiveReloadScript = "livereload.js"

// MustGetFile returns the contents of an embedded file.
// Panics if the file doesn't exist.
func MustGetFile(name string) []byte {
	data, err := assets.ReadFile("src/" + name)
	if err != nil {
		panic(err)
	}
	return data
}
