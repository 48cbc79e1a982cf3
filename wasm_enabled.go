//go:build js && wasm

package main

import (
	"syscall/js"
)

func getUsername() string {
	// Retrieve parameter from JavaScript global scope.
	return js.Global().Get("username").String()
}

// The browser has no disk: recordings and crash dumps only go to the server.
func WriteFile(name string, data []byte) {
}
