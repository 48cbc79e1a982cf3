//go:build assert_enabled

package main

import "fmt"

func Assert(condition bool, format string, args ...any) {
	if !condition {
		panic(fmt.Errorf("assert failed: "+format, args...))
	}
}
