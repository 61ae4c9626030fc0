//go:build !unix

package main

import (
	"context"
	"os"
)

func notifyResize(context.Context) <-chan os.Signal {
	return nil
}
