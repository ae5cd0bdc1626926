//go:build !cgo

package main

import (
	"errors"

	"github.com/gogpu/ggui"
)

func runWindow(ggui.Config, int, int) error {
	return errors.New("ggdemo: -window needs a cgo build")
}
