//go:build !linux

package cogs

import "errors"

func EnterSandbox() error {
	return errors.New("sandbox is only supported on linux")
}
