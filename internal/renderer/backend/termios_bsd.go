//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package backend

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios  = unix.TIOCGETA
	ioctlWriteTermios = unix.TIOCSETAF // drain output and discard pending input
)
