//go:build unix

package transport

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// setNoDelayFallback sets TCP_NODELAY via a raw syscall for net.Conn values
// that expose a syscall.Conn but aren't a *net.TCPConn (e.g. wrapped
// connections from a custom Dialer).
func setNoDelayFallback(conn net.Conn) {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return
	}
	_ = raw.Control(func(fd uintptr) {
		_ = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	})
}
