package transport

import "net"

// setNoDelay disables Nagle's algorithm on conn. The fast path covers the
// common case of a *net.TCPConn directly from net.Dialer; setNoDelayFallback
// handles other net.Conn types that expose syscall.Conn via a raw
// syscall-level setsockopt on unix. Connections without a socket (such as an
// in-memory pipe) are left as they are.
func setNoDelay(conn net.Conn) {
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
		return
	}
	setNoDelayFallback(conn)
}
