// Package pipes lets an HTTP client and server talk over a unix socket, so that tests
// can serve requests in-process without allocating a TCP port.
package pipes

import (
	"context"
	"net"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const unixNetwork = "unix"

// DialerFunc has the signature of http.Transport.DialContext.
type DialerFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// CreateListener creates the parent directory of socketPath if necessary and starts
// listening on a unix socket there.
func CreateListener(socketPath string) (net.Listener, error) {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create socket directory")
	}
	l, err := net.Listen(unixNetwork, socketPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to listen on %s", socketPath)
	}
	return l, nil
}

// CreateDialer returns a DialerFunc that connects to socketPath regardless of the
// address in the request URL.
func CreateDialer(socketPath string) DialerFunc {
	var d net.Dialer
	return func(ctx context.Context, _, _ string) (net.Conn, error) {
		return d.DialContext(ctx, unixNetwork, socketPath)
	}
}
