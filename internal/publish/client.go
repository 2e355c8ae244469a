package publish

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/gridplan/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const defaultConnectTimeout = 15 * time.Second

// Options configures the socket.io connection.
type Options struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool

	// ConnectTimeout bounds the wait for the initial connection. Zero means
	// 15 seconds.
	ConnectTimeout time.Duration
}

// Connect opens a websocket-only socket.io connection and waits until the
// server accepts it.
func Connect(ctx context.Context, opts Options) (*socket.Socket, error) {
	if opts.URL == "" {
		return nil, errors.New("publish URL is empty")
	}
	logger := ctxlog.FromContext(ctx).With("url", opts.URL)

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("publish URL %q must include scheme and host", opts.URL)
	}

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	sopts := socket.DefaultOptions()
	sopts.SetPath(parsedURL.Path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket(opts.Namespace, sopts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Publisher connected.", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("Publisher connection failed.", "error", err)
		select {
		case connectChan <- err:
		default:
		}
	})

	logger.Debug("Connecting publisher...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return io, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", timeout)
	}
}

// Close disconnects a socket returned by Connect.
func Close(ctx context.Context, s *socket.Socket) {
	ctxlog.FromContext(ctx).Debug("Disconnecting publisher.", "sid", s.Id())
	s.Disconnect()
}
