package ws

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/xoxo/internal/domain"
	"github.com/pkg/errors"
)

// Dial joins the match queue of the server at addr (host:port) as uuid.
func Dial(ctx context.Context, addr string, uuid string) (domain.Client, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: gamePath}
	header := http.Header{domain.ClientUuidHeader: []string{uuid}}
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "dial '%s'", u.String())
	}
	return newClient(conn, uuid), nil
}
