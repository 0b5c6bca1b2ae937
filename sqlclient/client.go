package sqlclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tuannm99/novarel"
	"github.com/tuannm99/novarel/server/relwire"
)

// Client is a simple synchronous client.
// It locks send/recv so you can call Exec concurrently but they'll serialize.
type Client struct {
	conn net.Conn
	mu   sync.Mutex
	id   atomic.Uint64

	// Optional per-request timeout (0 = no timeout).
	rwTimeout time.Duration
}

func Dial(addr string, timeout time.Duration) (*Client, error) {
	return DialContext(context.Background(), addr, timeout)
}

func DialContext(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewClient(c), nil
}

// NewClient wraps an established connection.
func NewClient(conn net.Conn) *Client {
	return &Client{conn: conn}
}

// SetRWTimeout sets a per-Exec read/write deadline.
// Useful to avoid hanging forever if server dies.
func (c *Client) SetRWTimeout(d time.Duration) {
	if c == nil {
		return
	}
	c.rwTimeout = d
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) Exec(sql string) ([]*novarel.Result, error) {
	return c.ExecContext(context.Background(), sql)
}

// ExecContext sends one script. Statement failures come back as
// *novarel.Error together with the results of the statements before it.
func (c *Client) ExecContext(ctx context.Context, sql string) ([]*novarel.Result, error) {
	resp, err := c.roundTrip(ctx, relwire.ExecuteRequest{SQL: sql})
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return resp.Results, resp.Error
	}
	return resp.Results, nil
}

// Tables lists the session's tables in creation order.
func (c *Client) Tables(ctx context.Context) ([]string, error) {
	resp, err := c.roundTrip(ctx, relwire.ExecuteRequest{Op: relwire.OpTables})
	if err != nil {
		return nil, err
	}
	return resp.Tables, nil
}

// Describe returns the definition of one table.
func (c *Client) Describe(ctx context.Context, table string) (*novarel.TableInfo, error) {
	resp, err := c.roundTrip(ctx, relwire.ExecuteRequest{Op: relwire.OpDescribe, Table: table})
	if err != nil {
		return nil, err
	}
	if resp.Table == nil {
		return nil, fmt.Errorf("sqlclient: no description for table %s", table)
	}
	return resp.Table, nil
}

func (c *Client) roundTrip(ctx context.Context, req relwire.ExecuteRequest) (relwire.ExecuteResponse, error) {
	var resp relwire.ExecuteResponse
	if c == nil || c.conn == nil {
		return resp, fmt.Errorf("sqlclient: nil client")
	}

	req.ID = c.id.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Apply deadline if configured or context has deadline.
	if err := c.applyDeadline(ctx); err != nil {
		return resp, err
	}
	defer func() {
		// Clear deadline after request so idle connection doesn't expire.
		_ = c.conn.SetDeadline(time.Time{})
	}()

	if err := relwire.WriteFrame(c.conn, req); err != nil {
		return resp, err
	}
	if err := relwire.ReadFrame(c.conn, &resp); err != nil {
		return resp, err
	}

	if resp.ID != req.ID {
		return resp, fmt.Errorf("sqlclient: response id mismatch: got=%d want=%d", resp.ID, req.ID)
	}
	if resp.Failure != "" {
		return resp, errors.New(resp.Failure)
	}
	return resp, nil
}

func (c *Client) applyDeadline(ctx context.Context) error {
	// Prefer context deadline if present; otherwise use rwTimeout.
	if dl, ok := ctx.Deadline(); ok {
		return c.conn.SetDeadline(dl)
	}
	if c.rwTimeout > 0 {
		return c.conn.SetDeadline(time.Now().Add(c.rwTimeout))
	}
	return nil
}
