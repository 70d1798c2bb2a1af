package katcp

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
)

// ValidationError reports that the endpoint rejected the arguments of a
// request ("invalid" reply status). Callers treat this as a soft,
// per-endpoint failure rather than a transport fault.
type ValidationError struct {
	Name   string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("katcp: request %s rejected: %s", e.Name, e.Detail)
}

// Client is a synchronous KATCP client over a single TCP connection.
// Requests are serialized; the protocol has no interleaving here.
type Client struct {
	addr string
	mu   sync.Mutex
	conn net.Conn
	r    *bufio.Reader
}

// Dial connects to a digitiser control endpoint, retrying with
// exponential backoff until the deadline of ctx or maxRetries elapses.
// Commands themselves are never retried; only connection establishment.
func Dial(ctx context.Context, addr string, maxRetries uint64) (*Client, error) {
	c := &Client{addr: addr}
	op := func() error {
		d := net.Dialer{Timeout: 5 * time.Second}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		c.conn = conn
		c.r = bufio.NewReader(conn)
		return nil
	}
	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, fmt.Errorf("katcp: dial %s: %w", addr, err)
	}
	return c, nil
}

// Addr returns the remote endpoint address.
func (c *Client) Addr() string { return c.addr }

// Close shuts the connection down.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Request sends one request and reads lines until the matching reply
// arrives. Informs received before the reply are collected and returned
// alongside it. An "invalid" reply status is surfaced as *ValidationError.
func (c *Client) Request(ctx context.Context, name string, args ...string) (Message, []Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return Message{}, nil, fmt.Errorf("katcp: not connected to %s", c.addr)
	}

	deadline := time.Now().Add(30 * time.Second)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		return Message{}, nil, err
	}

	req := NewRequest(name, args...)
	if _, err := fmt.Fprintf(c.conn, "%s\n", req.String()); err != nil {
		return Message{}, nil, fmt.Errorf("katcp: send %s: %w", name, err)
	}

	var informs []Message
	for {
		line, err := c.r.ReadString('\n')
		if err != nil {
			return Message{}, informs, fmt.Errorf("katcp: read reply for %s: %w", name, err)
		}
		msg, err := Parse(line)
		if err != nil {
			return Message{}, informs, err
		}
		switch msg.Type {
		case Inform:
			informs = append(informs, msg)
		case Reply:
			if msg.Name != name {
				return Message{}, informs, fmt.Errorf("katcp: reply %s does not match request %s", msg.Name, name)
			}
			if len(msg.Arguments) > 0 && msg.Arguments[0] == StatusInvalid {
				detail := ""
				if len(msg.Arguments) > 1 {
					detail = msg.Arguments[1]
				}
				return msg, informs, &ValidationError{Name: name, Detail: detail}
			}
			return msg, informs, nil
		default:
			return Message{}, informs, fmt.Errorf("katcp: unexpected request line %q from server", line)
		}
	}
}
