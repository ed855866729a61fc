package cartsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/shop"
)

const defaultCallTimeout = 10 * time.Second

// ErrStaleSession marks a fetched cart that was discarded because the session
// changed while the request was in flight.
var ErrStaleSession = errors.New("session changed before cart arrived")

// Options configures a Client.
type Options struct {
	API         shop.API
	Cart        *cart.Store
	Session     *Session
	Notifier    notify.Notifier
	Logger      *slog.Logger
	CallTimeout time.Duration
}

// Client mirrors local cart mutations to the backend and installs the
// server's cart when a session starts. It owns no cart state.
type Client struct {
	api      shop.API
	cart     *cart.Store
	session  *Session
	notifier notify.Notifier
	logger   *slog.Logger
	timeout  time.Duration

	ctx      context.Context
	inflight sync.WaitGroup
}

// New builds a Client and subscribes it to the cart's mutations. Calls are
// bound to ctx; cancelling it abandons in-flight requests.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("api is nil")
	}
	if opts.Cart == nil {
		return nil, fmt.Errorf("cart is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c := &Client{
		api:      opts.API,
		cart:     opts.Cart,
		session:  opts.Session,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		timeout:  opts.CallTimeout,
		ctx:      ctx,
	}
	if c.session == nil {
		c.session = &Session{}
	}
	if c.notifier == nil {
		c.notifier = notify.Discard
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.timeout <= 0 {
		c.timeout = defaultCallTimeout
	}
	c.cart.Subscribe(func(m cart.Mutation) { c.Push(m) })
	return c, nil
}

// Session exposes the session the client gates on.
func (c *Client) Session() *Session {
	return c.session
}

// Push sends a mutation to the backend. It returns nil without calling out
// when no session is active.
func (c *Client) Push(m cart.Mutation) *Task {
	token := c.session.Token()
	if token == "" {
		return nil
	}

	task := newTask("cart " + m.Op.String())
	req := m.Request()
	c.spawn(task, func(ctx context.Context) error {
		var err error
		var success string
		switch m.Op {
		case cart.OpUpdate:
			err = c.api.UpdateCart(ctx, token, req)
			success = "Cart Updated"
		default:
			err = c.api.AddToCart(ctx, token, req)
			success = "Added to Cart"
		}
		if err != nil {
			c.logger.Warn("cart sync failed",
				"op", m.Op.String(), "item_id", req.ItemID, "size", req.Size,
				"color", req.Color, "quantity", req.Quantity, "version", m.Version, "error", err)
			c.notifier.Notify(notify.Error, shop.UserMessage(err))
			return fmt.Errorf("%s: %w", task.Name, err)
		}
		c.logger.Debug("cart sync acknowledged", "op", m.Op.String(), "item_id", req.ItemID, "version", m.Version)
		c.notifier.Notify(notify.Success, success)
		return nil
	})
	return task
}

// SetToken switches the session. An empty token signs out and clears the
// cart; any other token starts a fetch of that user's cart, which replaces
// the local cart only if the token is still active when the response lands.
func (c *Client) SetToken(token string) *Task {
	generation := c.session.set(token)
	token = c.session.Token()
	if token == "" {
		c.cart.ReplaceIf(nil, func() bool { return c.session.isCurrent(generation) })
		return nil
	}

	task := newTask("cart fetch")
	c.spawn(task, func(ctx context.Context) error {
		data, err := c.api.GetCart(ctx, token)
		if err != nil {
			if !c.session.isCurrent(generation) {
				c.logger.Debug("ignoring cart fetch failure for superseded session", "error", err)
				return ErrStaleSession
			}
			c.logger.Warn("cart fetch failed", "error", err)
			c.notifier.Notify(notify.Error, shop.UserMessage(err))
			return fmt.Errorf("%s: %w", task.Name, err)
		}
		lines := cart.FromCartData(data, c.logger)
		if !c.cart.ReplaceIf(lines, func() bool { return c.session.isCurrent(generation) }) {
			c.logger.Debug("discarding cart fetched for superseded session")
			return ErrStaleSession
		}
		c.logger.Info("cart loaded from server", "lines", len(lines))
		return nil
	})
	return task
}

// Wait blocks until every in-flight call has finished.
func (c *Client) Wait() {
	c.inflight.Wait()
}

func (c *Client) spawn(task *Task, call func(ctx context.Context) error) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
		defer cancel()
		task.finish(call(ctx))
	}()
}
