package fungibletest

import "github.com/iov-one/fungible"

// calls counts invocations of a mock, failed ones included.
type calls struct {
	check, deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler returns the configured results, or the error when one is set.
type Handler struct {
	calls
	CheckResult   fungible.CheckResult
	CheckErr      error
	DeliverResult fungible.DeliverResult
	DeliverErr    error
}

var _ fungible.Handler = (*Handler)(nil)

func (h *Handler) Check(fungible.Context, fungible.KVStore, fungible.Tx) (*fungible.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(fungible.Context, fungible.KVStore, fungible.Tx) (*fungible.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// Decorator passes the call on to the next handler unless the matching
// error is set.
type Decorator struct {
	calls
	CheckErr   error
	DeliverErr error
}

var _ fungible.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx, next fungible.Checker) (*fungible.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx, next fungible.Deliverer) (*fungible.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// WriteHandler sets Key to Value and then fails with Err, if any. It
// shows whether the writes of a failed transaction were kept.
type WriteHandler struct {
	Key, Value []byte
	Err        error
}

var _ fungible.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(_ fungible.Context, db fungible.KVStore, _ fungible.Tx) (*fungible.CheckResult, error) {
	db.Set(h.Key, h.Value)
	if h.Err != nil {
		return nil, h.Err
	}
	return &fungible.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(_ fungible.Context, db fungible.KVStore, _ fungible.Tx) (*fungible.DeliverResult, error) {
	db.Set(h.Key, h.Value)
	if h.Err != nil {
		return nil, h.Err
	}
	return &fungible.DeliverResult{}, nil
}

// PanicHandler panics with Msg on every call.
type PanicHandler struct {
	Msg string
}

var _ fungible.Handler = PanicHandler{}

func (p PanicHandler) Check(fungible.Context, fungible.KVStore, fungible.Tx) (*fungible.CheckResult, error) {
	panic(p.Msg)
}

func (p PanicHandler) Deliver(fungible.Context, fungible.KVStore, fungible.Tx) (*fungible.DeliverResult, error) {
	panic(p.Msg)
}
