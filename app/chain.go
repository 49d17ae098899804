package app

import (
	"reflect"

	"github.com/iov-one/fungible"
)

/*
Decorators is an ordered list of decorators waiting for the handler they
wrap. The first decorator sees a transaction first:

  app.ChainDecorators(
    utils.NewLogging(),
    utils.NewRecovery(),
    sigs.NewDecorator(),
  ).WithHandler(router)

Nil entries are skipped, which lets a stack be assembled conditionally.
*/
type Decorators struct {
	list []fungible.Decorator
}

// ChainDecorators starts a new list.
func ChainDecorators(ds ...fungible.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a copy of the list with ds appended.
func (d Decorators) Chain(ds ...fungible.Decorator) Decorators {
	list := make([]fungible.Decorator, 0, len(d.list)+len(ds))
	list = append(list, d.list...)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			list = append(list, dec)
		}
	}
	return Decorators{list: list}
}

func isNilDecorator(d fungible.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the list over h.
func (d Decorators) WithHandler(h fungible.Handler) fungible.Handler {
	for i := len(d.list) - 1; i >= 0; i-- {
		h = decorated{decorator: d.list[i], next: h}
	}
	return h
}

// decorated runs a decorator with the rest of the stack as next.
type decorated struct {
	decorator fungible.Decorator
	next      fungible.Handler
}

func (d decorated) Check(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (*fungible.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (*fungible.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.next)
}
