/*
Package fungible defines the interfaces shared by the ledger packages:
storage, transactions, messages, handlers and decorators, queries and
genesis initialization. It also contains the account identity types
(Address, Condition) and helpers to carry block information in a context.

A chain runs every transaction strictly one after another. Handlers never
see partially applied state of another transaction, so none of the
extensions built on top of this package need locking.
*/
package fungible
