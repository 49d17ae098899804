/*
Package ledger implements a single asset token ledger that is replicated
independently on every chain of a network.

Each chain keeps its own account book. A transfer debits the owner on the
chain where it is submitted. When the recipient lives on the same chain it
is credited in the same transaction, otherwise a credit message is handed
to a Sender that delivers it to the target chain, where CreditHandler
applies it. Tokens in flight exist only inside the Sender.

Only the owner of an account can move tokens out of it. Credits are never
authenticated here: the delivery layer is trusted to hand over only
messages that were emitted by a transfer, each exactly once.
*/
package ledger
