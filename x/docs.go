/*
Package x contains the ledger extensions.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together by the application. This package
itself only declares how handlers learn who signed a transaction,
so that an authentication scheme can be plugged in without the
handlers depending on it.

Note that protobuf types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `ledger.TransferMsg` in place of `ledger.LedgerTransferMsg`.
*/
package x
