/*
Package relay delivers messages between chains.

A handler on the source chain calls Outbox.Send. The message is wrapped in
a Packet that gets the next sequence number for its destination and is
stored in the outbox as part of the same transaction. A transaction that
fails leaves no packet behind. The destination must be a registered peer.

A Relayer reads packets from the source chain outbox, signs each of them
with the key of the source chain and submits them to the destination
chain in a DeliverPacketMsg. DeliverHandler accepts a packet only from a
known peer with a valid origin signature and only if it carries the next
expected sequence of that peer. This gives at most once, in order
delivery. Packets are never removed from the outbox, so a relayer that
retries until the destination inbox caught up gives at least once
delivery.
*/
package relay
