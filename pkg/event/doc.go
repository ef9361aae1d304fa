// Package event provides the synchronous multicast streams that form controls
// use to announce status changes and that forms use to announce submission.
//
// Emissions run on the emitting goroutine, in subscription order, before Emit
// returns. This mirrors the single-threaded event dispatch the message
// components are written against.
package event
