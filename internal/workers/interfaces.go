// Package workers provides the background workers of the vault client.
//
// The only worker today is [Queue], the single-worker FIFO that serialises
// key derivations so at most one runs at a time. [Workers] starts and stops
// a set of workers together.
package workers

// Worker is the interface that must be implemented by any background worker.
//
// Run must not block: implementations start their own goroutines. Stop
// blocks until the worker has finished the work it already accepted.
type Worker interface {
	Run()
	Stop()
}
