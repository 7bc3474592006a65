// Package board holds the placement model of a word-ordering exercise.
//
// A Session owns every piece of state: the Store (which token sits in which
// slot, and the word bank), the SelectionController, the Engine that mutates
// the store, the Validator and one menu per slot. Input layers translate
// their events into Session intents; nothing in this package knows about
// terminals, mice or key codes.
//
// All methods must be called from a single goroutine. Deferred work
// (announcement debounce, the post-swap flash, focus restoration) is armed
// on a schedule.Scheduler and runs when the caller fires it.
package board
