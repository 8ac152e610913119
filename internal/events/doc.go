// Package events publishes pipeline progress to interested listeners.
//
// The note-card service emits a ProgressEvent when a step starts, finishes or
// fails. Listeners such as the command line progress display register an
// EventHandler with an emitter and never talk to the service directly.
package events
