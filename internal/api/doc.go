// Package api handles incoming HTTP requests for the note-card generator:
// the HTML page, the JSON endpoints and their error mapping. It acts as an
// adapter between HTTP clients and the service package.
package api
