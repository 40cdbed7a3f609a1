// Package storeerr turns failures from the document store and the HTTP
// framework into the errors rendered to API clients.
//
// Store failures of any backend become a 501 whose message starts with
// "MongoDB Exception: ". Anything unrecognised becomes a 500 whose message
// starts with "Server Exception: ".
package storeerr
