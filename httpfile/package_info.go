// Package httpfile parses ".http" request files.
//
// A file contains one or more requests separated by lines starting with "###". The text
// after the separator names the request. Each request has a request line, optional
// headers, an optional body after a blank line, and an optional response handler
// declared with "> name":
//
//	### Get the greeting
//	GET http://localhost:8080/hello
//	Accept: application/json
//
//	> checkGreeting
//
// Blank lines at the start and end of a body are not part of it.
//
// Response handlers are referenced by name; the player package maps the names to Go
// functions. Embedded "{% ... %}" scripts are not supported.
package httpfile
