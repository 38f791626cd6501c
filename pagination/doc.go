/*
Package pagination carries a resumable scan position across stateless HTTP requests.

A request supplies the optional query parameters top, np and nr:

	page, err := pagination.Decode(q.Get("top"), q.Get("np"), q.Get("nr"))

The store returns the next cursor, which is replayed to the client as a
nextLink fragment holding the original parameters in a fixed order:

	link := pagination.NextLink(page, next, pagination.P("search", search))
	// &top=10&search=abc&np=...&nr=...

An exhausted cursor yields no link. EncodeContinuation packs both cursor
halves into a single URL-safe token for callers that prefer one parameter.
*/
package pagination
