// ABOUTME: Scoped use of a Client that always releases its transport afterwards
// ABOUTME: Sync and async variants close the matching transport on return or panic

package assistant

// Scoped runs fn with c and then releases the synchronous transport, even if
// fn returns an error or panics.
func Scoped(c *Client, fn func(*Client) error) error {
	defer func() { _ = c.CloseSync() }()
	return fn(c)
}

// ScopedAsync runs fn with c and then releases the asynchronous transport.
func ScopedAsync(c *Client, fn func(*Client) error) error {
	defer func() { _ = c.Close() }()
	return fn(c)
}
