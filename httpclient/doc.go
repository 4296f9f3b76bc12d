// Package httpclient provides a small HTTP adapter and typed REST helpers.
//
// The Adapter applies a base URL, default headers, auth, TLS, a timeout and
// a generated request ID to every request. Each call is sent exactly once.
//
//	a, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Auth:    httpclient.BearerAuth(token),
//	})
//
// The REST helpers build the body or URL from plain maps and slices and
// decode the JSON response into T:
//
//	// POST /users with {"name":"alice"}
//	u, err := httpclient.PostJSON[User](a, ctx, "/users", map[string]any{"name": "alice"}, nil)
//
//	// GET /users?active=true&page=2
//	list, err := httpclient.GetQuery[[]User](a, ctx, "/users", map[string]any{"page": 2, "active": true}, nil)
//
//	// DELETE /users/42
//	_, err = httpclient.DeletePath[struct{}](a, ctx, "/users", []any{42}, nil)
//
// A non-2xx status yields an *Error classified by status (auth, not found,
// rate limit, validation, server) along with any decodable body.
package httpclient
