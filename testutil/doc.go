// Package testutil starts resettable components for the duration of a
// test.
//
//	srv := redistest.NewComponent()
//	testutil.Start(t, srv)
//	...
//	testutil.Reset(t, srv)
package testutil
