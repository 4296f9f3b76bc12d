// Package redistest provides an in-memory Redis server for tests.
//
// Component runs miniredis and implements testutil.TestComponent, so a test
// can start it, point a KeyValueAccess at it and reset or snapshot its
// state between cases:
//
//	srv := redistest.NewComponent()
//	testutil.Start(t, srv)
//
//	kv, err := redis.Init(srv.Host(), srv.Port(), 0, logger.Nop())
//
// Snapshots cover strings, lists, sets, hashes and sorted sets in the
// selected database.
package redistest
