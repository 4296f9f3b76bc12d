package redistest

import (
	"fmt"

	"github.com/alicebob/miniredis/v2"
)

// State is a copy of a database's keys grouped by Redis type. Keys of
// other types are not captured.
type State struct {
	Strings    map[string]string
	Lists      map[string][]string
	Sets       map[string][]string
	Hashes     map[string]map[string]string
	SortedSets map[string]map[string]float64
}

func capture(srv *miniredis.Miniredis) *State {
	st := &State{
		Strings:    map[string]string{},
		Lists:      map[string][]string{},
		Sets:       map[string][]string{},
		Hashes:     map[string]map[string]string{},
		SortedSets: map[string]map[string]float64{},
	}
	for _, key := range srv.Keys() {
		switch srv.Type(key) {
		case "string":
			if v, err := srv.Get(key); err == nil {
				st.Strings[key] = v
			}
		case "list":
			if v, err := srv.List(key); err == nil {
				st.Lists[key] = v
			}
		case "set":
			if v, err := srv.Members(key); err == nil {
				st.Sets[key] = v
			}
		case "hash":
			if fields, err := srv.HKeys(key); err == nil {
				h := make(map[string]string, len(fields))
				for _, f := range fields {
					h[f] = srv.HGet(key, f)
				}
				st.Hashes[key] = h
			}
		case "zset":
			if members, err := srv.ZMembers(key); err == nil {
				z := make(map[string]float64, len(members))
				for _, m := range members {
					if score, err := srv.ZScore(key, m); err == nil {
						z[m] = score
					}
				}
				st.SortedSets[key] = z
			}
		}
	}
	return st
}

func (st *State) load(srv *miniredis.Miniredis) error {
	for key, v := range st.Strings {
		if err := srv.Set(key, v); err != nil {
			return fmt.Errorf("redistest: restore string %q: %w", key, err)
		}
	}
	for key, vs := range st.Lists {
		if _, err := srv.Push(key, vs...); err != nil {
			return fmt.Errorf("redistest: restore list %q: %w", key, err)
		}
	}
	for key, vs := range st.Sets {
		if _, err := srv.SetAdd(key, vs...); err != nil {
			return fmt.Errorf("redistest: restore set %q: %w", key, err)
		}
	}
	for key, h := range st.Hashes {
		for f, v := range h {
			srv.HSet(key, f, v)
		}
	}
	for key, z := range st.SortedSets {
		for m, score := range z {
			if _, err := srv.ZAdd(key, score, m); err != nil {
				return fmt.Errorf("redistest: restore sorted set %q: %w", key, err)
			}
		}
	}
	return nil
}
