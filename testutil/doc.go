// Package testutil provides testing utilities for graphmaps.
//
// This package is intended for use in tests only. It provides a seeded
// random source and a driver that applies random lifecycle operations to a
// universe so index invariants can be checked after every step.
//
//	rng := testutil.NewRNG(seed)
//	testutil.Drive(t, rng, u, 1000, func(op testutil.Op) {
//	    if op == testutil.OpMutate {
//	        idx.Set(rng.Pick(u), rng.Zipf(8, 1.2))
//	    }
//	    checkInvariants(t, u, idx)
//	})
package testutil
