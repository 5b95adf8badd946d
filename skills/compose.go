// Package skills implements the composable robot behaviors that sit on top
// of the motion core: go_get_ball, pass_to, place_ball, shoot, and
// intercept. Each is a long-lived function over a handful of shared
// primitives — enable/disable dribbler, request kick, wait until possession
// changes — composed with race, timeout, and join helpers. All composition
// is plain goroutines and contexts, the same cancellation shape the rest of
// this repo uses: canceling a skill cancels whatever goto or wait it is
// currently racing.
package skills

import (
	"context"
	"errors"
	"time"

	"fieldctl/robot"
	"fieldctl/worldmodel"
)

// ErrPassTimedOut is returned by PassTo when the receiver never reports
// possession within the deadline.
var ErrPassTimedOut = errors.New("skills: pass timed out")

// race runs every fn concurrently against a shared cancelable context; the
// first to return wins, and every other fn is canceled.
func race(ctx context.Context, fns ...func(context.Context) error) error {
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make(chan error, len(fns))
	for _, fn := range fns {
		fn := fn
		go func() { errs <- fn(raceCtx) }()
	}
	return <-errs
}

// join runs every fn concurrently and waits for all of them to return. The
// first non-nil error observed is returned after every fn has finished; a
// canceled ctx is propagated to every fn, not just the one that failed.
func join(ctx context.Context, fns ...func(context.Context) error) error {
	errs := make(chan error, len(fns))
	for _, fn := range fns {
		fn := fn
		go func() { errs <- fn(ctx) }()
	}

	var first error
	for range fns {
		if err := <-errs; err != nil && first == nil {
			first = err
		}
	}
	return first
}

// withTimeout runs fn under a context that additionally expires after d: a
// race between fn and a delay, with fn dropped (canceled) on the delay
// winning.
func withTimeout(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(timeoutCtx)
}

// waitUntilHasBall suspends until self reports possession, re-checking on
// every world update.
func waitUntilHasBall(ctx context.Context, w *worldmodel.World, self *robot.Ally) error {
	for !self.HasBall() {
		if err := w.NextUpdate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// sleep suspends for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
