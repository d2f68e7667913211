package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/roboscout/internal/scheduler"
)

type countingReloader struct {
	calls atomic.Int32
	err   error
}

func (r *countingReloader) Reload(context.Context) (int, error) {
	r.calls.Add(1)
	return 1, r.err
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestScheduler(t *testing.T) {
	Convey("Given a scheduler with a short interval", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		r := &countingReloader{}
		s, err := scheduler.New(r, 20*time.Millisecond)
		So(err, ShouldBeNil)

		Convey("When it is started", func() {
			So(s.Start(ctx), ShouldBeNil)

			Convey("Then the reloader is called repeatedly until stopped", func() {
				So(waitFor(func() bool { return r.calls.Load() >= 2 }), ShouldBeTrue)
				So(s.Stop(), ShouldBeNil)
				after := r.calls.Load()
				time.Sleep(60 * time.Millisecond)
				So(r.calls.Load(), ShouldEqual, after)
			})
		})

		Convey("When reloads fail", func() {
			r.err = errors.New("disk gone")
			So(s.Start(ctx), ShouldBeNil)

			Convey("Then the job keeps running", func() {
				So(waitFor(func() bool { return r.calls.Load() >= 2 }), ShouldBeTrue)
				So(s.Stop(), ShouldBeNil)
			})
		})
	})

	Convey("Given a non-positive interval", t, func() {
		_, err := scheduler.New(&countingReloader{}, 0)
		So(errors.Is(err, scheduler.ErrInvalidInterval), ShouldBeTrue)
	})
}
