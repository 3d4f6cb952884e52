package fetch_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/adapters/fetch"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/adapters/store"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
	"github.com/EliteCheerStats/elite-cheer-stats/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

// staticFetcher returns fixed rows or a fixed error on every call.
type staticFetcher struct {
	rows []model.ResultRecord
	err  error
}

func (f *staticFetcher) FetchResults(ctx context.Context, q store.Query) ([]model.ResultRecord, error) {
	return f.rows, f.err
}

// sequencedFetcher blocks its first call until that call's context is
// cancelled; later calls return immediately.
type sequencedFetcher struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	rows    []model.ResultRecord
}

func (f *sequencedFetcher) FetchResults(ctx context.Context, q store.Query) ([]model.ResultRecord, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()

	if call == 1 {
		close(f.started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.rows, nil
}

func TestRefresh(t *testing.T) {
	convey.Convey("Given a fetch coordinator", t, func() {
		ctx := context.Background()

		convey.Convey("When a single refresh completes", func() {
			fetcher := &staticFetcher{rows: []model.ResultRecord{{"team_id": "t-1"}}}
			coord := fetch.NewCoordinator(fetcher)

			rows, err := coord.Refresh(ctx, store.Query{})

			convey.Convey("Then the rows are returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(rows, convey.ShouldHaveLength, 1)
			})

			convey.Convey("And the token advances", func() {
				convey.So(coord.Token(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When a newer refresh starts while one is in flight", func() {
			fetcher := &sequencedFetcher{
				started: make(chan struct{}),
				rows:    []model.ResultRecord{{"team_id": "t-2"}},
			}
			coord := fetch.NewCoordinator(fetcher)

			type result struct {
				rows []model.ResultRecord
				err  error
			}
			firstDone := make(chan result, 1)
			go func() {
				rows, err := coord.Refresh(ctx, store.Query{LevelPrefix: "L5"})
				firstDone <- result{rows: rows, err: err}
			}()

			// Wait until the first fetch holds its token, then supersede it.
			<-fetcher.started
			rows, err := coord.Refresh(ctx, store.Query{LevelPrefix: "L3"})
			first := <-firstDone

			convey.Convey("Then the newer refresh wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(rows, convey.ShouldHaveLength, 1)
			})

			convey.Convey("And the superseded refresh is discarded, not surfaced", func() {
				convey.So(first.err, convey.ShouldWrap, fetch.ErrSuperseded)
				convey.So(first.rows, convey.ShouldBeNil)
			})

			convey.Convey("And the token reflects both refreshes", func() {
				convey.So(coord.Token(), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When the fetcher fails", func() {
			wantErr := errors.New("store down")
			coord := fetch.NewCoordinator(&staticFetcher{err: wantErr})

			rows, err := coord.Refresh(ctx, store.Query{})

			convey.Convey("Then the error propagates unless superseded", func() {
				convey.So(err, convey.ShouldWrap, wantErr)
				convey.So(rows, convey.ShouldBeNil)
			})
		})
	})
}
