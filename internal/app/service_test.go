package service_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/adapters/store"
	service "github.com/EliteCheerStats/elite-cheer-stats/internal/app"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/ranking"
	"github.com/EliteCheerStats/elite-cheer-stats/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

// fakeSource serves canned rows and counts fetches.
type fakeSource struct {
	rows     []model.ResultRecord
	err      error
	weekends []string
	fetches  atomic.Int64
}

func (f *fakeSource) FetchResults(ctx context.Context, q store.Query) ([]model.ResultRecord, error) {
	f.fetches.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeSource) SeasonWeekends(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.weekends, nil
}

func seasonRows() []model.ResultRecord {
	return []model.ResultRecord{
		{"team_id": "alpha", "program_name": "Apex", "team_name": "Alpha", "division": "L5 Senior Large", "event_id": "evt-1", "weekend_date": "2025-11-08", "event_score": 90.0},
		{"team_id": "alpha", "program_name": "Apex", "team_name": "Alpha", "division": "L5 Senior Large", "event_id": "evt-1", "weekend_date": "2025-11-08", "event_score": 94.0},
		{"team_id": "alpha", "program_name": "Apex", "team_name": "Alpha", "division": "L5 Senior Large", "event_id": "evt-2", "weekend_date": "2025-12-06", "event_score": 92.0},
		{"team_id": "beta", "program_name": "Apex", "team_name": "Beta", "division": "L5 Senior Small", "event_id": "evt-1", "weekend_date": "2025-11-08", "event_score": 91.0},
		{"team_id": "beta", "program_name": "Apex", "team_name": "Beta", "division": "L5 Senior Small", "event_id": "evt-2", "weekend_date": "2025-12-06", "event_score": 89.0},
	}
}

func TestServiceLifecycle(t *testing.T) {
	convey.Convey("Given a ranking service", t, func() {
		ctx := context.Background()

		convey.Convey("When started without a results source", func() {
			svc := service.New()

			convey.Convey("Then startup fails", func() {
				convey.So(svc.Start(ctx), convey.ShouldWrap, service.ErrNoSource)
			})
		})

		convey.Convey("When started with a source", func() {
			svc := service.New(service.WithSource(&fakeSource{}))

			convey.Convey("Then startup succeeds and is idempotent", func() {
				convey.So(svc.Start(ctx), convey.ShouldBeNil)
				convey.So(svc.Start(ctx), convey.ShouldBeNil)
				svc.Stop()
			})
		})
	})
}

func TestRankings(t *testing.T) {
	convey.Convey("Given a started ranking service", t, func() {
		ctx := context.Background()
		src := &fakeSource{rows: seasonRows()}
		svc := service.New(service.WithSource(src))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		convey.Convey("When computing rankings", func() {
			ranked, err := svc.Rankings(ctx, ranking.Filters{})

			convey.Convey("Then the season standings come back ranked", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ranked, convey.ShouldHaveLength, 2)
				convey.So(ranked[0].TeamName, convey.ShouldEqual, "Alpha")
				convey.So(ranked[0].Rank, convey.ShouldEqual, 1)
				convey.So(ranked[0].AvgScore, convey.ShouldEqual, 93.0)
				convey.So(ranked[0].Track, convey.ShouldEqual, "L5 Senior")
				convey.So(ranked[0].Bucket, convey.ShouldEqual, "L5 Senior Large")
				convey.So(ranked[1].TeamName, convey.ShouldEqual, "Beta")
			})

			convey.Convey("And an identical selection is served from the snapshot", func() {
				before := src.fetches.Load()
				again, err := svc.Rankings(ctx, ranking.Filters{})
				convey.So(err, convey.ShouldBeNil)
				convey.So(again, convey.ShouldResemble, ranked)
				convey.So(src.fetches.Load(), convey.ShouldEqual, before)
			})

			convey.Convey("But a different selection fetches fresh rows", func() {
				before := src.fetches.Load()
				_, err := svc.Rankings(ctx, ranking.Filters{MinEvents: 1})
				convey.So(err, convey.ShouldBeNil)
				convey.So(src.fetches.Load(), convey.ShouldEqual, before+1)
			})
		})

		convey.Convey("When the fetch fails", func() {
			src := &fakeSource{err: errors.New("store down")}
			svc := service.New(service.WithSource(src))
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			ranked, err := svc.Rankings(ctx, ranking.Filters{})

			convey.Convey("Then the caller gets an error and an empty result, never stale data", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(ranked, convey.ShouldBeNil)
			})
		})
	})
}

func TestChartSeries(t *testing.T) {
	convey.Convey("Given a started ranking service", t, func() {
		ctx := context.Background()
		src := &fakeSource{rows: seasonRows()}
		svc := service.New(service.WithSource(src), service.WithChartLimit(1))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		convey.Convey("When deriving the chart series", func() {
			series, err := svc.ChartSeries(ctx, ranking.Filters{})

			convey.Convey("Then only the configured top-N appears", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(series, convey.ShouldHaveLength, 1)
				convey.So(series[0].Label, convey.ShouldEqual, "Alpha")
				convey.So(series[0].Value, convey.ShouldEqual, 93.0)
			})
		})
	})
}

func TestWeekends(t *testing.T) {
	convey.Convey("Given a started ranking service", t, func() {
		ctx := context.Background()

		convey.Convey("When the source lists weekends", func() {
			src := &fakeSource{weekends: []string{"2026-01-17", "2025-12-06"}}
			svc := service.New(service.WithSource(src))
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			weekends, err := svc.Weekends(ctx)

			convey.So(err, convey.ShouldBeNil)
			convey.So(weekends, convey.ShouldResemble, []string{"2026-01-17", "2025-12-06"})
		})

		convey.Convey("When the source fails", func() {
			src := &fakeSource{err: errors.New("rpc down")}
			svc := service.New(service.WithSource(src))
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			_, err := svc.Weekends(ctx)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestGetStats(t *testing.T) {
	convey.Convey("Given a ranking service", t, func() {
		ctx := context.Background()

		convey.Convey("Before starting", func() {
			svc := service.New()
			stats := svc.GetStats()

			convey.So(stats["started"], convey.ShouldBeFalse)
			convey.So(stats, convey.ShouldNotContainKey, "snapshots")
		})

		convey.Convey("After starting", func() {
			svc := service.New(service.WithSource(&fakeSource{rows: seasonRows()}))
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			_, _ = svc.Rankings(ctx, ranking.Filters{})
			stats := svc.GetStats()

			convey.So(stats["started"], convey.ShouldBeTrue)
			convey.So(stats["snapshots"], convey.ShouldEqual, 1)
			convey.So(stats["fetchToken"], convey.ShouldEqual, uint64(1))
		})
	})
}
