package fixtures_test

import (
	"context"
	"os"
	"testing"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/ranking"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/resolve"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/track"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/fixtures"
	"github.com/EliteCheerStats/elite-cheer-stats/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func TestGenerate(t *testing.T) {
	convey.Convey("Given a synthetic season generator", t, func() {
		ctx := context.Background()

		convey.Convey("When generating a clean season", func() {
			config := &fixtures.Config{NumTeams: 10, EventsPerTeam: 4, Workers: 4}
			var stats fixtures.Stats

			rows, err := fixtures.Generate(ctx, config, &stats)

			convey.Convey("Then every team gets its competitions", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(rows, convey.ShouldHaveLength, 40)
				convey.So(stats.TeamsGenerated, convey.ShouldEqual, 10)
				convey.So(stats.RowsGenerated, convey.ShouldEqual, 40)
			})

			convey.Convey("And every row survives field resolution", func() {
				for _, f := range resolve.Records(rows) {
					convey.So(f.TeamKey, convey.ShouldNotBeEmpty)
					convey.So(track.Classify(f), convey.ShouldNotBeEmpty)
					convey.So(f.HasScore, convey.ShouldBeTrue)
				}
			})

			convey.Convey("And the rows aggregate into a full leaderboard", func() {
				ranked := ranking.New().Aggregate(resolve.Records(rows), ranking.Filters{MinEvents: 1})
				convey.So(ranked, convey.ShouldHaveLength, 10)
			})
		})

		convey.Convey("When every row is degraded", func() {
			config := &fixtures.Config{NumTeams: 8, EventsPerTeam: 3, Workers: 2, MessyRatio: 1.0}
			var stats fixtures.Stats

			rows, err := fixtures.Generate(ctx, config, &stats)

			convey.Convey("Then resolution still recovers every row", func() {
				convey.So(err, convey.ShouldBeNil)
				for _, f := range resolve.Records(rows) {
					convey.So(f.TeamKey, convey.ShouldNotBeEmpty)
					convey.So(f.HasScore, convey.ShouldBeTrue)
				}
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			config := &fixtures.Config{NumTeams: 4, EventsPerTeam: 2, Workers: 2}
			var stats fixtures.Stats

			_, err := fixtures.Generate(cancelled, config, &stats)

			convey.Convey("Then generation aborts", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
