package dedupe_test

import (
	"testing"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/dedupe"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestCompetitionKey(t *testing.T) {
	convey.Convey("Given resolved record fields", t, func() {
		convey.Convey("When an explicit event id exists", func() {
			f := model.Fields{EventKey: "evt-42", SourceURL: "https://x", EventName: "MAJORS"}
			convey.So(dedupe.CompetitionKey(f), convey.ShouldEqual, "evt-42")
		})

		convey.Convey("When only a source URL exists", func() {
			f := model.Fields{SourceURL: "https://results.example.com/123"}
			convey.So(dedupe.CompetitionKey(f), convey.ShouldEqual, "https://results.example.com/123")
		})

		convey.Convey("When only name and date exist", func() {
			f := model.Fields{EventName: "MAJORS", WeekendDate: "2026-01-17"}
			convey.So(dedupe.CompetitionKey(f), convey.ShouldEqual, "MAJORS@2026-01-17")
		})

		convey.Convey("When nothing usable exists", func() {
			convey.So(dedupe.CompetitionKey(model.Fields{}), convey.ShouldBeEmpty)
		})
	})
}

func TestCollapse(t *testing.T) {
	convey.Convey("Given multiple rounds recorded for one competition", t, func() {
		records := []model.Fields{
			{EventKey: "evt-42", Score: 9.1, HasScore: true},
			{EventKey: "evt-42", Score: 9.4, HasScore: true},
			{EventKey: "evt-42", Score: 8.8, HasScore: true},
		}

		best := dedupe.Collapse(records)

		convey.Convey("Then the competition contributes exactly one score, the maximum", func() {
			convey.So(best, convey.ShouldHaveLength, 1)
			convey.So(best["evt-42"], convey.ShouldEqual, 9.4)
		})
	})

	convey.Convey("Given rounds across several competitions", t, func() {
		records := []model.Fields{
			{EventKey: "evt-1", Score: 90.0, HasScore: true},
			{EventKey: "evt-1", Score: 92.5, HasScore: true},
			{EventKey: "evt-2", Score: 88.0, HasScore: true},
			{EventName: "Battle at the Beach", WeekendDate: "2026-02-07", Score: 91.0, HasScore: true},
		}

		best := dedupe.Collapse(records)

		convey.Convey("Then each competition keeps its own best score", func() {
			convey.So(best, convey.ShouldHaveLength, 3)
			convey.So(best["evt-1"], convey.ShouldEqual, 92.5)
			convey.So(best["evt-2"], convey.ShouldEqual, 88.0)
			convey.So(best["Battle at the Beach@2026-02-07"], convey.ShouldEqual, 91.0)
		})
	})

	convey.Convey("Given records without usable scores or identities", t, func() {
		records := []model.Fields{
			{EventKey: "evt-1"},
			{Score: 95.0, HasScore: true},
			{EventKey: "evt-2", Score: 0, HasScore: true},
		}

		best := dedupe.Collapse(records)

		convey.Convey("Then scoreless and keyless records never contribute", func() {
			convey.So(best, convey.ShouldHaveLength, 1)
		})

		convey.Convey("And a genuine zero score is preserved, not discarded", func() {
			score, ok := best["evt-2"]
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(score, convey.ShouldEqual, 0)
		})
	})
}
