package track_test

import (
	"testing"

	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/model"
	"github.com/EliteCheerStats/elite-cheer-stats/internal/domain/track"
	"github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	convey.Convey("Given resolved record fields", t, func() {
		convey.Convey("When level and age are both present", func() {
			f := model.Fields{Level: "L5", AgeBracket: "Senior"}
			convey.So(track.Classify(f), convey.ShouldEqual, "L5 Senior")
		})

		convey.Convey("When the flex and d2 flags are set", func() {
			f := model.Fields{Level: "L4", AgeBracket: "Senior", Flex: true, D2: true}
			convey.So(track.Classify(f), convey.ShouldEqual, "L4 Senior Flex D2")
		})

		convey.Convey("When only one classification part exists", func() {
			convey.So(track.Classify(model.Fields{Level: "L3"}), convey.ShouldEqual, "L3")
			convey.So(track.Classify(model.Fields{AgeBracket: "Youth"}), convey.ShouldEqual, "Youth")
			convey.So(track.Classify(model.Fields{D2: true}), convey.ShouldEqual, "D2")
		})

		convey.Convey("When nothing is classifiable", func() {
			convey.Convey("Then the label is empty and the record cannot be grouped", func() {
				convey.So(track.Classify(model.Fields{}), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("Then size never contributes to the track", func() {
			with := track.Classify(model.Fields{Level: "L5", AgeBracket: "Senior", Size: "Large"})
			without := track.Classify(model.Fields{Level: "L5", AgeBracket: "Senior"})
			convey.So(with, convey.ShouldEqual, without)
		})
	})
}

func TestBucket(t *testing.T) {
	convey.Convey("Given a track label and a resolved size", t, func() {
		convey.Convey("When the size resolved", func() {
			convey.So(track.Bucket("L5 Senior", "Large"), convey.ShouldEqual, "L5 Senior Large")
		})

		convey.Convey("When the size did not resolve", func() {
			convey.Convey("Then no placeholder is surfaced", func() {
				convey.So(track.Bucket("L5 Senior", ""), convey.ShouldEqual, "L5 Senior")
			})
		})
	})
}
