package model_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"fastbreak/internal/domain/model"
)

func TestProjectionRow(t *testing.T) {
	Convey("Given a projection row with gaps", t, func() {
		row := model.ProjectionRow{
			Name: "A",
			Stats: map[model.Category]float64{
				model.Points: 12.5,
				model.Blocks: 0,
			},
		}

		Convey("Then present values come back with ok=true, zeroes included", func() {
			v, ok := row.Value(model.Points)
			So(ok, ShouldBeTrue)
			So(v, ShouldAlmostEqual, 12.5)

			v, ok = row.Value(model.Blocks)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 0)
		})

		Convey("Then an absent category is distinguishable from a zero", func() {
			v, ok := row.Value(model.Rebounds)
			So(ok, ShouldBeFalse)
			So(v, ShouldEqual, 0)
		})
	})
}

func TestMatchedPlayer(t *testing.T) {
	Convey("Given matched and unmatched players", t, func() {
		with := model.MatchedPlayer{Name: "A", Row: &model.ScoredRow{}}
		without := model.MatchedPlayer{Name: "B"}

		Convey("Then Matched follows the row pointer", func() {
			So(with.Matched(), ShouldBeTrue)
			So(without.Matched(), ShouldBeFalse)
		})
	})
}

func TestDefaultCategories(t *testing.T) {
	Convey("Given the default category list", t, func() {
		cats := model.DefaultCategories()

		Convey("Then it is the standard eight in report order", func() {
			So(cats, ShouldResemble, []model.Category{
				model.Points, model.Rebounds, model.Assists, model.Steals,
				model.Blocks, model.ThreesMade, model.FieldGoalPct, model.FreeThrowPct,
			})
		})
	})
}
