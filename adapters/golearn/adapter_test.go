package golearn

import (
	"testing"

	"github.com/sjwhitworth/golearn/base"
	"github.com/smartystreets/goconvey/convey"

	fr "github.com/wdm0006/wrangle/pkg/frame"
)

func customers() *fr.Frame {
	age := fr.NewIntColumn("age", 4)
	income := fr.NewFloatColumn("annual_income", 4)
	gender := fr.NewStringColumn("gender", 4)
	for i, g := range []string{"Male", "Female", "Female", "Male"} {
		age.Set(i, int64(20+i))
		income.Set(i, float64(15+i))
		gender.Set(i, g)
	}
	income.SetNull(2)
	f, _ := fr.FromColumns(age, gender, income)
	return f
}

func TestDenseInstances(t *testing.T) {
	convey.Convey("Given a prepared customer frame", t, func() {
		f := customers()

		convey.Convey("Converting with gender as the class", func() {
			inst, err := ToDenseInstances(f, "gender")
			convey.So(err, convey.ShouldBeNil)

			cols, rows := inst.Size()
			convey.So(cols, convey.ShouldEqual, 3)
			convey.So(rows, convey.ShouldEqual, 4)

			classes := inst.AllClassAttributes()
			convey.So(len(classes), convey.ShouldEqual, 1)
			convey.So(classes[0].GetName(), convey.ShouldEqual, "gender")

			convey.Convey("Reading the instances back", func() {
				back, err := FromDenseInstances(inst)
				convey.So(err, convey.ShouldBeNil)
				convey.So(back.Rows(), convey.ShouldEqual, 4)

				age, ok := back.ColumnByName("age")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(age.Kind(), convey.ShouldEqual, fr.KindFloat)
				v, _ := age.Value(3)
				convey.So(v, convey.ShouldEqual, 23.0)

				income, _ := back.ColumnByName("annual_income")
				convey.So(income.IsNull(2), convey.ShouldBeTrue)

				g, _, _ := back.Cell(1, "gender")
				convey.So(g, convey.ShouldEqual, "Female")
			})

			convey.Convey("Splitting for a downstream model", func() {
				train, test := base.InstancesTrainTestSplit(inst, 0.5)
				_, trainRows := train.Size()
				_, testRows := test.Size()
				convey.So(trainRows+testRows, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("An unknown class column is rejected", func() {
			_, err := ToDenseInstances(f, "spending_score")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
