package swara_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/chintanpandya89/raagbodh/algorithms/swara"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFromFrequency(t *testing.T) {
	Convey("Given a tonic of 261.63 Hz", t, func() {
		tonic := 261.63

		Convey("When the frequency sits exactly k semitones above the tonic", func() {
			for k := 0; k < 24; k++ {
				freq := tonic * math.Pow(2, float64(k)/12.0)
				expected := swara.Swara(k % swara.NumSwaras)

				Convey(fmt.Sprintf("Then %d semitones maps to %s", k, expected), func() {
					So(swara.FromFrequency(freq, tonic), ShouldEqual, expected)
				})
			}
		})

		Convey("When the frequency sits below the tonic", func() {
			Convey("Then a whole octave down still maps to Sa", func() {
				So(swara.FromFrequency(tonic/2, tonic), ShouldEqual, swara.Sa)
			})

			Convey("And a semitone down maps to Ni", func() {
				freq := tonic * math.Pow(2, -1.0/12.0)
				So(swara.FromFrequency(freq, tonic), ShouldEqual, swara.Ni)
			})
		})

		Convey("When the frequency is the unvoiced sentinel", func() {
			Convey("Then the mapping is None", func() {
				So(swara.FromFrequency(swara.Unvoiced, tonic), ShouldEqual, swara.None)
			})
		})

		Convey("When the frequency or tonic is degenerate", func() {
			So(swara.FromFrequency(0, tonic), ShouldEqual, swara.None)
			So(swara.FromFrequency(440, 0), ShouldEqual, swara.None)
		})
	})
}

func TestSwaraLabels(t *testing.T) {
	Convey("Given the canonical swara cycle", t, func() {
		expected := []string{"Sa", "re", "Re", "ga", "Ga", "ma", "Ma", "Pa", "dha", "Dha", "ni", "Ni"}

		Convey("Then String renders the fixed table in order", func() {
			for i, label := range expected {
				So(swara.Swara(i).String(), ShouldEqual, label)
			}
		})

		Convey("And every label parses back to its index", func() {
			for i, label := range expected {
				parsed, err := swara.Parse(label)
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, swara.Swara(i))
			}
		})

		Convey("And the none token round-trips", func() {
			So(swara.None.String(), ShouldEqual, swara.NoneLabel)
			parsed, err := swara.Parse(swara.NoneLabel)
			So(err, ShouldBeNil)
			So(parsed, ShouldEqual, swara.None)
		})

		Convey("And an unknown label is an error", func() {
			_, err := swara.Parse("Do")
			So(err, ShouldNotBeNil)
		})
	})
}
