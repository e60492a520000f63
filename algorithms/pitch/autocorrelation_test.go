package pitch_test

import (
	"math"
	"testing"

	"github.com/chintanpandya89/raagbodh/algorithms/pitch"
	. "github.com/smartystreets/goconvey/convey"
)

func sineFrame(freq float64, sampleRate, n int, amplitude float64) []float64 {
	frame := make([]float64, n)
	for i := range frame {
		frame[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return frame
}

func TestEstimator_EstimateFrequency(t *testing.T) {
	Convey("Given an autocorrelation estimator at 44.1 kHz", t, func() {
		estimator := pitch.NewEstimator(44100)

		Convey("When estimating a 440 Hz sine frame", func() {
			frame := sineFrame(440.0, 44100, 2048, 0.6)
			got := estimator.EstimateFrequency(frame)

			Convey("Then the estimate falls within 1% of 440 Hz", func() {
				So(got, ShouldBeGreaterThan, 440.0*0.99)
				So(got, ShouldBeLessThan, 440.0*1.01)
			})

			Convey("And repeated calls yield identical output", func() {
				So(estimator.EstimateFrequency(frame), ShouldEqual, got)
				So(estimator.EstimateFrequency(frame), ShouldEqual, got)
			})
		})

		Convey("When estimating a lower 220 Hz sine frame", func() {
			frame := sineFrame(220.0, 44100, 2048, 0.6)
			got := estimator.EstimateFrequency(frame)

			Convey("Then the estimate falls within 1% of 220 Hz", func() {
				So(got, ShouldBeGreaterThan, 220.0*0.99)
				So(got, ShouldBeLessThan, 220.0*1.01)
			})
		})

		Convey("When estimating an all-zero frame", func() {
			frame := make([]float64, 2048)

			Convey("Then the unvoiced sentinel is returned", func() {
				So(estimator.EstimateFrequency(frame), ShouldEqual, pitch.Unvoiced)
			})
		})

		Convey("When estimating a very quiet frame below the RMS floor", func() {
			frame := sineFrame(440.0, 44100, 2048, 0.005)

			Convey("Then the unvoiced sentinel is returned", func() {
				So(estimator.EstimateFrequency(frame), ShouldEqual, pitch.Unvoiced)
			})
		})

		Convey("When the frame is too short to correlate", func() {
			Convey("Then an empty frame is unvoiced", func() {
				So(estimator.EstimateFrequency(nil), ShouldEqual, pitch.Unvoiced)
			})

			Convey("And a two-sample frame is unvoiced", func() {
				So(estimator.EstimateFrequency([]float64{0.9, -0.9}), ShouldEqual, pitch.Unvoiced)
			})
		})

		Convey("When the autocorrelation never stops falling", func() {
			// A constant (DC) frame has a monotonically decreasing
			// correlation, so the lobe scan reaches the end of the buffer.
			frame := make([]float64, 512)
			for i := range frame {
				frame[i] = 0.5
			}

			Convey("Then the bounded scan returns the unvoiced sentinel", func() {
				So(estimator.EstimateFrequency(frame), ShouldEqual, pitch.Unvoiced)
			})
		})
	})
}

func TestHPSEstimator_EstimateFrequency(t *testing.T) {
	Convey("Given an HPS estimator at 44.1 kHz", t, func() {
		estimator := pitch.NewHPSEstimator(44100)

		Convey("When estimating a harmonic-rich 330 Hz frame", func() {
			frame := make([]float64, 4096)
			for i := range frame {
				at := float64(i) / 44100.0
				frame[i] = 0.5*math.Sin(2*math.Pi*330*at) +
					0.3*math.Sin(2*math.Pi*660*at) +
					0.2*math.Sin(2*math.Pi*990*at)
			}
			got := estimator.EstimateFrequency(frame)

			Convey("Then the fundamental is recovered within 2%", func() {
				So(got, ShouldBeGreaterThan, 330.0*0.98)
				So(got, ShouldBeLessThan, 330.0*1.02)
			})
		})

		Convey("When estimating silence", func() {
			Convey("Then the unvoiced sentinel is returned", func() {
				So(estimator.EstimateFrequency(make([]float64, 4096)), ShouldEqual, pitch.Unvoiced)
			})
		})
	})
}
