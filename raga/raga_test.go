package raga_test

import (
	"testing"

	"github.com/chintanpandya89/raagbodh/algorithms/swara"
	"github.com/chintanpandya89/raagbodh/raga"
	. "github.com/smartystreets/goconvey/convey"
)

const corpusJSON = `[
  {
    "id": "yaman",
    "name": "Yaman",
    "thaat": "Kalyan",
    "aaroh": ["Ni", "Re", "Ga", "Ma", "Dha", "Ni", "Sa"],
    "avaroh": ["Sa", "Ni", "Dha", "Pa", "Ma", "Ga", "Re", "Sa"],
    "vaadi": "Ga",
    "samvaadi": "Ni",
    "pakad": ["Ni", "Re", "Ga", "Re", "Sa"],
    "identifying_feature": "teevra Ma, evening raga"
  },
  {
    "id": "bhairav",
    "name": "Bhairav",
    "thaat": "Bhairav",
    "aaroh": ["Sa", "re", "Ga", "ma", "Pa", "dha", "Ni", "Sa"],
    "avaroh": ["Sa", "Ni", "dha", "Pa", "ma", "Ga", "re", "Sa"],
    "vaadi": "dha",
    "samvaadi": "re",
    "pakad": [["Ga", "ma", "dha", "Pa"], ["Ga", "ma", "re", "Sa"]],
    "phrases": [["Sa", "re", "Sa"]]
  }
]`

func TestDecodeCorpus(t *testing.T) {
	Convey("Given a JSON raga corpus", t, func() {
		Convey("When the corpus is well formed", func() {
			corpus, err := raga.DecodeCorpus([]byte(corpusJSON))

			Convey("Then it decodes and validates", func() {
				So(err, ShouldBeNil)
				So(corpus.Len(), ShouldEqual, 2)
			})

			Convey("And swara labels parse to scale degrees", func() {
				So(err, ShouldBeNil)
				yaman := corpus.Definitions()[0]
				So(yaman.Vaadi, ShouldEqual, swara.Ga)
				So(yaman.Samvaadi, ShouldEqual, swara.Ni)
				So(yaman.Aaroh[0], ShouldEqual, swara.Ni)
			})

			Convey("And a single pakad sequence normalizes to one alternative", func() {
				So(err, ShouldBeNil)
				So(corpus.Definitions()[0].Pakad, ShouldHaveLength, 1)
				So(corpus.Definitions()[0].Pakad[0], ShouldResemble,
					[]swara.Swara{swara.Ni, swara.Re, swara.Ga, swara.Re, swara.Sa})
			})

			Convey("And a list of pakad alternatives is kept as-is", func() {
				So(err, ShouldBeNil)
				So(corpus.Definitions()[1].Pakad, ShouldHaveLength, 2)
				So(corpus.Definitions()[1].Phrases, ShouldHaveLength, 1)
			})
		})

		Convey("When an entry uses an unknown swara label", func() {
			bad := `[{"id": "x", "name": "X", "aaroh": ["Sol"], "avaroh": ["Sa"],
				"vaadi": "Sa", "samvaadi": "Pa", "pakad": ["Sa"]}]`
			_, err := raga.DecodeCorpus([]byte(bad))

			Convey("Then decoding fails with a configuration error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "Sol")
			})
		})
	})
}

func TestLoadCorpus(t *testing.T) {
	Convey("Given externally supplied definitions", t, func() {
		valid := raga.Definition{
			ID:       "bhoop",
			Name:     "Bhoopali",
			Thaat:    "Kalyan",
			Aaroh:    []swara.Swara{swara.Sa, swara.Re, swara.Ga, swara.Pa, swara.Dha},
			Avaroh:   []swara.Swara{swara.Dha, swara.Pa, swara.Ga, swara.Re, swara.Sa},
			Vaadi:    swara.Ga,
			Samvaadi: swara.Dha,
			Pakad:    [][]swara.Swara{{swara.Ga, swara.Re, swara.Sa, swara.Dha}},
		}

		Convey("When every required field is present", func() {
			corpus, err := raga.LoadCorpus([]raga.Definition{valid})

			Convey("Then the corpus loads", func() {
				So(err, ShouldBeNil)
				So(corpus.Len(), ShouldEqual, 1)
			})
		})

		Convey("When a required field is missing", func() {
			cases := map[string]func(*raga.Definition){
				"name":     func(d *raga.Definition) { d.Name = "" },
				"aaroh":    func(d *raga.Definition) { d.Aaroh = nil },
				"avaroh":   func(d *raga.Definition) { d.Avaroh = nil },
				"vaadi":    func(d *raga.Definition) { d.Vaadi = swara.None },
				"samvaadi": func(d *raga.Definition) { d.Samvaadi = swara.None },
				"pakad":    func(d *raga.Definition) { d.Pakad = nil },
			}

			for field, corrupt := range cases {
				Convey("Then a definition without "+field+" is rejected", func() {
					def := valid
					corrupt(&def)
					_, err := raga.LoadCorpus([]raga.Definition{def})
					So(err, ShouldNotBeNil)
				})
			}
		})

		Convey("When loading succeeds", func() {
			corpus, err := raga.LoadCorpus([]raga.Definition{valid})
			So(err, ShouldBeNil)

			Convey("Then later mutation of the input slice does not affect the corpus", func() {
				defs := []raga.Definition{valid}
				corpus, err = raga.LoadCorpus(defs)
				So(err, ShouldBeNil)
				defs[0].Name = "mutated"
				So(corpus.Definitions()[0].Name, ShouldEqual, "Bhoopali")
			})
		})
	})
}
