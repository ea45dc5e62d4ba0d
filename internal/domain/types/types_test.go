package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/showdown/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntry(t *testing.T) {
	Convey("Given an Entry struct", t, func() {
		Convey("When creating a new entry", func() {
			entry := types.Entry{
				Rank:        1,
				HandID:      "hand-123",
				Category:    "Full House",
				Strength:    0x60702 << 8,
				Description: "Full House, 7s full of 2s",
				Street:      "river",
			}

			Convey("Then it should have the correct values", func() {
				So(entry.Rank, ShouldEqual, 1)
				So(entry.HandID, ShouldEqual, "hand-123")
				So(entry.Category, ShouldEqual, "Full House")
			})

			Convey("And it should marshal with snake_case keys", func() {
				b, err := json.Marshal(entry)
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `"hand_id":"hand-123"`)
				So(string(b), ShouldContainSubstring, `"street":"river"`)
			})
		})

		Convey("When creating an entry with zero values", func() {
			entry := types.Entry{}

			Convey("Then it should have default values", func() {
				So(entry.Rank, ShouldEqual, 0)
				So(entry.HandID, ShouldEqual, "")
				So(entry.Strength, ShouldEqual, 0)
			})
		})
	})
}
