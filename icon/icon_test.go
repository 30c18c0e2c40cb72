package icon

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/toumei/toumei/key"
)

func TestGet(t *testing.T) {
	Convey("Given the registered icons", t, func() {
		all := []Icon{Success, Fail, Progress, Link, Search, Mark, Blocked}

		Convey("Each renders for every variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					for _, i := range all {
						So(Get(i), ShouldNotBeEmpty)
					}
				})
			}
		})

		Convey("Success and Fail differ in plain mode", func() {
			viper.Set(key.IconsVariant, plain)
			So(Get(Success), ShouldNotEqual, Get(Fail))
		})

		Convey("An unknown variant renders nothing", func() {
			viper.Set(key.IconsVariant, "")
			So(Get(Success), ShouldBeEmpty)
		})

		Convey("An unregistered icon renders nothing", func() {
			viper.Set(key.IconsVariant, plain)
			So(Get(Icon(99)), ShouldBeEmpty)
		})
	})
}
