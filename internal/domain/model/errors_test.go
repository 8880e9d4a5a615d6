package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestKind(t *testing.T) {
	Convey("Given wrapped error kinds", t, func() {
		Convey("Then each kind should be recognised through wrapping", func() {
			So(model.Kind(fmt.Errorf("%w: empty catalog", model.ErrEncoding)), ShouldEqual, "encoding")
			So(model.Kind(fmt.Errorf("build: %w", fmt.Errorf("%w: k=0", model.ErrConfiguration))), ShouldEqual, "configuration")
			So(model.Kind(model.ErrNoEligibleCluster), ShouldEqual, "no_eligible_cluster")
		})

		Convey("Then unknown and nil errors should map to internal and empty", func() {
			So(model.Kind(errors.New("disk full")), ShouldEqual, "internal")
			So(model.Kind(nil), ShouldEqual, "")
		})
	})
}
