package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/reelmatch/internal/config"
	"github.com/okian/reelmatch/internal/domain/scoring"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.RankConcurrency, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.DefaultRankLimit, convey.ShouldEqual, 20)
			convey.So(cfg.MaxRankLimit, convey.ShouldEqual, 100)
			convey.So(cfg.QuestionBankPath, convey.ShouldBeEmpty)
			convey.So(cfg.Weights, convey.ShouldResemble, scoring.DefaultWeights())
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid values", t, func() {
		cases := map[string]func(*config.Config){
			"empty addr":               func(c *config.Config) { c.Addr = "" },
			"zero concurrency":         func(c *config.Config) { c.RankConcurrency = 0 },
			"zero max limit":           func(c *config.Config) { c.MaxRankLimit = 0 },
			"default above max":        func(c *config.Config) { c.DefaultRankLimit = c.MaxRankLimit + 1 },
			"negative shutdown":        func(c *config.Config) { c.ShutdownTimeoutSeconds = -1 },
			"negative weight":          func(c *config.Config) { c.Weights.SharedLike = -1 },
			"ceiling below base score": func(c *config.Config) { c.Weights.MaxScore = 5 },
		}

		for name, mutate := range cases {
			cfg := config.New()
			mutate(cfg)

			convey.Convey("Then "+name+" is rejected", func() {
				err := cfg.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}

		convey.Convey("Then weight errors keep their own kind", func() {
			cfg := config.New()
			cfg.Weights.Base = -3
			convey.So(errors.Is(cfg.Validate(), scoring.ErrInvalidWeights), convey.ShouldBeTrue)
		})
	})
}
