package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/wake-web/config"
)

var _ = Describe("Config", func() {
	var (
		tempDir  string
		previous string
	)

	setenv := func(key, value string) {
		old, had := os.LookupEnv(key)
		Expect(os.Setenv(key, value)).To(Succeed())
		DeferCleanup(func() {
			if had {
				os.Setenv(key, old)
			} else {
				os.Unsetenv(key)
			}
		})
	}

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())

		previous, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(tempDir)).To(Succeed())

		for _, key := range []string{"PORT", "SERVER_PORT", "SCHEDULE_INTERVAL", "VISITOR_ENGINE", "STATUS_MAX_LOG_LINES"} {
			if _, had := os.LookupEnv(key); had {
				old := os.Getenv(key)
				os.Unsetenv(key)
				DeferCleanup(os.Setenv, key, old)
			}
		}
	})

	AfterEach(func() {
		Expect(os.Chdir(previous)).To(Succeed())
		os.RemoveAll(tempDir)
	})

	Describe("Load", func() {
		Context("without a config file", func() {
			It("should use defaults", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())

				Expect(cfg.Server.Port).To(Equal(3000))
				Expect(cfg.Server.Environment).To(Equal(config.EnvDev))
				Expect(cfg.ScheduleInterval()).To(Equal(5 * time.Minute))
				Expect(cfg.VisitTimeout()).To(Equal(15 * time.Second))
				Expect(cfg.Visitor.Engine).To(Equal("http"))
				Expect(cfg.Status.MaxLogLines).To(Equal(100))
				Expect(cfg.Status.RefreshSeconds).To(Equal(1))
				Expect(filepath.Base(cfg.Targets.Path)).To(Equal("weblist.txt"))
			})

			It("should take the port from PORT", func() {
				setenv("PORT", "8080")

				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(8080))
			})

			It("should let nested keys be overridden from the environment", func() {
				setenv("SCHEDULE_INTERVAL", "30s")
				setenv("STATUS_MAX_LOG_LINES", "25")

				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.ScheduleInterval()).To(Equal(30 * time.Second))
				Expect(cfg.Status.MaxLogLines).To(Equal(25))
			})

			It("should reject an unknown visitor engine", func() {
				setenv("VISITOR_ENGINE", "telnet")

				cfg, err := config.Load()
				Expect(err).To(HaveOccurred())
				Expect(cfg).To(BeNil())
			})
		})

		Context("with valid config file", func() {
			BeforeEach(func() {
				configContent := `
server:
  port: 4000
  environment: "prod"

logging:
  level: "debug"

targets:
  path: "/srv/wake/targets.yaml"

schedule:
  interval: "10m"

visitor:
  engine: "browser"
  timeout: "20s"

status:
  max_log_lines: 50
  refresh_seconds: 0
`
				Expect(os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644)).To(Succeed())
			})

			It("should load configuration successfully", func() {
				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg).NotTo(BeNil())

				Expect(cfg.Server.Port).To(Equal(4000))
				Expect(cfg.Server.Environment).To(Equal(config.EnvProd))
				Expect(cfg.Logging.Level).To(Equal(config.LogLevelDebug))
				Expect(cfg.Targets.Path).To(Equal("/srv/wake/targets.yaml"))
				Expect(cfg.ScheduleInterval()).To(Equal(10 * time.Minute))
				Expect(cfg.Visitor.Engine).To(Equal("browser"))
				Expect(cfg.VisitTimeout()).To(Equal(20 * time.Second))
				Expect(cfg.Status.MaxLogLines).To(Equal(50))
				Expect(cfg.Status.RefreshSeconds).To(BeZero())
			})

			It("should prefer PORT over the file", func() {
				setenv("PORT", "5000")

				cfg, err := config.Load()
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal(5000))
			})
		})

		Context("with a malformed config file", func() {
			It("should return the parse error", func() {
				Expect(os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte("server: [\n"), 0644)).To(Succeed())

				cfg, err := config.Load()
				Expect(err).To(HaveOccurred())
				Expect(cfg).To(BeNil())
			})
		})
	})

	Describe("Validate", func() {
		var cfg config.Config

		BeforeEach(func() {
			cfg = config.Config{
				Server:   config.ServerConfig{Port: 3000, Environment: config.EnvDev},
				Logging:  config.LoggingConfig{Level: config.LogLevelInfo},
				Targets:  config.TargetsConfig{Path: "weblist.txt"},
				Schedule: config.ScheduleConfig{Interval: "5m"},
				Visitor:  config.VisitorConfig{Engine: "http", Timeout: "15s"},
				Status:   config.StatusConfig{MaxLogLines: 100, RefreshSeconds: 1},
			}
		})

		It("should accept a complete configuration", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		DescribeTable("should reject invalid values",
			func(mutate func(*config.Config)) {
				mutate(&cfg)
				Expect(cfg.Validate()).NotTo(Succeed())
			},
			Entry("port out of range", func(c *config.Config) { c.Server.Port = 70000 }),
			Entry("negative port", func(c *config.Config) { c.Server.Port = -1 }),
			Entry("unknown environment", func(c *config.Config) { c.Server.Environment = "qa" }),
			Entry("unknown log level", func(c *config.Config) { c.Logging.Level = "trace" }),
			Entry("empty target path", func(c *config.Config) { c.Targets.Path = "" }),
			Entry("unparseable interval", func(c *config.Config) { c.Schedule.Interval = "soon" }),
			Entry("zero interval", func(c *config.Config) { c.Schedule.Interval = "0s" }),
			Entry("negative timeout", func(c *config.Config) { c.Visitor.Timeout = "-1s" }),
			Entry("unknown engine", func(c *config.Config) { c.Visitor.Engine = "curl" }),
			Entry("zero log capacity", func(c *config.Config) { c.Status.MaxLogLines = 0 }),
			Entry("negative refresh", func(c *config.Config) { c.Status.RefreshSeconds = -1 }),
		)
	})
})
