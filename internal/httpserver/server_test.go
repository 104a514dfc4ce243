package httpserver_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/wake-web/internal/httpserver"
)

var _ = Describe("HTTP Server", func() {
	var log *slog.Logger

	BeforeEach(func() {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	Context("address building", func() {
		It("joins host and port", func() {
			Expect(httpserver.Address("", 3000)).To(Equal(":3000"))
			Expect(httpserver.Address("127.0.0.1", 8080)).To(Equal("127.0.0.1:8080"))
		})
	})

	Context("server creation", func() {
		DescribeTable("address validation",
			func(addr string, valid bool) {
				handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
				srv, err := httpserver.New(addr, handler, log)
				if valid {
					Expect(err).NotTo(HaveOccurred())
					Expect(srv).NotTo(BeNil())
					Expect(srv.Addr()).To(Equal(addr))
				} else {
					Expect(err).To(HaveOccurred())
					Expect(srv).To(BeNil())
				}
			},
			Entry("host name", "localhost:9999", true),
			Entry("IP address", "127.0.0.1:9999", true),
			Entry("port only", ":3000", true),
			Entry("too many colons", "invalid:host:port", false),
			Entry("missing port", "localhost", false),
			Entry("port out of range", ":70000", false),
			Entry("non-numeric port", ":http-alt", false),
		)
	})

	Context("server lifecycle", func() {
		var testServer *httpserver.Server
		var testPort = ":19997"

		AfterEach(func() {
			if testServer != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
				defer cancel()
				_ = testServer.Shutdown(ctx)
			}
		})

		It("starts and handles requests", func() {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("awake"))
			})
			var err error
			testServer, err = httpserver.New(testPort, handler, log)
			Expect(err).NotTo(HaveOccurred())

			go func() {
				testServer.Start()
			}()

			var resp *http.Response
			Eventually(func() error {
				resp, err = http.Get("http://localhost" + testPort)
				return err
			}).Should(Succeed())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			body, _ := io.ReadAll(resp.Body)
			Expect(string(body)).To(Equal("awake"))
		})

		It("returns nil from Start after a graceful shutdown", func() {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
			var err error
			testServer, err = httpserver.New(":19996", handler, log)
			Expect(err).NotTo(HaveOccurred())

			errCh := make(chan error, 1)
			go func() {
				errCh <- testServer.Start()
			}()
			time.Sleep(100 * time.Millisecond)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			Expect(testServer.Shutdown(ctx)).To(Succeed())
			Eventually(errCh).Should(Receive(BeNil()))
		})
	})
})
