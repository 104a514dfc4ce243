package targets_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/wake-web/internal/targets"
)

var _ = Describe("FileLoader", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "targets-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	write := func(name, content string) string {
		path := filepath.Join(tempDir, name)
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	Context("with a plain text file", func() {
		It("should trim lines and drop blanks while keeping order", func() {
			path := write("weblist.txt", "  https://a.example.com  \n\n\thttps://b.example.com\r\n   \nhttps://c.example.com")

			urls, err := targets.NewFileLoader(path).Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(urls).To(Equal([]string{
				"https://a.example.com",
				"https://b.example.com",
				"https://c.example.com",
			}))
		})

		It("should keep duplicates", func() {
			path := write("weblist.txt", "https://a.example.com\nhttps://a.example.com\n")

			urls, err := targets.NewFileLoader(path).Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(urls).To(HaveLen(2))
		})

		It("should skip comment lines", func() {
			path := write("weblist.txt", "# staging\nhttps://a.example.com\n  # disabled\n")

			urls, err := targets.NewFileLoader(path).Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(urls).To(Equal([]string{"https://a.example.com"}))
		})

		It("should return an empty list for an empty file", func() {
			path := write("weblist.txt", "")

			urls, err := targets.NewFileLoader(path).Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(urls).To(BeEmpty())
		})

		It("should pick up edits on the next load", func() {
			path := write("weblist.txt", "https://a.example.com\n")
			loader := targets.NewFileLoader(path)

			first, err := loader.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(HaveLen(1))

			write("weblist.txt", "https://a.example.com\nhttps://b.example.com\n")
			second, err := loader.Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(HaveLen(2))
		})
	})

	Context("with a YAML file", func() {
		It("should parse a sequence of URLs", func() {
			path := write("targets.yaml", "- https://a.example.com\n- \"  https://b.example.com \"\n- \"\"\n")

			urls, err := targets.NewFileLoader(path).Load()
			Expect(err).NotTo(HaveOccurred())
			Expect(urls).To(Equal([]string{"https://a.example.com", "https://b.example.com"}))
		})

		It("should return a LoadError for malformed YAML", func() {
			path := write("targets.yml", "url: [unterminated\n")

			urls, err := targets.NewFileLoader(path).Load()
			Expect(urls).To(BeNil())

			var loadErr *targets.LoadError
			Expect(errors.As(err, &loadErr)).To(BeTrue())
			Expect(loadErr.Source).To(Equal(path))
		})
	})

	Context("with a missing file", func() {
		It("should return a single LoadError and no list", func() {
			path := filepath.Join(tempDir, "missing.txt")
			loader := targets.NewFileLoader(path)

			urls, err := loader.Load()
			Expect(urls).To(BeNil())

			var loadErr *targets.LoadError
			Expect(errors.As(err, &loadErr)).To(BeTrue())
			Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring(path))
			Expect(loader.Source()).To(Equal(path))
		})
	})
})

var _ = Describe("DefaultPath", func() {
	It("should point at weblist.txt", func() {
		Expect(filepath.Base(targets.DefaultPath())).To(Equal("weblist.txt"))
	})
})
