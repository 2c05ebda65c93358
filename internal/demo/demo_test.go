package demo

import (
	"bytes"
	"context"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/sync/errgroup"

	"github.com/ARTM2000/sole"
	"github.com/ARTM2000/sole/internal/config"
)

var _ = Describe("MessageLogger", func() {
	var (
		buf      *bytes.Buffer
		registry *sole.Registry
		saved    io.Writer
	)

	BeforeEach(func() {
		saved = Output
		buf = new(bytes.Buffer)
		Output = buf
		registry = sole.NewRegistry()
	})

	AfterEach(func() {
		_ = registry.Shutdown(context.Background())
		Output = saved
	})

	It("should tag messages with one id across concurrent callers", func() {
		var g errgroup.Group
		for range 4 {
			g.Go(func() error {
				l, err := sole.Get[MessageLogger](registry)
				if err != nil {
					return err
				}
				l.Log("hi")
				return nil
			})
		}
		Expect(g.Wait()).To(Succeed())

		l, err := sole.Get[MessageLogger](registry)
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Count()).To(Equal(4))
		Expect(buf.String()).To(ContainSubstring("logger " + l.ID() + " created"))
		Expect(buf.String()).To(ContainSubstring("[" + l.ID() + " #4] hi"))
	})

	It("should report on close", func() {
		l, err := sole.Get[MessageLogger](registry)
		Expect(err).NotTo(HaveOccurred())
		l.Log("one")

		Expect(registry.Shutdown(context.Background())).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("logger " + l.ID() + " closed after 1 messages"))
	})
})

var _ = Describe("SettingsStore", func() {
	var registry *sole.Registry

	BeforeEach(func() {
		Expect(config.Load("", "")).To(Succeed())
		registry = sole.NewRegistry()
	})

	It("should be seeded from the config", func() {
		s, err := sole.Get[SettingsStore](registry, sole.WithAllocation(sole.Shared))
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Keys()).To(Equal([]string{"greeting", "region"}))
		v, ok := s.Get("greeting")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("hello"))
	})

	It("should share writes between callers", func() {
		opts := []sole.Option{sole.WithDisposal(sole.Immortal), sole.WithSync(sole.Spin)}
		s1, err := sole.Get[SettingsStore](registry, opts...)
		Expect(err).NotTo(HaveOccurred())
		s1.Set("color", "blue")

		s2, err := sole.Get[SettingsStore](registry, opts...)
		Expect(err).NotTo(HaveOccurred())
		v, _ := s2.Get("color")
		Expect(v).To(Equal("blue"))
	})

	It("should dump sorted key=value lines", func() {
		saved := Output
		buf := new(bytes.Buffer)
		Output = buf
		DeferCleanup(func() { Output = saved })

		s, err := sole.Get[SettingsStore](registry)
		Expect(err).NotTo(HaveOccurred())
		s.Dump()

		Expect(buf.String()).To(Equal("greeting=hello\nregion=local\n"))
	})
})
