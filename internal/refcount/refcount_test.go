package refcount

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type payload struct{ closed int }

var _ = Describe("Ref", func() {
	var (
		p   *payload
		ref *Ref[payload]
	)

	BeforeEach(func() {
		p = &payload{}
		ref = New(p, func(v *payload) error {
			v.closed++
			return nil
		})
	})

	It("should start with one owner", func() {
		Expect(ref.Count()).To(Equal(int64(1)))
		Expect(ref.Value()).To(BeIdenticalTo(p))
	})

	It("should finalize when the only owner releases", func() {
		left, err := ref.Release()

		Expect(err).NotTo(HaveOccurred())
		Expect(left).To(BeZero())
		Expect(p.closed).To(Equal(1))
	})

	It("should not finalize while other owners remain", func() {
		ref.Retain()

		left, err := ref.Release()

		Expect(err).NotTo(HaveOccurred())
		Expect(left).To(Equal(int64(1)))
		Expect(p.closed).To(BeZero())

		_, err = ref.Release()
		Expect(err).NotTo(HaveOccurred())
		Expect(p.closed).To(Equal(1))
	})

	It("should refuse to release past zero", func() {
		_, _ = ref.Release()

		_, err := ref.Release()

		Expect(err).To(MatchError(ErrReleased))
		Expect(ref.Count()).To(BeZero())
		Expect(p.closed).To(Equal(1))
	})

	It("should return the finalizer error", func() {
		boom := errors.New("boom")
		ref = New(p, func(*payload) error { return boom })

		_, err := ref.Release()

		Expect(err).To(MatchError(boom))
	})

	It("should tolerate a nil finalizer", func() {
		ref = New(p, nil)

		left, err := ref.Release()

		Expect(err).NotTo(HaveOccurred())
		Expect(left).To(BeZero())
	})
})
