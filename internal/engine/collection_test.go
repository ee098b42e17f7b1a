package engine_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yongdeokkim7/rodsim/internal/engine"
)

// fakeRod satisfies the rod-like capability.
type fakeRod struct {
	id int
}

func (r *fakeRod) KinematicStep(t, dt float64)   {}
func (r *fakeRod) DynamicStep(t, dt float64)     {}
func (r *fakeRod) UpdateAccelerations(t float64) {}
func (r *fakeRod) NumNodes() int                 { return 2 }
func (r *fakeRod) NumElements() int              { return 1 }
func (r *fakeRod) String() string                { return fmt.Sprintf("fakeRod(%d)", r.id) }

// fakeBody satisfies only the rigid-body capability.
type fakeBody struct{}

func (b *fakeBody) KinematicStep(t, dt float64)   {}
func (b *fakeBody) DynamicStep(t, dt float64)     {}
func (b *fakeBody) UpdateAccelerations(t float64) {}
func (b *fakeBody) Mass() float64                 { return 1 }

var _ = Describe("Collection", func() {
	var col *engine.Collection

	BeforeEach(func() {
		col = engine.NewCollection()
	})

	Describe("type gate", func() {
		It("admits rod-like systems by default", func() {
			Expect(col.Append(&fakeRod{id: 0})).To(Succeed())
			Expect(col.Len()).To(Equal(1))
		})

		It("rejects systems satisfying no allowed capability", func() {
			err := col.Append(&fakeBody{})
			Expect(err).To(BeAssignableToTypeOf(engine.TypeMismatchError{}))
			Expect(err.Error()).To(ContainSubstring("rod-like"))
			Expect(col.Len()).To(Equal(0))
		})

		It("rejects a nil system without panicking", func() {
			err := col.Append(nil)
			Expect(err).To(BeAssignableToTypeOf(engine.TypeMismatchError{}))
			Expect(err.Error()).To(ContainSubstring("rod-like"))
			Expect(col.Len()).To(Equal(0))

			Expect(engine.RodMarker.Admits(nil)).To(BeFalse())
		})

		It("gates insert and set, not only append", func() {
			Expect(col.Append(&fakeRod{id: 0})).To(Succeed())

			Expect(col.Insert(0, &fakeBody{})).To(BeAssignableToTypeOf(engine.TypeMismatchError{}))
			Expect(col.Set(0, &fakeBody{})).To(BeAssignableToTypeOf(engine.TypeMismatchError{}))
			Expect(col.Len()).To(Equal(1))
		})

		It("admits additional capabilities after ExtendAllowedTypes", func() {
			col.ExtendAllowedTypes(engine.RigidBodyMarker)
			Expect(col.Append(&fakeBody{})).To(Succeed())
			Expect(col.Append(&fakeRod{id: 0})).To(Succeed())
		})

		It("does not evict members when the policy is overridden", func() {
			rod := &fakeRod{id: 0}
			Expect(col.Append(rod)).To(Succeed())

			col.OverrideAllowedTypes(engine.RigidBodyMarker)

			Expect(col.Len()).To(Equal(1))
			got, err := col.At(0)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeIdenticalTo(rod))

			Expect(col.Append(&fakeRod{id: 1})).To(BeAssignableToTypeOf(engine.TypeMismatchError{}))
			Expect(col.Append(&fakeBody{})).To(Succeed())
		})
	})

	Describe("ordered sequence", func() {
		var rods []*fakeRod

		BeforeEach(func() {
			rods = []*fakeRod{{id: 0}, {id: 1}, {id: 2}}
			for _, r := range rods {
				Expect(col.Append(r)).To(Succeed())
			}
		})

		It("preserves insertion order", func() {
			for i, r := range rods {
				got, err := col.At(i)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(BeIdenticalTo(r))
			}
		})

		It("supports negative indices from the end", func() {
			got, err := col.At(-1)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeIdenticalTo(rods[2]))

			got, err = col.At(-3)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeIdenticalTo(rods[0]))
		})

		It("rejects indices outside [-n, n)", func() {
			_, err := col.At(3)
			Expect(err).To(Equal(engine.IndexOutOfRangeError{Index: 3, Len: 3}))

			_, err = col.At(-4)
			Expect(err).To(Equal(engine.IndexOutOfRangeError{Index: -4, Len: 3}))

			Expect(col.Delete(3)).To(Equal(engine.IndexOutOfRangeError{Index: 3, Len: 3}))
		})

		It("shifts subsequent systems down on delete", func() {
			Expect(col.Delete(1)).To(Succeed())
			Expect(col.Len()).To(Equal(2))

			got, err := col.At(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeIdenticalTo(rods[2]))
		})

		It("inserts before the given index", func() {
			extra := &fakeRod{id: 9}
			Expect(col.Insert(1, extra)).To(Succeed())

			got, _ := col.At(1)
			Expect(got).To(BeIdenticalTo(extra))
			got, _ = col.At(2)
			Expect(got).To(BeIdenticalTo(rods[1]))
		})

		It("appends when inserting at the length", func() {
			extra := &fakeRod{id: 9}
			Expect(col.Insert(col.Len(), extra)).To(Succeed())

			got, _ := col.At(-1)
			Expect(got).To(BeIdenticalTo(extra))
		})

		It("replaces in place on set", func() {
			extra := &fakeRod{id: 9}
			Expect(col.Set(1, extra)).To(Succeed())
			Expect(col.Len()).To(Equal(3))

			got, _ := col.At(1)
			Expect(got).To(BeIdenticalTo(extra))
		})

		It("renders the order for diagnostics", func() {
			Expect(col.String()).To(ContainSubstring("fakeRod(0)"))
			Expect(col.String()).To(ContainSubstring("fakeRod(2)"))
		})
	})

	Describe("identity resolution", func() {
		var rods []*fakeRod

		BeforeEach(func() {
			rods = []*fakeRod{{id: 0}, {id: 1}, {id: 2}}
			for _, r := range rods {
				Expect(col.Append(r)).To(Succeed())
			}
		})

		It("resolves a registered system to its position", func() {
			idx, err := col.IndexOf(rods[1])
			Expect(err).NotTo(HaveOccurred())
			Expect(idx).To(Equal(1))
		})

		It("resolves duplicates to the first occurrence", func() {
			Expect(col.Append(rods[0])).To(Succeed())

			idx, err := col.IndexOf(rods[0])
			Expect(err).NotTo(HaveOccurred())
			Expect(idx).To(Equal(0))
		})

		It("round-trips every index through At and IndexOf", func() {
			for i := 0; i < col.Len(); i++ {
				sys, err := col.At(i)
				Expect(err).NotTo(HaveOccurred())

				j, err := col.IndexOf(sys)
				Expect(err).NotTo(HaveOccurred())
				Expect(j).To(BeNumerically("<=", i))

				again, err := col.At(j)
				Expect(err).NotTo(HaveOccurred())
				Expect(again).To(BeIdenticalTo(sys))
			}
		})

		It("fails for systems never appended", func() {
			stranger := &fakeRod{id: 99}
			_, err := col.IndexOf(stranger)
			Expect(err).To(BeAssignableToTypeOf(engine.NotRegisteredError{}))
			Expect(err.Error()).To(ContainSubstring("append"))
		})

		It("gates the candidate before searching", func() {
			_, err := col.IndexOf(&fakeBody{})
			Expect(err).To(BeAssignableToTypeOf(engine.TypeMismatchError{}))
		})

		It("passes valid integer references through unchanged", func() {
			idx, err := col.ResolveIndex(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(idx).To(Equal(2))

			idx, err = col.ResolveIndex(-3)
			Expect(err).NotTo(HaveOccurred())
			Expect(idx).To(Equal(-3), "negative indices are not normalized")
		})

		It("bounds-checks integer references", func() {
			_, err := col.ResolveIndex(3)
			Expect(err).To(Equal(engine.IndexOutOfRangeError{Index: 3, Len: 3}))

			_, err = col.ResolveIndex(-4)
			Expect(err).To(Equal(engine.IndexOutOfRangeError{Index: -4, Len: 3}))
		})

		It("resolves system references by identity", func() {
			idx, err := col.ResolveIndex(rods[2])
			Expect(err).NotTo(HaveOccurred())
			Expect(idx).To(Equal(2))
		})

		It("rejects references that are neither index nor system", func() {
			_, err := col.ResolveIndex("rod")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("synchronize", func() {
		It("is a no-op without hooks", func() {
			Expect(func() { col.Synchronize(0.5) }).NotTo(Panic())
		})

		It("runs hooks in registration order with the step time", func() {
			var calls []string
			col.OnSynchronize(func(time float64) {
				calls = append(calls, fmt.Sprintf("a@%.1f", time))
			})
			col.OnSynchronize(func(time float64) {
				calls = append(calls, fmt.Sprintf("b@%.1f", time))
			})

			col.Synchronize(1.0)
			col.Synchronize(2.0)

			Expect(calls).To(Equal([]string{"a@1.0", "b@1.0", "a@2.0", "b@2.0"}))
		})
	})

	Describe("setup walkthrough", func() {
		It("registers, deletes and resolves rods", func() {
			r0, r1, r2 := &fakeRod{id: 0}, &fakeRod{id: 1}, &fakeRod{id: 2}
			Expect(col.Append(r0)).To(Succeed())
			Expect(col.Append(r1)).To(Succeed())
			Expect(col.Append(r2)).To(Succeed())

			Expect(col.Len()).To(Equal(3))
			got, _ := col.At(0)
			Expect(got).To(BeIdenticalTo(r0))
			got, _ = col.At(2)
			Expect(got).To(BeIdenticalTo(r2))

			Expect(col.Delete(1)).To(Succeed())
			Expect(col.Len()).To(Equal(2))
			got, _ = col.At(1)
			Expect(got).To(BeIdenticalTo(r2))

			idx, err := col.ResolveIndex(r2)
			Expect(err).NotTo(HaveOccurred())
			Expect(idx).To(Equal(1))

			_, err = col.ResolveIndex(&fakeRod{id: 3})
			Expect(err).To(BeAssignableToTypeOf(engine.NotRegisteredError{}))
		})
	})
})
