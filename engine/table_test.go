package engine

import (
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Table", func() {
	var sut *Table

	BeforeEach(func() {
		sut = NewTable(0)
	})

	It("stores and looks up names", func() {
		Expect(sut.Put("h1", "www.example.com")).Should(BeFalse())

		fqdn, found := sut.Lookup("h1")
		Expect(found).Should(BeTrue())
		Expect(fqdn).Should(Equal("www.example.com"))

		_, found = sut.Lookup("h2")
		Expect(found).Should(BeFalse())
	})

	It("keeps the last name and counts the overwrite", func() {
		sut.Put("h1", "a.example.com")

		Expect(sut.Put("h1", "b.example.com")).Should(BeTrue())
		Expect(sut.Len()).Should(Equal(1))
		Expect(sut.Collisions()).Should(Equal(1))
		Expect(sut.Entries()).Should(Equal(map[string]string{"h1": "b.example.com"}))
	})

	It("does not count re-inserting the same name", func() {
		sut.Put("h1", "a.example.com")

		Expect(sut.Put("h1", "a.example.com")).Should(BeFalse())
		Expect(sut.Collisions()).Should(BeZero())
	})

	It("is safe for concurrent writers", func() {
		var wg sync.WaitGroup

		for w := 0; w < 8; w++ {
			wg.Add(1)

			go func(w int) {
				defer wg.Done()

				for i := 0; i < 100; i++ {
					sut.Put(fmt.Sprintf("h%d-%d", w, i), "x")
				}
			}(w)
		}

		wg.Wait()

		Expect(sut.Len()).Should(Equal(800))
	})
})
