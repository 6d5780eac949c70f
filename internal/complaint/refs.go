package complaint

import (
	"math/rand/v2"
	"strconv"
)

// RefGenerator issues the cosmetic internal reference code of a record.
type RefGenerator interface {
	NextRef() string
}

// RefFunc adapts a function to RefGenerator.
type RefFunc func() string

// NextRef calls f.
func (f RefFunc) NextRef() string { return f() }

// RandomRefs issues random four digit codes. Codes may repeat.
var RandomRefs RefGenerator = RefFunc(func() string {
	return strconv.Itoa(1000 + rand.IntN(9000))
})

// StaticRef always issues ref.
func StaticRef(ref string) RefGenerator {
	return RefFunc(func() string { return ref })
}
