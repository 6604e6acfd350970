package filter

import (
	"fmt"

	"github.com/arloliu/ncpipe/format"
)

// Shuffle implements the byte shuffle filter.
//
// It groups byte k of every element together so that slowly varying high
// order bytes form long runs. Trailing bytes that do not fill a whole element
// are copied unchanged.
type Shuffle struct {
	elemSize int
}

func newShuffle(params []uint32, elemSize int) (Filter, error) {
	switch len(params) {
	case 0:
	case 1:
		if params[0] == 0 {
			return nil, fmt.Errorf("element size must be positive")
		}
		elemSize = int(params[0])
	default:
		return nil, fmt.Errorf("expected at most 1 parameter, got %d", len(params))
	}

	return &Shuffle{elemSize: max(elemSize, 1)}, nil
}

func (f *Shuffle) ID() format.FilterID {
	return format.FilterShuffle
}

// Encode turns [e0][e1]...[eN] into [byte0 of all][byte1 of all]...
func (f *Shuffle) Encode(input []byte) ([]byte, error) {
	numElems := len(input) / f.elemSize
	if f.elemSize <= 1 || numElems <= 1 {
		return input, nil
	}

	output := make([]byte, len(input))
	for i := 0; i < numElems; i++ {
		for j := 0; j < f.elemSize; j++ {
			output[j*numElems+i] = input[i*f.elemSize+j]
		}
	}
	tail := numElems * f.elemSize
	copy(output[tail:], input[tail:])

	return output, nil
}

// Decode reverses Encode.
func (f *Shuffle) Decode(input []byte) ([]byte, error) {
	numElems := len(input) / f.elemSize
	if f.elemSize <= 1 || numElems <= 1 {
		return input, nil
	}

	output := make([]byte, len(input))
	for i := 0; i < numElems; i++ {
		for j := 0; j < f.elemSize; j++ {
			output[i*f.elemSize+j] = input[j*numElems+i]
		}
	}
	tail := numElems * f.elemSize
	copy(output[tail:], input[tail:])

	return output, nil
}
