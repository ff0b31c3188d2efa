package filter

import "errors"

// RLE implements run-length encoding of zero bytes.
type RLE struct{}

// NewRLE creates an RLE codec. CDF defines a single parameter (0, meaning
// runs of zeros) which is not needed for decoding.
func NewRLE(params []int32) *RLE {
	return &RLE{}
}

func (f *RLE) ID() Compression {
	return RLE0
}

func (f *RLE) Decode(input []byte) ([]byte, error) {
	output := make([]byte, 0, len(input)*2)
	for i := 0; i < len(input); i++ {
		b := input[i]
		if b != 0 {
			output = append(output, b)
			continue
		}
		if i+1 >= len(input) {
			return nil, errors.New("rle: zero run missing count byte")
		}
		i++
		run := int(input[i]) + 1
		for j := 0; j < run; j++ {
			output = append(output, 0)
		}
	}
	return output, nil
}

func (f *RLE) Encode(input []byte) ([]byte, error) {
	output := make([]byte, 0, len(input))
	for i := 0; i < len(input); {
		if input[i] != 0 {
			output = append(output, input[i])
			i++
			continue
		}
		run := 0
		for i+run < len(input) && input[i+run] == 0 && run < 256 {
			run++
		}
		output = append(output, 0, byte(run-1))
		i += run
	}
	return output, nil
}
