package filter

import (
	"fmt"

	"github.com/arloliu/ncpipe/compress"
	"github.com/arloliu/ncpipe/format"
)

// codecFilter adapts a compression codec to the Filter interface.
type codecFilter struct {
	id    format.FilterID
	codec compress.Codec
}

func (f codecFilter) ID() format.FilterID                 { return f.id }
func (f codecFilter) Encode(data []byte) ([]byte, error) { return f.codec.Compress(data) }
func (f codecFilter) Decode(data []byte) ([]byte, error) { return f.codec.Decompress(data) }

func optionalLevel(params []uint32) (int, error) {
	switch len(params) {
	case 0:
		return compress.DefaultLevel, nil
	case 1:
		return int(params[0]), nil
	default:
		return 0, fmt.Errorf("expected at most 1 parameter, got %d", len(params))
	}
}

func noParams(params []uint32) error {
	if len(params) != 0 {
		return fmt.Errorf("expected no parameters, got %d", len(params))
	}

	return nil
}

func newDeflate(params []uint32, _ int) (Filter, error) {
	if len(params) == 0 {
		return codecFilter{id: format.FilterDeflate, codec: compress.NewDeflateCompressor()}, nil
	}

	level, err := optionalLevel(params)
	if err != nil {
		return nil, err
	}
	codec, err := compress.NewDeflateCompressorLevel(level)
	if err != nil {
		return nil, err
	}

	return codecFilter{id: format.FilterDeflate, codec: codec}, nil
}

func newZstd(params []uint32, _ int) (Filter, error) {
	level, err := optionalLevel(params)
	if err != nil {
		return nil, err
	}
	codec, err := compress.NewZstdCompressorLevel(level)
	if err != nil {
		return nil, err
	}

	return codecFilter{id: format.FilterZstd, codec: codec}, nil
}

func newLZ4(params []uint32, _ int) (Filter, error) {
	if err := noParams(params); err != nil {
		return nil, err
	}

	return codecFilter{id: format.FilterLZ4, codec: compress.NewLZ4Compressor()}, nil
}

func newS2(params []uint32, _ int) (Filter, error) {
	if err := noParams(params); err != nil {
		return nil, err
	}

	return codecFilter{id: format.FilterS2, codec: compress.NewS2Compressor()}, nil
}
