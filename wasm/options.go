package wasm

import "go.uber.org/zap"

// DecodeOptions controls decoding behavior.
type DecodeOptions struct {
	// Logger receives debug events for the decode. Nil uses Logger().
	Logger *zap.Logger

	// CheckSectionSize fails the decode when a section body does not
	// consume exactly its declared size.
	CheckSectionSize bool

	// SkipUnknownSections skips recognized sections the decoder has no
	// decoder for, using their declared size, instead of stopping the scan.
	SkipUnknownSections bool
}

// DefaultDecodeOptions returns the default decode configuration.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		CheckSectionSize: true,
	}
}

func (o DecodeOptions) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return Logger()
}
