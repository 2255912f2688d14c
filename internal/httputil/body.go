// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"errors"
	"fmt"
	"io"
)

// ErrBodyTooLarge is returned by ReadLimited when the body exceeds the limit.
var ErrBodyTooLarge = errors.New("response body too large")

// ReadLimited reads all of r, failing with ErrBodyTooLarge instead of
// truncating when r holds more than limit bytes.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrBodyTooLarge, limit)
	}
	return data, nil
}
