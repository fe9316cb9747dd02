package advisory

import "errors"

var ErrTransport = errors.New("Network request failed")
