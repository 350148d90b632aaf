package tracking

import "github.com/pkg/errors"

var errHookRunning = errors.New("input hook already running")
