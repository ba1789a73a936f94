package client

import "time"

// nowUnix is swapped out in tests.
var nowUnix = func() int64 { return time.Now().Unix() }
