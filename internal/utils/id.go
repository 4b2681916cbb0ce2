package utils

import (
	"strconv"
	"time"
)

// LocalID names a record that only exists in local state, e.g. "local_1718000000000".
func LocalID(now time.Time) string {
	return "local_" + strconv.FormatInt(now.UnixMilli(), 10)
}
