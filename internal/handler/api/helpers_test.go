//go:build unit

package api_test

import "errors"

var assertErr = errors.New("connection reset by peer")
