package mocks

import "errors"

// ErrUnscripted is returned for calls to a program with no scripted response.
var ErrUnscripted = errors.New("mocks: no scripted response")
