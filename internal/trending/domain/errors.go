package domain

import "errors"

var ErrHashtagNotFound = errors.New("hashtag not found")
