package models

import "time"

// LaunchList is the upcoming launches document. Only the image of each
// launch is consumed.
type LaunchList struct {
	Results []Launch
}

type Launch struct {
	Image string
}

// Content is the outcome of fetching a single URL.
type Content struct {
	URL      string
	Data     []byte
	Duration time.Duration
	Error    error
}
