// SPDX-License-Identifier: MPL-2.0

package archive

import "github.com/charmbracelet/log"

type optionData struct {
	logger *log.Logger
}

// Option customizes packing and unpacking behavior.
type Option func(*optionData)

// WithLogger routes per-entry debug logging to l instead of the
// default logger.
func WithLogger(l *log.Logger) Option {
	return func(o *optionData) {
		o.logger = l
	}
}

func buildOptions(opts []Option) optionData {
	o := optionData{
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
