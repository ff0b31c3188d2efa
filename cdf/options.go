package cdf

import "github.com/sirupsen/logrus"

// Option configures a File.
type Option func(*fileOptions)

type fileOptions struct {
	logger         logrus.FieldLogger
	verifyChecksum bool
	assumedScopes  bool
}

func defaultFileOptions() *fileOptions {
	return &fileOptions{
		logger:        logrus.StandardLogger(),
		assumedScopes: true,
	}
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *fileOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithChecksumVerification verifies the MD5 checksum of files that carry
// one when they are opened.
func WithChecksumVerification(verify bool) Option {
	return func(o *fileOptions) {
		o.verifyChecksum = verify
	}
}

// WithAssumedScopes controls whether assumed scopes are reported as
// stored. When disabled, GlobalScopeAssumed and VariableScopeAssumed are
// reported as GlobalScope and VariableScope.
func WithAssumedScopes(keep bool) Option {
	return func(o *fileOptions) {
		o.assumedScopes = keep
	}
}
