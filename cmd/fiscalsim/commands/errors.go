package commands

import (
	ferrors "github.com/deluair/BD-publicfinance-simulation/internal/foundation/errors"
)

func unknownFormatError(format string) error {
	return ferrors.ValidationError("unknown report format").
		WithContext("format", format).
		Build()
}

func noStoreError() error {
	return ferrors.ConfigError("no run store configured (set storage.sqlite_path or --db)").Build()
}
