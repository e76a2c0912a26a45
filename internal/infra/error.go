package infra

import (
	"errors"
	"log/slog"

	"appointment-engine/internal/pkg/errs"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr logs the failure and returns a RepositoryError marked with the
// engine sentinel matching its kind, so callers above the infra layer only
// need errs.Is.
func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
		err = errs.Wrap(err, msg)
	}

	if kind == KindNotFound {
		slogger.Debug("Repository miss: "+msg, logArgs...)
	} else {
		if err != nil {
			logArgs = append(logArgs, slog.Any("stack", errs.ExtractStackLines(err, stackLogLines)))
		}
		slogger.Error("Repository error: "+msg, logArgs...)
	}

	return errs.Mark(RepositoryError{Kind: kind, msg: msg, err: err}, markerFor(kind))
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func markerFor(kind RepositoryErrorKind) error {
	switch kind {
	case KindNotFound:
		return errs.ErrAppointmentTypeNotFound
	default:
		return errs.ErrStoreFailure
	}
}

const stackLogLines = 12

// Infrastructure-specific error kinds
const (
	KindNotFound      RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure     RepositoryErrorKind = "DB_FAILURE"
	KindCacheFailure  RepositoryErrorKind = "CACHE_FAILURE"
	KindCorruptRecord RepositoryErrorKind = "CORRUPT_RECORD"
)
