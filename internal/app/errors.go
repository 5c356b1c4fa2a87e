package app

import (
	"errors"

	"github.com/abhisek/quizcrafter/internal/export"
	"github.com/abhisek/quizcrafter/internal/ingest"
	"github.com/abhisek/quizcrafter/internal/pipeline"
	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/state"
)

// ErrorKind names the failure category of a run error for reporting and
// run records. Unknown errors report as "Internal".
func ErrorKind(err error) string {
	var (
		noFiles     *ingest.NoFilesMatchedError
		unreadable  *ingest.UnreadableFileError
		unsupported *ingest.UnsupportedFormatError
		badPlan     *quiz.MalformedPlanError
		badDoc      *quiz.MalformedDocumentError
		missing     *pipeline.MissingStateError
		contract    *pipeline.ContractViolationError
		undeclared  *state.UndeclaredAccessError
		exportIO    *export.IOError
	)
	switch {
	case errors.As(err, &noFiles):
		return "NoFilesMatched"
	case errors.As(err, &unreadable):
		return "UnreadableFile"
	case errors.As(err, &unsupported):
		return "UnsupportedFormat"
	case errors.As(err, &badPlan):
		return "MalformedPlan"
	case errors.As(err, &badDoc):
		return "MalformedDocument"
	case errors.As(err, &missing):
		return "MissingUpstreamState"
	case errors.As(err, &contract), errors.As(err, &undeclared):
		return "StageContractViolation"
	case errors.As(err, &exportIO):
		return "ExportIOError"
	default:
		return "Internal"
	}
}
