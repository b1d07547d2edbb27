package edgar

import (
	"errors"
	"fmt"
)

// ErrEmptyStatement signals that a resolved statement document contained no
// data rows. Callers typically log and skip the filing rather than abort.
var ErrEmptyStatement = errors.New("statement contains no data rows")

// ResolutionError reports that none of the known title synonyms for a
// statement matched any document in the filing's catalog.
type ResolutionError struct {
	Statement StatementType
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no document resolved for %s in filing summary", e.Statement)
}

// UnsupportedFormatError reports that the resolved statement document is in a
// format this pipeline does not parse (e.g. a raw XML rendering).
type UnsupportedFormatError struct {
	File string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("statement file %s is not an HTML rendering", e.File)
}

// DateParseError reports a header date that could not be canonicalized.
type DateParseError struct {
	Raw string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("unparseable statement date %q", e.Raw)
}
