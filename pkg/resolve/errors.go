package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSupportRecord is matched by every InvalidSupportRecordError.
var ErrInvalidSupportRecord = errors.New("invalid support record")

// InvalidSupportRecordError reports a statement whose notes or flags cannot be
// rendered. Query and Feature are filled in by the table builder.
type InvalidSupportRecordError struct {
	Query   string
	Feature string
	Runtime string
	Reason  string
}

func (e *InvalidSupportRecordError) Error() string {
	var where []string
	if e.Query != "" {
		where = append(where, "query "+e.Query)
	}
	if e.Feature != "" {
		where = append(where, "feature "+e.Feature)
	}
	if e.Runtime != "" {
		where = append(where, "runtime "+e.Runtime)
	}
	if len(where) == 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidSupportRecord, e.Reason)
	}
	return fmt.Sprintf("%s (%s): %s", ErrInvalidSupportRecord, strings.Join(where, ", "), e.Reason)
}

func (e *InvalidSupportRecordError) Unwrap() error {
	return ErrInvalidSupportRecord
}
