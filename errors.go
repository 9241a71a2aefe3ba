package depreciation

import (
	"fmt"
)

// InvalidAssetError reports an asset whose values cannot be depreciated.
type InvalidAssetError struct {
	AssetID string
	Reason  string
}

func (e *InvalidAssetError) Error() string {
	return fmt.Sprintf("invalid asset %q: %s", e.AssetID, e.Reason)
}

// MalformedRecordError reports an input row whose fields cannot be parsed.
//
// Field is empty when the row itself is malformed (wrong number of fields).
type MalformedRecordError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed record: %v", e.Err)
	}
	return fmt.Sprintf("malformed %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// RecordError locates a recoverable failure of a single input row.
//
// The wrapped error is either a *MalformedRecordError or an *InvalidAssetError.
type RecordError struct {
	Line    int
	AssetID string
	Err     error
}

func (e *RecordError) Error() string {
	if e.AssetID == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: asset %q: %v", e.Line, e.AssetID, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// StructuralError reports an input that cannot be read as a whole. It is fatal
// to the run.
type StructuralError struct {
	Err error
}

func (e *StructuralError) Error() string { return fmt.Sprintf("invalid asset file: %v", e.Err) }

func (e *StructuralError) Unwrap() error { return e.Err }
