package session

import (
	"github.com/colt-lang/coltgo/internal/constfold"
	"github.com/colt-lang/coltgo/internal/diag"
)

// WarnFor is the bitmask selecting which warning families a Session
// reports. Constant-folding diagnostics are warnings, not errors: a
// fold that overflows still produces a defined value, so the mask only
// controls whether the user hears about it.
type WarnFor uint8

const (
	WarnShadowing WarnFor = 1 << iota
	WarnVisibilityRedundancy
	WarnFoldNaN
	WarnFoldSignedOverflow
	WarnFoldUnsignedOverflow
	WarnFoldInvalidShift

	// WarnAll enables every warning family; the default for a new
	// Session.
	WarnAll = WarnShadowing | WarnVisibilityRedundancy | WarnFoldNaN |
		WarnFoldSignedOverflow | WarnFoldUnsignedOverflow | WarnFoldInvalidShift
)

// Enabled reports whether every bit of flag is set in w.
func (w WarnFor) Enabled(flag WarnFor) bool { return w&flag == flag }

// WithWarnFor overrides the default WarnAll mask.
func WithWarnFor(mask WarnFor) SessionOption {
	return func(s *Session) { s.Warns = mask }
}

// foldWarnBit maps a fold outcome to the WarnFor bit that gates its
// report; outcomes that are not warnings (NoError, InvalidOp,
// DivByZero — the latter two surface as errors at the call site that
// attempted the fold) map to zero.
func foldWarnBit(err constfold.OpError) WarnFor {
	switch err {
	case constfold.WasNaN, constfold.RetNaN:
		return WarnFoldNaN
	case constfold.SignedOverflow, constfold.SignedUnderflow:
		return WarnFoldSignedOverflow
	case constfold.UnsignedOverflow, constfold.UnsignedUnderflow:
		return WarnFoldUnsignedOverflow
	case constfold.ShiftByGreSizeof:
		return WarnFoldInvalidShift
	default:
		return 0
	}
}

// ReportFold routes a constant-folding outcome to the session's
// reporter as a warning, when the outcome's family is enabled in the
// Warns mask. Outcomes with no warning family are ignored.
func (s *Session) ReportFold(err constfold.OpError, info *diag.SourceInfo) {
	bit := foldWarnBit(err)
	if bit == 0 || !s.Warns.Enabled(bit) {
		return
	}
	s.Report.Warn(err.String(), info, nil)
}
