package engine

import (
	"errors"
	"fmt"

	"tablelens/domain/analysis"
	"tablelens/domain/core"
	apperrors "tablelens/internal/errors"
)

// validate enforces the per-type column-count bounds and the structural
// requirements a request must meet before any data is touched.
func validate(req analysis.Request) error {
	bounds, known := req.Type.Bounds()
	if !known {
		return core.NewValidationError("type", fmt.Sprintf("unknown analysis type %q", req.Type))
	}
	if req.Table == "" {
		return core.NewValidationError("table", "table name is required")
	}

	if req.Type == analysis.TypeCanonical {
		if len(req.LeftColumns) < 1 || len(req.RightColumns) < 1 {
			return core.NewValidationError("columns", "canonical correlation needs at least one column per side")
		}
		for _, l := range req.LeftColumns {
			for _, r := range req.RightColumns {
				if l == r {
					return core.NewValidationError("columns", "left and right column sets must be disjoint: "+l)
				}
			}
		}
		return nil
	}

	count := len(req.Columns)
	if count < bounds.Min {
		return core.NewValidationError("columns",
			fmt.Sprintf("%s requires at least %d column(s), got %d", req.Type, bounds.Min, count))
	}
	if bounds.Max > 0 && count > bounds.Max {
		return core.NewValidationError("columns",
			fmt.Sprintf("%s accepts at most %d column(s), got %d", req.Type, bounds.Max, count))
	}
	return nil
}

func errInvalidColumn(col string) error {
	return core.NewInvalidColumnError(col, "fewer than 10 numeric values present")
}

// asAppError maps domain sentinel errors to coded application errors so
// the facade's failure side stays as typed as its success side.
func asAppError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	switch {
	case errors.Is(err, core.ErrValidation):
		return apperrors.WithCode(apperrors.CodeValidationError, err)
	case errors.Is(err, core.ErrInsufficientData):
		return apperrors.WithCode(apperrors.CodeInsufficientData, err)
	case errors.Is(err, core.ErrInsufficientVariables):
		return apperrors.WithCode(apperrors.CodeInsufficientVariables, err)
	case errors.Is(err, core.ErrInvalidColumn):
		return apperrors.WithCode(apperrors.CodeInvalidColumn, err)
	case errors.Is(err, core.ErrDimensionMismatch):
		return apperrors.WithCode(apperrors.CodeDimensionMismatch, err)
	case errors.Is(err, core.ErrSingularMatrix):
		return apperrors.WithCode(apperrors.CodeSingularMatrix, err)
	case errors.Is(err, core.ErrAnalysisFailed):
		return apperrors.WithCode(apperrors.CodeAnalysisFailed, err)
	case errors.Is(err, core.ErrNotFound):
		return apperrors.WithCode(apperrors.CodeNotFound, err)
	default:
		return apperrors.Wrap(err, "analysis failed")
	}
}
