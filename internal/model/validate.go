package model

import (
	"errors"
	"fmt"
)

// ErrDuplicateParamID is returned when two descriptors share an id.
var ErrDuplicateParamID = errors.New("model: duplicate param id")

// ValidateParams checks that descriptor ids are unique.
func ValidateParams(params []Param) error {
	seen := make(map[int]struct{}, len(params))
	for _, param := range params {
		if _, exists := seen[param.ID]; exists {
			return fmt.Errorf("%w: %d", ErrDuplicateParamID, param.ID)
		}
		seen[param.ID] = struct{}{}
	}
	return nil
}
