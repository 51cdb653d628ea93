package catalog

import (
	"errors"
	"fmt"
)

// Kind names the kind of resource a NotFoundError refers to.
type Kind string

const (
	// KindProject is an owning project looked up by name.
	KindProject Kind = "project"
	// KindAssetType is an asset type looked up by name.
	KindAssetType Kind = "asset type"
)

var (
	// ErrNotFound matches every NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrProjectNotFound matches a NotFoundError of KindProject.
	ErrProjectNotFound = errors.New("project not found")
	// ErrAssetTypeNotFound matches a NotFoundError of KindAssetType.
	ErrAssetTypeNotFound = errors.New("asset type not found")
)

// NotFoundError reports a name that could not be resolved before a call.
type NotFoundError struct {
	Kind Kind
	Name string
	// Err is the remote error behind the failure, if any.
	Err error
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is matches ErrNotFound and the sentinel for the error's kind.
func (e *NotFoundError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return true
	case ErrProjectNotFound:
		return e.Kind == KindProject
	case ErrAssetTypeNotFound:
		return e.Kind == KindAssetType
	default:
		return false
	}
}
