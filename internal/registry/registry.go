// Package registry persists named light snapshots on the local machine.
//
// A registry keeps two collections: dumps, which are saved states a user
// can re-apply, and defaults, the state a light should return to.
package registry

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jsvensson/lumen/internal/light"
)

var (
	ErrNotFound    = errors.New("snapshot not found")
	ErrExists      = errors.New("snapshot already exists")
	ErrUnnamed     = errors.New("light has no name")
	ErrInvalidName = errors.New("invalid snapshot name")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// ValidateName checks that name can be used as a snapshot name.
func ValidateName(name string) error {
	if name == "" {
		return ErrUnnamed
	}
	if !validName.MatchString(name) {
		return fmt.Errorf("%w %q: use letters, digits, '_', '.' and '-'", ErrInvalidName, name)
	}
	return nil
}

// Registry stores light snapshots under the light's name.
type Registry interface {
	Name() string

	ListDefaults() ([]*light.Light, error)
	ListDumps() ([]*light.Light, error)

	LoadDefault(name string) (*light.Light, error)
	LoadDump(name string) (*light.Light, error)

	// Default and Dump save l under l.Name(), replacing any existing entry.
	Default(l *light.Light) error
	Dump(l *light.Light) error

	RemoveDefault(name string) error
	RemoveDump(name string) error

	RenameDefault(oldName, newName string) error
	RenameDump(oldName, newName string) error
}
