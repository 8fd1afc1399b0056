package overrides

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/themer/internal/ports"
	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

// Key is the unscoped persistence key.
const Key = "theme:overrides"

// Scope narrows overrides to one route, container and element.
type Scope struct {
	Route     string `json:"route" validate:"required"`
	Container string `json:"container" validate:"required,oneof=page header footer hero section"`
	Element   string `json:"element" validate:"required"`
}

// DefaultScope is the page-wide scope of route "/".
func DefaultScope() Scope {
	return Scope{Route: "/", Container: "page", Element: "default"}
}

// Validate checks the container name and that no part is empty.
func (s Scope) Validate() error {
	if err := validatorInstance().Struct(s); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
			ve := ves[0]
			msg := "is required"
			if ve.Tag() == "oneof" {
				msg = fmt.Sprintf("must be one of %s", strings.ReplaceAll(ve.Param(), " ", ", "))
			}
			return themeerrors.NewValidationError("scope."+ve.Field(), msg, err)
		}
		return err
	}
	return nil
}

// Key returns the persistence key for the scope.
func (s Scope) Key() string {
	return fmt.Sprintf("%s:%s:%s:%s", Key, s.Route, s.Container, s.Element)
}

// Store reads and writes one override record through a ports.KVStore.
type Store struct {
	kv     ports.KVStore
	key    string
	logger ports.Logger
}

// NewStore creates a Store using the unscoped key.
func NewStore(kv ports.KVStore, logger ports.Logger) *Store {
	return &Store{kv: kv, key: Key, logger: logger}
}

// NewScopedStore creates a Store keyed by scope.
func NewScopedStore(kv ports.KVStore, scope Scope, logger ports.Logger) (*Store, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	return &Store{kv: kv, key: scope.Key(), logger: logger}, nil
}

// Key returns the persistence key used by s.
func (s *Store) Key() string {
	return s.key
}

// Load returns the persisted overrides. An absent, unreadable or malformed
// record yields an empty set and is only logged.
func (s *Store) Load(ctx context.Context) Overrides {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.warn(ctx, "override store read failed", "error", err)
		return Overrides{}
	}
	if !ok || raw == "" {
		return Overrides{}
	}

	var o Overrides
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		s.warn(ctx, "ignoring persisted overrides", "error", fmt.Errorf("%w: %v", themeerrors.ErrMalformedOverrides, err))
		return Overrides{}
	}
	if err := o.Validate(); err != nil {
		s.warn(ctx, "ignoring persisted overrides", "error", fmt.Errorf("%w: %v", themeerrors.ErrMalformedOverrides, err))
		return Overrides{}
	}
	return o
}

// Save replaces the persisted record with o.
func (s *Store) Save(ctx context.Context, o Overrides) error {
	if err := o.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode overrides: %w", err)
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("persist overrides: %w", err)
	}
	if s.logger != nil {
		s.logger.Debug(ctx, "overrides saved", "key", s.key)
	}
	return nil
}

// Clear removes the persisted record.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Remove(s.key); err != nil {
		return fmt.Errorf("clear overrides: %w", err)
	}
	if s.logger != nil {
		s.logger.Debug(ctx, "overrides cleared", "key", s.key)
	}
	return nil
}

func (s *Store) warn(ctx context.Context, msg string, fields ...interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(ctx, msg, append([]interface{}{"key", s.key}, fields...)...)
}
