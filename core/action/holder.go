package action

import (
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Holder carries one submitted action through its lifecycle.
// Handlers receive the same Holder for Send and Cancel, so it can be used
// as the key for per-action state.
type Holder struct {
	ID        string    `json:"id"`
	Action    any       `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

// NewHolder wraps an action with an auto-generated ID and timestamp.
func NewHolder(a any) *Holder {
	return &Holder{
		ID:        uuid.New().String(),
		Action:    a,
		CreatedAt: time.Now(),
	}
}

// Name returns the action type name.
func (h *Holder) Name() string {
	return Name(h.Action)
}

// actionNameCache caches reflection results keyed by reflect.Type.
var actionNameCache sync.Map

// Name derives an action name from its type.
// For structs and pointers to structs it returns the struct name.
func Name(a any) string {
	if a == nil {
		return "<nil>"
	}
	return typeName(reflect.TypeOf(a))
}

func typeName(t reflect.Type) string {
	if name, ok := actionNameCache.Load(t); ok {
		return name.(string)
	}

	original := t
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}

	actionNameCache.Store(original, name)
	return name
}
