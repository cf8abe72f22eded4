package dmsort

import (
	"fmt"
	"reflect"
	"sync"
)

// Engine selects how elements travel between the slice and the drop buffer.
type Engine uint8

const (
	// EngineAuto picks EngineCopy or EngineMove from the element type.
	EngineAuto Engine = iota

	// EngineCopy duplicates elements into the buffer and leaves stale values
	// behind. Used for pointer-free types.
	EngineCopy

	// EngineMove transfers ownership: every vacated slot is zeroed.
	// Used for types that hold references.
	EngineMove
)

// String returns the engine name.
func (e Engine) String() string {
	switch e {
	case EngineAuto:
		return "auto"
	case EngineCopy:
		return "copy"
	case EngineMove:
		return "move"
	default:
		return "unknown"
	}
}

// ParseEngine converts a name produced by Engine.String back to an Engine.
// The empty string is EngineAuto.
func ParseEngine(name string) (Engine, error) {
	switch name {
	case "", "auto":
		return EngineAuto, nil
	case "copy":
		return EngineCopy, nil
	case "move":
		return EngineMove, nil
	default:
		return EngineAuto, fmt.Errorf("unknown engine %q: must be one of auto, copy, move", name)
	}
}

// engineCache maps reflect.Type to the resolved Engine.
var engineCache sync.Map

// EngineFor reports the engine EngineAuto resolves to for element type E.
// Types without pointers are trivially copyable and get EngineCopy; all
// others get EngineMove.
func EngineFor[E any]() Engine {
	t := reflect.TypeFor[E]()
	if eng, ok := engineCache.Load(t); ok {
		return eng.(Engine)
	}
	eng := EngineMove
	if triviallyCopyable(t) {
		eng = EngineCopy
	}
	engineCache.Store(t, eng)
	return eng
}

// triviallyCopyable reports whether values of t contain no pointers.
func triviallyCopyable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || triviallyCopyable(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !triviallyCopyable(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// String, Slice, Map, Pointer, Chan, Func, Interface, UnsafePointer.
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e Engine) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Engine) UnmarshalText(text []byte) error {
	eng, err := ParseEngine(string(text))
	if err != nil {
		return err
	}
	*e = eng
	return nil
}
