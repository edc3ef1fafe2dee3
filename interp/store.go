package interp

import (
	"mapscript/object"
	"mapscript/token"
)

// Store is the interpretation context's variable state. Each context
// owns exactly one, and one evaluation accesses it at a time; the
// evaluator itself keeps no state.
type Store struct {
	vars map[string]object.Object
}

func NewStore() *Store {
	return &Store{vars: map[string]object.Object{}}
}

func (s *Store) GetVariable(name string) (object.Object, bool) {
	v, ok := s.vars[name]
	return v, ok
}

func (s *Store) DefineVariable(name string, value object.Object) {
	s.vars[name] = value
}

// DefineHashMapEntry sets one entry of a named hashmap, creating the
// hashmap if the variable doesn't exist yet. A variable that exists
// with some other type is not silently replaced.
func (s *Store) DefineHashMapEntry(mapName, key string, value object.Object) *object.Error {
	existing, ok := s.vars[mapName]
	if !ok {
		h := object.NewHash()
		h.Set(key, value)
		s.vars[mapName] = h
		return nil
	}
	h, isHash := existing.(*object.Hash)
	if !isHash {
		return object.CreateErr("eval/target", token.Token{}, mapName)
	}
	h.Set(key, value)
	return nil
}
