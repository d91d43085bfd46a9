package gekko

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrEntityNotFound    = errors.New("entity not found")
	ErrComponentNotFound = errors.New("component not found")
	ErrNoEntities        = errors.New("no entities match the query")
	ErrMultipleEntities  = errors.New("multiple entities match the query")
)

// To add a wider query:
//  1. Add QueryN and identifyComponentsN
//  2. Implement Map/Get following the narrower queries
//  3. Add MakeQueryN so systems can build it from *Commands
type Query1[A any] struct {
	ecs     *Ecs
	exclude set[componentId]
}
type Query2[A, B any] struct {
	ecs     *Ecs
	exclude set[componentId]
}
type Query3[A, B, C any] struct {
	ecs     *Ecs
	exclude set[componentId]
}
type Query4[A, B, C, D any] struct {
	ecs     *Ecs
	exclude set[componentId]
}

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }
func MakeQuery4[A, B, C, D any](cmd *Commands) Query4[A, B, C, D] {
	return Query4[A, B, C, D]{ecs: cmd.app.ecs}
}

// Without skips archetypes holding any of the given component types.
func (q Query1[A]) Without(components ...any) Query1[A] {
	q.exclude = identifyOptionals(q.ecs, components...)
	return q
}

func (q Query2[A, B]) Without(components ...any) Query2[A, B] {
	q.exclude = identifyOptionals(q.ecs, components...)
	return q
}

func (q Query3[A, B, C]) Without(components ...any) Query3[A, B, C] {
	q.exclude = identifyOptionals(q.ecs, components...)
	return q
}

func (q Query4[A, B, C, D]) Without(components ...any) Query4[A, B, C, D] {
	q.exclude = identifyOptionals(q.ecs, components...)
	return q
}

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	id1 := identifyComponents1[A](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		if excluded(arch, q.exclude) {
			continue
		}
		comps1, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}

		for entityId, row := range arch.entities {
			if !m(entityId, at(comps1, row)) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	id1, id2 := identifyComponents2[A, B](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		if excluded(arch, q.exclude) {
			continue
		}
		comps1, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, ok := column[B](arch, id2, opt)
		if !ok {
			continue
		}

		for entityId, row := range arch.entities {
			if !m(entityId, at(comps1, row), at(comps2, row)) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	id1, id2, id3 := identifyComponents3[A, B, C](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		if excluded(arch, q.exclude) {
			continue
		}
		comps1, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, ok := column[B](arch, id2, opt)
		if !ok {
			continue
		}
		comps3, ok := column[C](arch, id3, opt)
		if !ok {
			continue
		}

		for entityId, row := range arch.entities {
			if !m(entityId, at(comps1, row), at(comps2, row), at(comps3, row)) {
				return
			}
		}
	}
}

func (q Query4[A, B, C, D]) Map(m func(EntityId, *A, *B, *C, *D) bool, optionals ...any) {
	id1, id2, id3, id4 := identifyComponents4[A, B, C, D](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		if excluded(arch, q.exclude) {
			continue
		}
		comps1, ok := column[A](arch, id1, opt)
		if !ok {
			continue
		}
		comps2, ok := column[B](arch, id2, opt)
		if !ok {
			continue
		}
		comps3, ok := column[C](arch, id3, opt)
		if !ok {
			continue
		}
		comps4, ok := column[D](arch, id4, opt)
		if !ok {
			continue
		}

		for entityId, row := range arch.entities {
			if !m(entityId, at(comps1, row), at(comps2, row), at(comps3, row), at(comps4, row)) {
				return
			}
		}
	}
}

// Get looks up a single entity. Without filters do not apply to point lookups.
func (q Query1[A]) Get(entityId EntityId) (*A, error) {
	return getComponent[A](q.ecs, entityId)
}

func (q Query2[A, B]) Get(entityId EntityId) (*A, *B, error) {
	a, err := getComponent[A](q.ecs, entityId)
	if err != nil {
		return nil, nil, err
	}
	b, err := getComponent[B](q.ecs, entityId)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// Single returns the only entity matching the query.
func (q Query1[A]) Single() (EntityId, *A, error) {
	var (
		found EntityId
		comp  *A
		count int
	)
	q.Map(func(eid EntityId, a *A) bool {
		count++
		found, comp = eid, a
		return count < 2
	})

	switch count {
	case 0:
		var a A
		return NoEntity, nil, fmt.Errorf("%s: %w", reflect.TypeOf(a).Name(), ErrNoEntities)
	case 1:
		return found, comp, nil
	default:
		var a A
		return NoEntity, nil, fmt.Errorf("%s: %w", reflect.TypeOf(a).Name(), ErrMultipleEntities)
	}
}

func getComponent[T any](ecs *Ecs, entityId EntityId) (*T, error) {
	var t T
	ptr, err := ecs.componentValue(entityId, reflect.TypeOf(t))
	if err != nil {
		return nil, err
	}
	return ptr.(*T), nil
}

// column returns the typed column for id. A missing optional column yields
// (nil, true); a missing required column yields (nil, false).
func column[T any](arch *archetype, id componentId, optionals set[componentId]) ([]T, bool) {
	if data, ok := arch.componentData[id]; ok {
		return data.([]T), true
	}
	_, optional := optionals[id]
	return nil, optional
}

func at[T any](comps []T, r row) *T {
	if comps == nil {
		return nil
	}
	return &comps[r]
}

func excluded(arch *archetype, exclude set[componentId]) bool {
	for id := range exclude {
		if _, ok := arch.componentData[id]; ok {
			return true
		}
	}
	return false
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId])
	for _, c := range components {
		res[ecs.getComponentId(componentType(c))] = struct{}{}
	}
	return res
}

func identifyComponents1[A any](ecs *Ecs) componentId {
	var a A
	return ecs.getComponentId(reflect.TypeOf(a))
}

func identifyComponents2[A, B any](ecs *Ecs) (componentId, componentId) {
	var a A
	var b B
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b))
}

func identifyComponents3[A, B, C any](ecs *Ecs) (componentId, componentId, componentId) {
	var a A
	var b B
	var c C
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b)), ecs.getComponentId(reflect.TypeOf(c))
}

func identifyComponents4[A, B, C, D any](ecs *Ecs) (componentId, componentId, componentId, componentId) {
	var a A
	var b B
	var c C
	var d D
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b)), ecs.getComponentId(reflect.TypeOf(c)), ecs.getComponentId(reflect.TypeOf(d))
}
