package gekko

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")
	assert.True(t, app.HasResource(&MockResource1{}))
	assert.False(t, app.HasResource(&MockResource2{}))

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")
}

func TestApp_addResources_PanicOnValue(t *testing.T) {
	app := &App{resources: make(map[reflect.Type]any)}
	assert.Panics(t, func() { app.addResources(MockResource1{}) })
}

func TestApp_SystemsReceiveResourcesAndCommands(t *testing.T) {
	app := NewApp()
	app.Commands().AddResources(NewMockResource1("shared"))

	var gotName string
	var gotCmd *Commands
	app.UseSystem(System(func(cmd *Commands, r *MockResource1) {
		gotCmd = cmd
		gotName = r.name
	}))
	app.Update()

	assert.Equal(t, "shared", gotName)
	assert.NotNil(t, gotCmd)
}

func TestApp_UnresolvedSystemDependencyPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(r *MockResource2) {}))
	assert.Panics(t, app.Update)
}

func TestApp_StagesRunInOrderAndFlushBetween(t *testing.T) {
	type Marker struct{}

	app := NewApp()
	var order []string
	var seenInUpdate int

	app.UseSystem(System(func(cmd *Commands) {
		order = append(order, "prelude")
		cmd.AddEntity(Marker{})
	}).InStage(Prelude))
	app.UseSystem(System(func(cmd *Commands) {
		order = append(order, "update")
		MakeQuery1[Marker](cmd).Map(func(EntityId, *Marker) bool {
			seenInUpdate++
			return true
		})
	}))
	app.UseSystem(System(func() { order = append(order, "finale") }).InStage(Finale))

	app.Update()

	assert.Equal(t, []string{"prelude", "update", "finale"}, order)
	assert.Equal(t, 1, seenInUpdate, "entities added in Prelude are visible in Update")
}

func TestApp_FlushCommands(t *testing.T) {
	type A struct{ v int }
	type B struct{}

	app := NewApp()
	cmd := app.Commands()

	id := cmd.AddEntity(A{v: 1})
	_, err := MakeQuery1[A](cmd).Get(id)
	assert.ErrorIs(t, err, ErrEntityNotFound, "additions are buffered")

	app.FlushCommands()
	a, err := MakeQuery1[A](cmd).Get(id)
	require.NoError(t, err)
	assert.Equal(t, 1, a.v)

	cmd.AddComponents(id, B{})
	app.FlushCommands()
	assert.Len(t, cmd.GetAllComponents(id), 2)

	cmd.RemoveComponents(id, B{})
	app.FlushCommands()
	assert.Equal(t, []any{A{v: 1}}, cmd.GetAllComponents(id))

	cmd.RemoveEntity(id)
	app.FlushCommands()
	assert.Nil(t, cmd.GetAllComponents(id))
}

func TestApp_RunStopsOnExit(t *testing.T) {
	app := NewApp()
	frames := 0
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 3 {
			cmd.Exit()
		}
	}))

	app.Run()

	assert.Equal(t, 3, frames)
	assert.True(t, app.Exiting())
}
