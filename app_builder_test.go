package gekko

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockModule struct {
	installed bool
	order     *[]string
	name      string
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
}

func TestAppBuilder_DefaultStages(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.Equal(t, defaultStages(), app.stages)
	for _, stage := range defaultStages() {
		assert.True(t, app.HasStage(stage))
	}
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	builder.UseModule(&MockModule{})
	assert.Len(t, builder.modules, 1)
}

func TestAppBuilder_Build_WithModules(t *testing.T) {
	var order []string
	module1 := &MockModule{order: &order, name: "first"}
	module2 := &MockModule{order: &order, name: "second"}

	builder := NewAppBuilder()
	builder.UseModule(module1)
	builder.UseModule(module2)
	builder.Build()

	assert.Len(t, builder.modules, 2)
	assert.True(t, module1.installed)
	assert.True(t, module2.installed)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestApp_UseStage(t *testing.T) {
	custom := Stage{Name: "Custom"}
	early := Stage{Name: "Early"}

	app := NewApp()
	app.UseStage(custom, AfterStage(PreUpdate))
	app.UseStage(early, BeforeStage(Prelude))

	require.Len(t, app.stages, len(defaultStages())+2)
	assert.Equal(t, early, app.stages[0])
	assert.Equal(t, custom, app.stages[3])
	assert.Equal(t, Update, app.stages[4])

	assert.Panics(t, func() { app.UseStage(custom, AfterStage(Update)) }, "duplicate stage")
	assert.Panics(t, func() { app.UseStage(Stage{Name: "Other"}, AfterStage(Stage{Name: "Missing"})) })
}

func TestApp_UseSystemInUnknownStagePanics(t *testing.T) {
	app := NewApp()
	assert.Panics(t, func() {
		app.UseSystem(System(func() {}).InStage(Stage{Name: "Missing"}))
	})
}
