package gekko

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEcsReflect_ReflectSliceMake(t *testing.T) {
	intSlice := reflectSliceMake(reflect.TypeOf(0))
	assert.Equal(t, reflect.Slice, reflect.TypeOf(intSlice).Kind())
	assert.Equal(t, reflect.Int, reflect.TypeOf(intSlice).Elem().Kind())

	type myStruct struct{ A int }
	structSlice := reflectSliceMake(reflect.TypeOf(myStruct{}))
	assert.Equal(t, reflect.TypeOf(myStruct{}), reflect.TypeOf(structSlice).Elem())
}

func TestEcsReflect_ReflectSliceGet(t *testing.T) {
	slice := []int{10, 20, 30}
	val := reflectSliceGet(slice, 1)
	assert.Equal(t, int64(20), val.Int())

	// Elements are addressable so queries can hand out pointers.
	*val.Addr().Interface().(*int) = 21
	assert.Equal(t, 21, slice[1])
}

func TestEcsReflect_ReflectSliceGet_PanicOnInvalidIndex(t *testing.T) {
	slice := []int{1, 2}
	assert.Panics(t, func() { _ = reflectSliceGet(slice, 10) })
}

func TestEcsReflect_ReflectSliceSet(t *testing.T) {
	slice := []int{1, 2}
	reflectSliceSet(slice, 0, reflect.ValueOf(99))
	assert.Equal(t, 99, slice[0])
}

func TestEcsReflect_ReflectSliceSet_PanicOnTypeMismatch(t *testing.T) {
	slice := []int{1, 2}
	assert.Panics(t, func() { reflectSliceSet(slice, 0, reflect.ValueOf("wrong type")) })
}

func TestEcsReflect_ReflectSliceAppend(t *testing.T) {
	slice := []int{}
	for i := 0; i < 5; i++ {
		slice = reflectSliceAppend(slice, reflect.ValueOf(i)).([]int)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, slice)
}

func TestEcsReflect_ReflectSliceAppend_PanicOnWrongType(t *testing.T) {
	slice := []int{}
	assert.Panics(t, func() { _ = reflectSliceAppend(slice, reflect.ValueOf("string")) })
}
