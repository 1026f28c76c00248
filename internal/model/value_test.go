package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode_PreservesFieldOrder(t *testing.T) {
	v, err := Decode([]byte(`{"Zulu": 1, "Alpha": 2, "Mike": 3}`))
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind())

	fields := v.Fields()
	require.Len(t, fields, 3)
	require.Equal(t, "Zulu", fields[0].Name)
	require.Equal(t, "Alpha", fields[1].Name)
	require.Equal(t, "Mike", fields[2].Name)
}

func TestDecode_KeepsNumberLiterals(t *testing.T) {
	v, err := Decode([]byte(`{"Int": 200, "Float": 1.10, "Exp": 1e3}`))
	require.NoError(t, err)

	intV, ok := v.Get("Int")
	require.True(t, ok)
	require.Equal(t, "200", intV.NumberVal().String())

	floatV, ok := v.Get("Float")
	require.True(t, ok)
	require.Equal(t, "1.10", floatV.NumberVal().String())

	expV, ok := v.Get("Exp")
	require.True(t, ok)
	require.Equal(t, "1e3", expV.NumberVal().String())
}

func TestDecode_NestedShapes(t *testing.T) {
	v, err := Decode([]byte(`{"Pool": [{"weight": 1, "ok": true}], "Empty": null}`))
	require.NoError(t, err)

	pool, ok := v.Get("Pool")
	require.True(t, ok)
	require.Equal(t, KindArray, pool.Kind())
	require.Len(t, pool.Elems(), 1)

	weight, ok := pool.Elems()[0].Get("weight")
	require.True(t, ok)

	f, err := weight.Float()
	require.NoError(t, err)
	require.Equal(t, 1.0, f)

	empty, ok := v.Get("Empty")
	require.True(t, ok)
	require.True(t, empty.IsNull())
}

func TestDecode_MalformedInput(t *testing.T) {
	_, err := Decode([]byte(`{"Name": `))
	require.ErrorIs(t, err, ErrMalformedInput)

	_, err = Decode([]byte(`{} trailing`))
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestFloat_ShapeMismatch(t *testing.T) {
	_, err := String("fast").Float()
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestSetAndSetPath(t *testing.T) {
	obj := Object()
	obj.Set("A", Number("1"))
	obj.Set("B", Number("2"))
	obj.Set("A", Number("3")) // replace keeps position

	fields := obj.Fields()
	require.Len(t, fields, 2)
	require.Equal(t, "A", fields[0].Name)
	require.Equal(t, "3", fields[0].Value.NumberVal().String())

	obj.SetPath([]string{"Nested", "Deep", "Field"}, String("x"))

	got, ok := obj.GetPath("Nested", "Deep", "Field")
	require.True(t, ok)
	require.Equal(t, "x", got.StringVal())
}

func TestWithPath_DoesNotMutateOriginal(t *testing.T) {
	obj := Object()
	obj.SetPath([]string{"Module", "Field"}, String("old"))

	updated := obj.WithPath([]string{"Module", "Field"}, String("new"))

	original, ok := obj.GetPath("Module", "Field")
	require.True(t, ok)
	require.Equal(t, "old", original.StringVal())

	changed, ok := updated.GetPath("Module", "Field")
	require.True(t, ok)
	require.Equal(t, "new", changed.StringVal())
}

func TestNumberFromFloat(t *testing.T) {
	require.Equal(t, "80", NumberFromFloat(80).NumberVal().String())
	require.Equal(t, "12.5", NumberFromFloat(12.5).NumberVal().String())
}
