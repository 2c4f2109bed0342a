package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	actions []Action
}

func (r *recordingDispatcher) Dispatch(a Action) {
	r.actions = append(r.actions, a)
}

func newTestController(t *testing.T) (*Controller, *recordingDispatcher) {
	t.Helper()
	rec := &recordingDispatcher{}
	c, err := NewController(DefaultBindings(), rec)
	require.NoError(t, err)
	return c, rec
}

func TestController_MovementFlags(t *testing.T) {
	c, rec := newTestController(t)

	tests := []struct {
		key  Key
		want ControlState
	}{
		{"w", ControlState{Forward: true}},
		{"s", ControlState{Backward: true}},
		{"a", ControlState{Left: true}},
		{"d", ControlState{Right: true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.True(t, c.OnKeyDown(tt.key))
			assert.Equal(t, tt.want, c.State())
			assert.True(t, c.OnKeyUp(tt.key))
			assert.Equal(t, ControlState{}, c.State())
		})
	}

	assert.Empty(t, rec.actions, "движение не должно порождать действий")
}

func TestController_FlagsAreIndependent(t *testing.T) {
	c, _ := newTestController(t)

	c.OnKeyDown("w")
	c.OnKeyDown("s")
	c.OnKeyDown("d")
	assert.Equal(t, ControlState{Forward: true, Backward: true, Right: true}, c.State())

	c.OnKeyUp("s")
	assert.Equal(t, ControlState{Forward: true, Right: true}, c.State())

	// Повторное нажатие удерживаемой клавиши ничего не меняет
	c.OnKeyDown("w")
	assert.Equal(t, ControlState{Forward: true, Right: true}, c.State())
}

func TestController_ActionsAreEdgeTriggered(t *testing.T) {
	c, rec := newTestController(t)

	c.OnKeyDown("e")
	c.OnKeyDown("r")
	// Автоповтор: каждое событие нажатия срабатывает снова
	c.OnKeyDown("r")
	c.OnKeyDown("r")

	assert.Equal(t, []Action{ActionBreakTree, ActionPlaceTree, ActionPlaceTree, ActionPlaceTree}, rec.actions)

	assert.False(t, c.OnKeyUp("e"), "отпускание клавиши действия ничего не делает")
	assert.Len(t, rec.actions, 4)
	assert.Equal(t, ControlState{}, c.State())
}

func TestController_UnknownKeysIgnored(t *testing.T) {
	c, rec := newTestController(t)

	for _, k := range []Key{"q", "W", "Shift", "", "ArrowUp"} {
		assert.False(t, c.OnKeyDown(k))
		assert.False(t, c.OnKeyUp(k))
	}
	assert.Equal(t, ControlState{}, c.State())
	assert.Empty(t, rec.actions)
}

func TestController_Handle(t *testing.T) {
	c, rec := newTestController(t)

	c.Handle(KeyEvent{Kind: KeyDown, Key: "a"})
	assert.True(t, c.State().Left)
	c.Handle(KeyEvent{Kind: KeyUp, Key: "a"})
	assert.False(t, c.State().Left)
	c.Handle(KeyEvent{Kind: KeyDown, Key: "e"})
	assert.Equal(t, []Action{ActionBreakTree}, rec.actions)
}

func TestController_NilDispatcher(t *testing.T) {
	c, err := NewController(DefaultBindings(), nil)
	require.NoError(t, err)
	assert.True(t, c.OnKeyDown("r"))
}

func TestController_CustomBindings(t *testing.T) {
	rec := &recordingDispatcher{}
	b := Bindings{Forward: "i", Backward: "k", Left: "j", Right: "l", BreakTree: "u", PlaceTree: "o"}
	c, err := NewController(b, DispatcherFunc(rec.Dispatch))
	require.NoError(t, err)

	assert.False(t, c.OnKeyDown("w"))
	assert.True(t, c.OnKeyDown("i"))
	assert.True(t, c.State().Forward)
	c.OnKeyDown("o")
	assert.Equal(t, []Action{ActionPlaceTree}, rec.actions)
}

func TestBindings_Validate(t *testing.T) {
	assert.NoError(t, DefaultBindings().Validate())

	empty := DefaultBindings()
	empty.Left = ""
	assert.ErrorIs(t, empty.Validate(), ErrInvalidBindings)

	dup := DefaultBindings()
	dup.PlaceTree = "w"
	err := dup.Validate()
	assert.ErrorIs(t, err, ErrInvalidBindings)
	assert.Contains(t, err.Error(), "forward")

	_, err = NewController(dup, nil)
	assert.ErrorIs(t, err, ErrInvalidBindings)
}
