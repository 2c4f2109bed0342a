package scene

import (
	"testing"

	"github.com/annel0/woodland/internal/vec"
	"github.com/annel0/woodland/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamera_Follow(t *testing.T) {
	c := NewCamera(800, 600, DefaultFollowOffset)
	player := vec.New(3.2, 1, -7.4)

	c.Follow(player)

	assert.Equal(t, player.Add(vec.New(0, 1.5, 5)), c.Position)
	assert.Equal(t, player, c.Target)
}

func TestCamera_SetAspect(t *testing.T) {
	c := NewCamera(800, 400, DefaultFollowOffset)
	assert.Equal(t, 2.0, c.Aspect)

	c.SetAspect(300, 300)
	assert.Equal(t, 1.0, c.Aspect)

	c.SetAspect(300, 0)
	assert.Equal(t, 1.0, c.Aspect, "нулевая высота игнорируется")
}

func TestProject_TargetAtScreenCenter(t *testing.T) {
	c := NewCamera(800, 600, DefaultFollowOffset)
	c.Follow(vec.New(10, 1, 10))

	p, ok := Project(c.ViewProjection(), c.Target, 800, 600)
	require.True(t, ok)
	assert.InDelta(t, 400, p.X, 1e-6)
	assert.InDelta(t, 300, p.Y, 1e-6)
	assert.InDelta(t, c.Offset.Length(), p.Depth, 1e-6)
}

func TestProject_BehindCamera(t *testing.T) {
	c := NewCamera(800, 600, DefaultFollowOffset)
	c.Follow(vec.New(0, 1, 0))

	// Точка за спиной камеры
	_, ok := Project(c.ViewProjection(), vec.New(0, 1.5, 20), 800, 600)
	assert.False(t, ok)
}

func TestProject_RightIsRight(t *testing.T) {
	c := NewCamera(800, 600, DefaultFollowOffset)
	c.Follow(vec.New(0, 1, 0))

	p, ok := Project(c.ViewProjection(), vec.New(1, 1, 0), 800, 600)
	require.True(t, ok)
	assert.Greater(t, p.X, 400.0)

	p, ok = Project(c.ViewProjection(), vec.New(0, 2, 0), 800, 600)
	require.True(t, ok)
	assert.Less(t, p.Y, 300.0, "точка выше цели рисуется выше центра")
}

func TestBuildFrame(t *testing.T) {
	w := world.NewDefault("grass.jpg")
	f := BuildFrame(w, 42)

	assert.Equal(t, uint64(42), f.Tick)
	require.Len(t, f.Lights, 2)
	assert.Equal(t, LightAmbient, f.Lights[0].Kind)
	assert.Equal(t, 0.5, f.Lights[0].Intensity)
	assert.Equal(t, vec.New(50, 50, 50), f.Lights[1].Position)

	counts := map[Kind]int{}
	for _, p := range f.Primitives {
		counts[p.Kind]++
	}
	assert.Equal(t, 1, counts[KindPlane])
	assert.Equal(t, 4, counts[KindCone])
	assert.Equal(t, 9, counts[KindCylinder])
	assert.Equal(t, 9, counts[KindSphere])
	assert.Equal(t, 1, counts[KindBox])

	ground := f.Primitives[0]
	assert.Equal(t, "grass.jpg", ground.TexturePath)
	assert.Equal(t, 20, ground.TextureRepeat)
	assert.Equal(t, 200.0, ground.Width)

	// Ствол и крона первого дерева
	trunk, foliage := f.Primitives[5], f.Primitives[6]
	assert.Equal(t, vec.New(-10, 2.5, -10), trunk.Position)
	assert.Equal(t, vec.New(-10, 6, -10), foliage.Position)
	assert.Equal(t, ColorFoliage, foliage.Color)

	box := f.Primitives[len(f.Primitives)-1]
	assert.Equal(t, world.EntityTypePlayer, box.Entity)
	assert.Equal(t, world.PlayerSpawn, box.Position)
}

func TestColor_RGBA(t *testing.T) {
	c := ColorMountain.RGBA()
	assert.Equal(t, uint8(0x8b), c.R)
	assert.Equal(t, uint8(0x77), c.G)
	assert.Equal(t, uint8(0x65), c.B)
	assert.Equal(t, uint8(0xff), c.A)
}

func TestHeadlessSurface(t *testing.T) {
	s := &HeadlessSurface{}
	c := NewCamera(10, 10, DefaultFollowOffset)
	f := &Frame{Tick: 1}

	s.Render(f, c)
	c.Follow(vec.New(1, 1, 1))
	s.SetOutputSize(640, 480)

	assert.Equal(t, uint64(1), s.Frames)
	assert.Same(t, f, s.Last)
	assert.Equal(t, vec.Vec3Float{}, s.LastCamera.Target, "сохраняется копия камеры")
	assert.Equal(t, 640, s.Width)
	assert.Equal(t, 480, s.Height)
}
