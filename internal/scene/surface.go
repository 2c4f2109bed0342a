package scene

// Surface - внешняя поверхность отображения
type Surface interface {
	// Render рисует кадр с точки зрения камеры
	Render(frame *Frame, cam *Camera)
	// SetOutputSize меняет размер выходной поверхности
	SetOutputSize(width, height int)
}

// HeadlessSurface ничего не рисует, только запоминает последний кадр.
// Используется в тестах и при воспроизведении журналов.
type HeadlessSurface struct {
	Width, Height int
	Frames        uint64
	Last          *Frame
	LastCamera    Camera
}

// Render запоминает кадр и копию камеры
func (s *HeadlessSurface) Render(frame *Frame, cam *Camera) {
	s.Frames++
	s.Last = frame
	s.LastCamera = *cam
}

// SetOutputSize запоминает размер
func (s *HeadlessSurface) SetOutputSize(width, height int) {
	s.Width = width
	s.Height = height
}
