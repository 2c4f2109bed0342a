package input

// Dispatcher выполняет разовые действия в момент нажатия клавиши
type Dispatcher interface {
	Dispatch(action Action)
}

// DispatcherFunc адаптирует функцию к интерфейсу Dispatcher
type DispatcherFunc func(Action)

// Dispatch вызывает f(action)
func (f DispatcherFunc) Dispatch(action Action) {
	f(action)
}

// Controller - единственный владелец состояния управления.
// Движение - по уровню (флаг держится, пока клавиша нажата),
// действия - по фронту (каждое событие нажатия, включая автоповтор).
type Controller struct {
	moves    map[Key]Direction
	actions  map[Key]Action
	state    ControlState
	dispatch Dispatcher
}

// NewController создает контроллер с указанной раскладкой
func NewController(b Bindings, d Dispatcher) (*Controller, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	return &Controller{
		moves: map[Key]Direction{
			b.Forward:  Forward,
			b.Backward: Backward,
			b.Left:     Left,
			b.Right:    Right,
		},
		actions: map[Key]Action{
			b.BreakTree: ActionBreakTree,
			b.PlaceTree: ActionPlaceTree,
		},
		dispatch: d,
	}, nil
}

// OnKeyDown обрабатывает нажатие. Возвращает false для нераспознанных клавиш.
func (c *Controller) OnKeyDown(key Key) bool {
	if dir, ok := c.moves[key]; ok {
		c.set(dir, true)
		return true
	}
	if action, ok := c.actions[key]; ok {
		if c.dispatch != nil {
			c.dispatch.Dispatch(action)
		}
		return true
	}
	return false
}

// OnKeyUp обрабатывает отпускание. Для клавиш действий ничего не делает.
func (c *Controller) OnKeyUp(key Key) bool {
	if dir, ok := c.moves[key]; ok {
		c.set(dir, false)
		return true
	}
	return false
}

// Handle направляет событие в OnKeyDown или OnKeyUp
func (c *Controller) Handle(ev KeyEvent) bool {
	if ev.Kind == KeyUp {
		return c.OnKeyUp(ev.Key)
	}
	return c.OnKeyDown(ev.Key)
}

// State возвращает текущее состояние управления
func (c *Controller) State() ControlState {
	return c.state
}

func (c *Controller) set(dir Direction, held bool) {
	switch dir {
	case Forward:
		c.state.Forward = held
	case Backward:
		c.state.Backward = held
	case Left:
		c.state.Left = held
	case Right:
		c.state.Right = held
	}
}
