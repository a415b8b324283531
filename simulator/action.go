package simulator

// State 表示动作生命周期状态
type State int

const (
	StateInactive State = iota
	StateRunning
	StateComplete
)

// Action 定义场景动作的通用生命周期
// Start执行一次性初始化，Step在每个仿真步被调用
type Action interface {
	Start(simTime float64)
	Step(dt, simTime float64)
	State() State
}

// actionState 嵌入各动作实现中，提供状态迁移
type actionState struct {
	state State
}

func (a *actionState) start() {
	a.state = StateRunning
}

func (a *actionState) stop() {
	a.state = StateComplete
}

// State 返回当前生命周期状态
func (a *actionState) State() State {
	return a.state
}

// IsActive 判断动作是否处于运行状态
func (a *actionState) IsActive() bool {
	return a.state == StateRunning
}
