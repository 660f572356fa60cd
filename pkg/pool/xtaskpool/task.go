package xtaskpool

// Task 是提交给池异步执行的一次性工作单元。
// Execute 无参数、无返回值；每个被成功出队的任务至多执行一次。
// Execute 不得假设自己持有池的任何锁；在任务内再次 Submit 同一个池是允许的，
// 但必须把满队列拒绝当作正常结果处理。
type Task interface {
	Execute()
}

// TaskFunc 将普通函数适配为 Task。
type TaskFunc func()

// Execute 实现 Task 接口。
func (f TaskFunc) Execute() { f() }
