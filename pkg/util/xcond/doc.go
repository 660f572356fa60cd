// Package xcond 提供支持超时等待的条件变量。
//
// 标准库 sync.Cond 不支持超时/取消等待，这是本包存在的唯一原因：
// Cond 在 sync.Cond 语义之上增加 WaitContext（ctx 取消）和
// WaitTimeout（截止时间，返回超时指示）。
//
// # 注意事项
//
//   - Wait 系列方法调用前必须持有 L，返回时（含超时/取消路径）重新持有 L
//   - 唤醒不保证条件成立（与 sync.Cond 相同），应在循环中检查条件
//   - Signal 唤醒最早的等待者（FIFO）；若该等待者恰在同一瞬间超时退出，
//     唤醒会转交给下一个等待者，不会丢失
//   - 本包不依赖任何运行时内部机制，纯 channel 实现
//
// # 设计选择说明
//
// 设计决策: 不内嵌 sync.Cond 而是独立实现。sync.Cond 的等待队列
// 无法与 select 组合，做不到取消语义；per-waiter channel 则天然支持。
// 代价是每次 Wait 一次 channel 分配，对条件变量的使用频率完全可接受。
package xcond
