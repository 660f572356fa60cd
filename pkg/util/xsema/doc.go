// Package xsema 提供进程内计数信号量。
//
// Semaphore 持有一个非负计数：Wait 在计数为 0 时阻塞，否则原子减一；
// Post 原子加一，并在有等待者时精确唤醒一个（FIFO 次序，无惊群）。
// 典型用途是生产者-消费者结构中作为"待处理条目数"的镜像，
// 例如 xqueue 用它驱动消费者的阻塞等待。
//
// # 注意事项
//
//   - WaitContext 支持超时/取消；取消与 Post 授予竞争时以授予为准，
//     许可不会丢失
//   - Post 唤醒采用许可移交：被唤醒者无需重新竞争计数，
//     因此一次 Post 精确唤醒一个等待者（可测试不变量）
//   - Close 释放所有等待者并使后续 Wait/Post 返回 ErrClosed，
//     用于消费者侧的终止通知
//   - 计数无上限；如需有界行为请在调用方约束（如 xqueue 的容量检查）
//
// # 设计选择说明
//
// 设计决策: 不使用 golang.org/x/sync/semaphore.Weighted。
// Weighted 面向带权重的资源配额，Release 不支持"关闭释放所有等待者"语义，
// 而消费者终止通知正是本包的主要使用场景。FIFO 精确唤醒也便于验证
// "一次 Post 唤醒至多一个等待者"的不变量。
package xsema
