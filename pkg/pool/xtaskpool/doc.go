// Package xtaskpool 提供固定规模的进程内 worker 池。
//
// Pool 用固定数量的常驻 worker goroutine 消费一个有界 FIFO 队列，
// 把任务提交（如 accept 循环移交连接）与任务执行解耦，
// 同时约束并发度（worker 数固定）和内存（队列深度有界）。
// 队列是互斥锁保护的环形缓冲区加计数信号量（见 xqueue），
// worker 等待信号量、锁内出队、锁外执行。
//
// # 注意事项
//
//   - Submit 永不阻塞：队列满返回 false，这是正常控制流结果而非错误，
//     由调用方决定重试或丢弃；需要退避重试语义请用 SubmitRetry
//   - 任务在锁外执行：任意慢的 Execute 不会阻塞其他提交者或其他 worker 出队
//   - 被接受的任务按提交次序执行（FIFO），每个任务至多执行一次
//   - nil 任务被接受并在执行阶段静默跳过（历史宽容行为）
//   - 任务 panic 被恢复并记录（含堆栈），不杀死 worker，
//     池的有效并发度不因单个任务失败而缩减
//   - 任务一旦开始执行就运行到完成，没有中途取消机制
//   - New 创建后自动启动全部 worker，无需手动 Start；配置无效时返回错误，
//     不产生半成品池
//   - Close/Shutdown 不可在任务内调用，否则会死锁
//   - 任务所有权：提交成功后转移给队列，Execute 返回后池不再保留引用
//
// # 关闭策略
//
// Close 等价于 Shutdown(context.Background())，无限等待。
// Shutdown 关闭队列（释放所有阻塞中的 worker，等价于每个 worker 一次唤醒），
// 然后 join 全部 worker——池的销毁不会与引用池状态的 worker 竞态。
// 残留任务按 WithDrainPolicy 处理：DrainAll（默认）执行完再退出，
// DiscardPending 直接丢弃。ctx 到期后 Shutdown 返回 ctx 错误，
// 残留 worker 继续在后台排空，可通过 Done() 等待最终完成。
//
// # 设计选择说明
//
// 设计决策: 仅设置停止标志不足以终止 worker——阻塞在空队列信号量等待中的
// worker 观察不到标志。关闭队列让所有等待者立即返回哨兵错误，
// 是"每个 worker 补一次唤醒"的等价实现，且天然免疫重复关闭。
//
// 设计决策: Submit 返回 bool 而非 error。满队列拒绝是高频正常路径，
// 布尔返回让调用方的"接受即继续、拒绝即降级"分支最直接；
// 需要区分"满"与"已停止"的调用方应使用 SubmitRetry 的错误返回。
package xtaskpool
