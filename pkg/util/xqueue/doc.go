// Package xqueue 提供有界 FIFO 队列。
//
// Queue 是互斥锁保护的环形缓冲区加 xsema 计数信号量的组合：
// 信号量的值始终镜像队列中已入队未被认领的条目数（正确操作下不偏离，
// 可测试不变量）。生产者侧非阻塞（满则拒绝），消费者侧阻塞等待。
//
// # 注意事项
//
//   - TryEnqueue 永不阻塞：队列满返回 false，由调用方决定重试或丢弃；
//     这是正常控制流结果，不是错误
//   - 入队次序即出队次序（FIFO），仅对被接受的条目成立
//   - Dequeue 内部消化虚假唤醒（关闭唤醒、取消竞态），返回 nil 错误时必然取到条目
//   - Close 释放所有阻塞中的消费者；残留条目经 TryDequeue 排空，
//     排空与否由调用方的关闭策略决定
//   - 条目所有权：入队成功后归队列持有，出队后转移给消费者
//
// # 设计选择说明
//
// 设计决策: 不直接用带缓冲 channel。channel 关闭后无法区分
// "拒绝新入队但保留残留条目供排空"与"彻底结束"，向已关闭 channel
// 发送还会 panic，迫使提交方用 recover 兜底。显式的锁加信号量结构
// 把这两个关闭语义拆开，也让"信号量计数 == 队列长度"成为可断言的不变量。
package xqueue
