// Package xpoolconf 提供 worker 池的外部化配置加载。
//
// 基于 koanf 支持 YAML/JSON 两种格式，把部署层关心的池参数
// （worker 数量、队列容量、名称、关闭策略）从代码中拆出：
//
//	cfg, err := xpoolconf.Load("pool.yaml")
//	if err != nil {
//	    return err
//	}
//	pool, err := xtaskpool.New(cfg.Options()...)
//
// # 注意事项
//
//   - 省略的字段回填默认值（workers=8、capacity=10000、drain=drain_all）
//   - Options 只覆盖可序列化的配置；logger、MeterProvider 等运行时
//     依赖由调用方追加
//   - 边界校验分两层：Validate 拦截非正值与未知策略名，
//     上限（worker/容量最大值）由 xtaskpool.New 统一把关
package xpoolconf
