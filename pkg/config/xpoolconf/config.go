package xpoolconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/xtask/pkg/pool/xtaskpool"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	// FormatYAML YAML 格式（推荐用于 K8s ConfigMap）。
	FormatYAML Format = "yaml"

	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// 关闭策略的配置取值。
const (
	// DrainValueAll 对应 xtaskpool.DrainAll（默认）。
	DrainValueAll = "drain_all"

	// DrainValueDiscard 对应 xtaskpool.DiscardPending。
	DrainValueDiscard = "discard_pending"
)

// Config 是 worker 池的外部化配置。
// 零值字段在 Load/LoadBytes 中回填默认值；真正的边界校验由
// xtaskpool.New 执行，Validate 只拦截明显无效的取值。
type Config struct {
	// Name 池名称，用于日志和指标来源区分。
	Name string `koanf:"name"`

	// Workers worker 数量。0 表示使用默认值（8）。
	Workers int `koanf:"workers"`

	// Capacity 任务队列容量。0 表示使用默认值（10000）。
	Capacity int `koanf:"capacity"`

	// Drain 关闭时残留任务的处理策略："drain_all"（默认）或 "discard_pending"。
	Drain string `koanf:"drain"`
}

// Load 从文件路径加载配置。
// 根据文件扩展名自动检测格式（.yaml/.yml 或 .json）。
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return LoadBytes(data, format)
}

// LoadBytes 从字节数据加载配置。
// 需要显式指定格式，适用于 K8s ConfigMap 等场景。
// 空数据返回全默认值的配置（与 xconf 的空文件行为对齐）。
func LoadBytes(data []byte, format Format) (*Config, error) {
	parser, err := parserFor(format)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
	}

	var c Config
	if err := k.UnmarshalWithConf("", &c, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate 校验配置取值。
// Workers/Capacity 必须为正（上限由 xtaskpool.New 把关），
// Drain 必须是已知策略名。
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if _, err := c.drainPolicy(); err != nil {
		return err
	}
	return nil
}

// Options 把配置转换为 xtaskpool.New 的选项列表。
// 调用方可以继续追加 WithLogger/WithMeterProvider 等运行时选项：
//
//	pool, err := xtaskpool.New(append(cfg.Options(), xtaskpool.WithLogger(l))...)
func (c *Config) Options() []xtaskpool.Option {
	opts := []xtaskpool.Option{
		xtaskpool.WithName(c.Name),
		xtaskpool.WithWorkers(c.Workers),
		xtaskpool.WithCapacity(c.Capacity),
	}
	if p, err := c.drainPolicy(); err == nil {
		opts = append(opts, xtaskpool.WithDrainPolicy(p))
	}
	return opts
}

func (c *Config) applyDefaults() {
	if c.Workers == 0 {
		c.Workers = xtaskpool.DefaultWorkers
	}
	if c.Capacity == 0 {
		c.Capacity = xtaskpool.DefaultCapacity
	}
	if c.Drain == "" {
		c.Drain = DrainValueAll
	}
}

func (c *Config) drainPolicy() (xtaskpool.DrainPolicy, error) {
	switch c.Drain {
	case "", DrainValueAll:
		return xtaskpool.DrainAll, nil
	case DrainValueDiscard:
		return xtaskpool.DiscardPending, nil
	default:
		return xtaskpool.DrainAll, fmt.Errorf("%w: unknown drain policy %q", ErrInvalidConfig, c.Drain)
	}
}

func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func parserFor(format Format) (koanf.Parser, error) {
	switch format {
	case FormatYAML:
		return yaml.Parser(), nil
	case FormatJSON:
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
