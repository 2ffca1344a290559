package xalloc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/ipkit/pkg/ip/xip"
)

// Format 地址池定义文件格式。
type Format string

const (
	// FormatYAML YAML 格式。
	FormatYAML Format = "yaml"
	// FormatJSON JSON 格式。
	FormatJSON Format = "json"
)

// PoolConfig 单个地址池的声明。
//
// Taken 的每个条目接受三种写法：CIDR（含 '/'）、范围（含 '-'）
// 或单个地址，语义同 [xip.ParseRangeSet]。
type PoolConfig struct {
	Name  string   `koanf:"name" json:"name" yaml:"name"`
	CIDR  string   `koanf:"cidr" json:"cidr" yaml:"cidr"`
	Taken []string `koanf:"taken" json:"taken" yaml:"taken"`
}

// poolsFile 定义文件的顶层结构。
type poolsFile struct {
	Pools []PoolConfig `koanf:"pools"`
}

// LoadPools 从定义文件构建地址池集合，键为池名。
// 根据文件扩展名自动检测格式（.yaml/.yml 或 .json）。
func LoadPools(path string) (map[string]*Allocator, error) {
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

	return LoadPoolsFromBytes(data, format)
}

// LoadPoolsFromBytes 从字节数据构建地址池集合。
// 需要显式指定格式，适用于 K8s ConfigMap 等场景。
// 空数据返回空集合。
func LoadPoolsFromBytes(data []byte, format Format) (map[string]*Allocator, error) {
	if !isValidFormat(format) {
		return nil, ErrUnsupportedFormat
	}

	pools := make(map[string]*Allocator)
	if len(data) == 0 {
		return pools, nil
	}

	k := koanf.New(".")
	if err := loadData(k, data, format); err != nil {
		return nil, err
	}

	var file poolsFile
	if err := k.Unmarshal("", &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	for _, pc := range file.Pools {
		if pc.Name == "" {
			return nil, fmt.Errorf("%w: pool with cidr %q has no name", ErrParseFailed, pc.CIDR)
		}
		if _, exists := pools[pc.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePool, pc.Name)
		}
		alloc, err := buildPool(pc)
		if err != nil {
			return nil, fmt.Errorf("%w: pool %s: %w", ErrParseFailed, pc.Name, err)
		}
		pools[pc.Name] = alloc
	}

	return pools, nil
}

// buildPool 将一条声明转换为分配器。
func buildPool(pc PoolConfig) (*Allocator, error) {
	parent, err := xip.ParseCIDR(pc.CIDR)
	if err != nil {
		return nil, err
	}
	taken, err := xip.ParseRangeSet(pc.Taken)
	if err != nil {
		return nil, err
	}
	return New(parent, taken.Ranges()...)
}

// detectFormat 根据文件扩展名检测定义文件格式。
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %s", ErrUnsupportedFormat, ext)
	}
}

// isValidFormat 检查格式是否有效。
func isValidFormat(format Format) bool {
	switch format {
	case FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// loadData 加载数据到 koanf 实例。
func loadData(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return ErrUnsupportedFormat
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return nil
}
