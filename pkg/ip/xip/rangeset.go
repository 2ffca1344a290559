package xip

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// RangeSet 是规范化的地址范围集合。
//
// 规范形式不变量：成员按起点升序排列、两两不相交、相邻（数值连续）
// 的范围总是被合并。每个构造函数和每次运算都会重新建立这一形式。
//
// RangeSet 是不可变值类型：所有运算返回新实例，内部切片不对外暴露
// （[RangeSet.Ranges] 返回副本），可以安全地在多个 goroutine 间只读共享。
type RangeSet struct {
	ranges  []Range
	version Version
}

// RangeSetOf 从若干范围创建集合（自动排序、合并重叠与相邻）。
// 空参数返回空集合（版本为 V0，可与任何版本的集合运算）。
// 含无效范围返回 [ErrInvariant]；版本混杂返回 [ErrVersionMismatch]。
func RangeSetOf(ranges ...Range) (RangeSet, error) {
	if len(ranges) == 0 {
		return RangeSet{}, nil
	}
	version := ranges[0].Version()
	for _, r := range ranges {
		if !r.IsValid() {
			return RangeSet{}, errInvariant("range set members must be valid ranges")
		}
		if r.Version() != version {
			return RangeSet{}, errVersionMismatch("range set mixes %s and %s members", version, r.Version())
		}
	}
	return RangeSet{ranges: normalizeRanges(ranges), version: version}, nil
}

// RangeSetFromCIDRs 从若干 CIDR 块创建集合。
// 版本混杂返回 [ErrVersionMismatch]；含无效 CIDR 返回 [ErrInvariant]。
func RangeSetFromCIDRs(cidrs ...CIDR) (RangeSet, error) {
	ranges := make([]Range, 0, len(cidrs))
	for _, c := range cidrs {
		if !c.IsValid() {
			return RangeSet{}, errInvariant("range set members must be valid CIDRs")
		}
		ranges = append(ranges, c.ToRange())
	}
	return RangeSetOf(ranges...)
}

// ParseRangeSet 从字符串切片解析并合并为集合。每个字符串支持 3 种格式：
//   - CIDR："192.168.1.0/24"
//   - 范围："10.0.0.1-10.0.0.100"
//   - 单 IP："192.168.1.1"
//
// 解析失败返回 [ErrParse]（附带出错的字符串）；版本混杂返回
// [ErrVersionMismatch]。空切片或 nil 返回空集合。
func ParseRangeSet(strs []string) (RangeSet, error) {
	ranges := make([]Range, 0, len(strs))
	for _, s := range strs {
		r, err := parseRangeEntry(s)
		if err != nil {
			return RangeSet{}, fmt.Errorf("parse range set entry %q: %w", s, err)
		}
		ranges = append(ranges, r)
	}
	return RangeSetOf(ranges...)
}

// parseRangeEntry 按 CIDR / 范围 / 单 IP 的顺序识别单个条目。
func parseRangeEntry(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		c, err := ParseCIDR(s)
		if err != nil {
			return Range{}, err
		}
		return c.ToRange(), nil
	}
	if strings.Contains(s, "-") {
		return ParseRange(s)
	}
	a, err := ParseAddr(s)
	if err != nil {
		return Range{}, err
	}
	return Range{start: a, end: a}, nil
}

// normalizeRanges 建立规范形式：按起点升序排序，从左到右合并重叠或
// 数值相邻（下一个起点 == 上一个终点 +1）的范围，终点取两者较大值。
// 调用方保证输入范围有效且版本一致；输入切片不被修改。
func normalizeRanges(ranges []Range) []Range {
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		if c := sorted[i].start.Compare(sorted[j].start); c != 0 {
			return c < 0
		}
		return sorted[i].end.Compare(sorted[j].end) < 0
	})

	out := sorted[:0]
	for _, r := range sorted {
		if len(out) > 0 {
			last := &out[len(out)-1]
			// 重叠，或紧邻一格（差值恰为 1；已知 r.start > last.end，
			// 减法不会回绕）。
			if r.start.Compare(last.end) <= 0 ||
				r.start.value.Sub(last.end.value) == Uint128From64(1) {
				if r.end.Compare(last.end) > 0 {
					last.end = r.end
				}
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// Ranges 返回成员范围的副本，按起点升序。
// 任何组件都不应依赖集合的内部存储布局，需要成员时一律经由本方法。
func (s RangeSet) Ranges() []Range {
	if len(s.ranges) == 0 {
		return nil
	}
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Len 返回成员范围个数。
func (s RangeSet) Len() int { return len(s.ranges) }

// IsEmpty 报告集合是否为空。
func (s RangeSet) IsEmpty() bool { return len(s.ranges) == 0 }

// Version 返回集合的 IP 版本。空集合返回 V0。
func (s RangeSet) Version() Version { return s.version }

// Size 返回集合包含的地址总数。
func (s RangeSet) Size() *big.Int {
	total := new(big.Int)
	for _, r := range s.ranges {
		total.Add(total, r.Size())
	}
	return total
}

// Contains 报告地址是否落在某个成员范围内。
func (s RangeSet) Contains(a Addr) bool {
	if !a.IsValid() || a.version != s.version {
		return false
	}
	// 成员有序，二分定位第一个终点 >= a 的范围。
	i := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].end.Compare(a) >= 0
	})
	return i < len(s.ranges) && s.ranges[i].start.Compare(a) <= 0
}

// ContainsRange 报告范围是否完整落在单个成员范围内。
// 规范形式下成员互不相邻，跨成员的覆盖不可能存在。
func (s RangeSet) ContainsRange(r Range) bool {
	if !r.IsValid() || r.Version() != s.version {
		return false
	}
	i := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].end.Compare(r.start) >= 0
	})
	return i < len(s.ranges) && s.ranges[i].ContainsRange(r)
}

// ContainsCIDR 报告块的完整地址跨度是否落在单个成员范围内。
func (s RangeSet) ContainsCIDR(c CIDR) bool {
	if !c.IsValid() {
		return false
	}
	return s.ContainsRange(c.ToRange())
}

// checkSetVersions 校验两个集合可以参与同一运算。
// 空集合版本中立，可与任何集合组合。
func checkSetVersions(a, b RangeSet) error {
	if a.version.IsValid() && b.version.IsValid() && a.version != b.version {
		return errVersionMismatch("range sets are %s and %s", a.version, b.version)
	}
	return nil
}

// mergedVersion 返回两个集合中有效的那个版本。
func mergedVersion(a, b RangeSet) Version {
	if a.version.IsValid() {
		return a.version
	}
	return b.version
}

// Union 返回两个集合的并集。版本不同返回 [ErrVersionMismatch]。
// 并集满足交换律和幂等律。
func (s RangeSet) Union(o RangeSet) (RangeSet, error) {
	if err := checkSetVersions(s, o); err != nil {
		return RangeSet{}, err
	}
	merged := make([]Range, 0, len(s.ranges)+len(o.ranges))
	merged = append(merged, s.ranges...)
	merged = append(merged, o.ranges...)
	if len(merged) == 0 {
		return RangeSet{}, nil
	}
	return RangeSet{ranges: normalizeRanges(merged), version: mergedVersion(s, o)}, nil
}

// Intersect 返回两个集合的交集：对每对重叠的成员范围产出
// [max(起点), min(终点)]。版本不同返回 [ErrVersionMismatch]。
func (s RangeSet) Intersect(o RangeSet) (RangeSet, error) {
	if err := checkSetVersions(s, o); err != nil {
		return RangeSet{}, err
	}
	// 两侧都已规范化，双指针线性扫描即可。
	var out []Range
	i, j := 0, 0
	for i < len(s.ranges) && j < len(o.ranges) {
		a, b := s.ranges[i], o.ranges[j]
		start := a.start
		if b.start.Compare(start) > 0 {
			start = b.start
		}
		end := a.end
		if b.end.Compare(end) < 0 {
			end = b.end
		}
		if start.Compare(end) <= 0 {
			out = append(out, Range{start: start, end: end})
		}
		// 先耗尽终点较小的一侧。
		if a.end.Compare(b.end) <= 0 {
			i++
		} else {
			j++
		}
	}
	if len(out) == 0 {
		return RangeSet{}, nil
	}
	return RangeSet{ranges: normalizeRanges(out), version: mergedVersion(s, o)}, nil
}

// Subtract 返回从本集合中挖掉另一个集合后的差集。
// 版本不同返回 [ErrVersionMismatch]。
//
// 对 o 的每个范围依次折叠当前结果：与被减范围重叠的成员被拆成
// 左余量 [start, subStart-1] 和右余量 [subEnd+1, end]（非空才保留），
// 不重叠的成员原样保留。
func (s RangeSet) Subtract(o RangeSet) (RangeSet, error) {
	if err := checkSetVersions(s, o); err != nil {
		return RangeSet{}, err
	}
	acc := s.ranges
	for _, sub := range o.ranges {
		next := make([]Range, 0, len(acc)+1)
		for _, r := range acc {
			if !r.Overlaps(sub) {
				next = append(next, r)
				continue
			}
			if r.start.Compare(sub.start) < 0 {
				// sub.start > r.start >= 0，-1 不会回绕。
				left, _ := sub.start.Prev()
				next = append(next, Range{start: r.start, end: left})
			}
			if r.end.Compare(sub.end) > 0 {
				right, _ := sub.end.Next()
				next = append(next, Range{start: right, end: r.end})
			}
		}
		acc = next
	}
	if len(acc) == 0 {
		return RangeSet{}, nil
	}
	return RangeSet{ranges: normalizeRanges(acc), version: s.version}, nil
}

// ToCIDRs 返回恰好覆盖集合的最小 CIDR 块列表，按地址升序。
func (s RangeSet) ToCIDRs() []CIDR {
	var out []CIDR
	for _, r := range s.ranges {
		out = append(out, r.ToCIDRs()...)
	}
	return out
}

// Equal 报告两个集合是否包含完全相同的地址。
// 规范形式唯一，逐成员比较即可。
func (s RangeSet) Equal(o RangeSet) bool {
	if len(s.ranges) != len(o.ranges) {
		return false
	}
	for i := range s.ranges {
		if s.ranges[i] != o.ranges[i] {
			return false
		}
	}
	return true
}

// String 返回成员范围的逗号分隔文本。空集合返回 ""。
func (s RangeSet) String() string {
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
