package xip

// Addr、CIDR、Range 实现 encoding.TextMarshaler / TextUnmarshaler，
// 因此可以直接用于 JSON、YAML、map key 等所有基于文本编码的场合。
// 输出一律为规范文本形式。WireRange 提供结构化 {start, end} 序列化。

// MarshalText 实现 [encoding.TextMarshaler]，输出规范文本形式。
// 无效地址输出空字节切片。
func (a Addr) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]，支持 [ParseAddr]
// 接受的所有格式。空输入设置为零值。
func (a *Addr) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*a = Addr{}
		return nil
	}
	parsed, err := ParseAddr(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalText 实现 [encoding.TextMarshaler]，输出 "address/prefixLength"。
// 无效 CIDR 输出空字节切片。
func (c CIDR) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]，支持 [ParseCIDR]
// 接受的格式。空输入设置为零值。
func (c *CIDR) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = CIDR{}
		return nil
	}
	parsed, err := ParseCIDR(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText 实现 [encoding.TextMarshaler]，输出 "start-end"。
// 无效范围输出空字节切片。
func (r Range) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText 实现 [encoding.TextUnmarshaler]，支持 [ParseRange]
// 接受的格式。空输入设置为零值。
func (r *Range) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*r = Range{}
		return nil
	}
	parsed, err := ParseRange(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// WireRange 是地址范围的结构化序列化格式。
// 使用 JSON/YAML/koanf 标签 {"start":"...","end":"..."}。
type WireRange struct {
	Start string `json:"start" yaml:"start" koanf:"start"`
	End   string `json:"end" yaml:"end" koanf:"end"`
}

// WireRangeFrom 从 [Range] 创建 WireRange。
// r 无效返回 [ErrInvariant]。
func WireRangeFrom(r Range) (WireRange, error) {
	if !r.IsValid() {
		return WireRange{}, errInvariant("cannot serialize the zero Range")
	}
	return WireRange{Start: r.start.String(), End: r.end.String()}, nil
}

// ToRange 将反序列化得到的 WireRange 还原为 [Range]。
// 两端地址解析失败返回 [ErrParse]；起止倒置返回 [ErrInvariant]。
func (w WireRange) ToRange() (Range, error) {
	start, err := ParseAddr(w.Start)
	if err != nil {
		return Range{}, err
	}
	end, err := ParseAddr(w.End)
	if err != nil {
		return Range{}, err
	}
	return RangeFrom(start, end)
}
