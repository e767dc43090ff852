package sync

import (
	"time"

	domain "github.com/honeybbq/sfbootconfig/domain/sfboot"
)

// Snapshot 记录一次 sfboot 读取的结果。
type Snapshot struct {
	Target    string
	Timestamp time.Time
	Config    *domain.Config
}

// ChangeSet 描述一次 apply 的请求与结果。
type ChangeSet struct {
	Target    string
	Requested domain.Attributes
	Reported  *Snapshot
	Diff      *DiffResult
}

// Mismatch 记录请求值与上报值不一致的属性。
type Mismatch struct {
	Name      string
	Requested domain.Value
	Reported  domain.Value
}

// DiffResult 对比请求属性与 sfboot 上报的 section。
type DiffResult struct {
	Matched []string   // 上报值与请求一致
	Changed []Mismatch // 上报值不同
	Missing []string   // section 中没有该属性
}

// Clean reports whether every requested attribute was reported as requested.
func (d *DiffResult) Clean() bool {
	return d == nil || (len(d.Changed) == 0 && len(d.Missing) == 0)
}
