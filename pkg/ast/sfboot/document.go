package sfboot

// Document 表示一次 sfboot 输出中扫描出的全部 section。
type Document struct {
	Sections []*Section
}

// Section 对应一个以 "name:" 开头的报告块（单个网卡或 global）。
type Section struct {
	Name   string
	Fields []Field
}

// Field is one raw "label  value" line, kept verbatim apart from trimming.
type Field struct {
	Label string
	Value string
	Line  int
}

// Lookup returns the section with the given name, or nil.
func (d *Document) Lookup(name string) *Section {
	if d == nil {
		return nil
	}
	for _, s := range d.Sections {
		if s != nil && s.Name == name {
			return s
		}
	}
	return nil
}

// Command 是写入方向的 AST：目标网卡加上有序的选项列表。
type Command struct {
	Target  string
	Options []Option
}

// Option is one flag=value pair before quoting.
type Option struct {
	Flag  string
	Value string
}
