package sfboot

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	ast "github.com/honeybbq/sfbootconfig/pkg/ast/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
)

var (
	// sectionHeader matches "enp196s0f0np0:" on a line of its own.
	sectionHeader = regexp.MustCompile(`^[a-z][a-z0-9_-]{1,14}:$`)
	// fieldLine needs two or more spaces between label and value, since labels contain single spaces.
	fieldLine = regexp.MustCompile(`^\s+(.+?)  +(.+)$`)
)

// Scanner splits sfboot report text into sections of raw label/value fields.
type Scanner struct{}

func NewScanner() *Scanner {
	return &Scanner{}
}

// Parse 实现 renderer.Parser。
func (p *Scanner) Parse(ctx context.Context, bundle *sfbootconfig.Bundle, opts sfbootconfig.ParseOptions) (*ast.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	if bundle == nil {
		return nil, nxerrors.New(nxerrors.KindParse, fmt.Errorf("bundle is nil"))
	}

	doc := &ast.Document{}
	var current *ast.Section

	sc := bufio.NewScanner(bytes.NewReader(bundle.Output))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")

		if current != nil {
			if label, value, ok := splitField(line); ok {
				current.Fields = append(current.Fields, ast.Field{Label: label, Value: value, Line: lineNo})
				continue
			}
			// 属性块结束；该行仍可能是下一个 section 的标题。
			current = nil
		}

		if sectionHeader.MatchString(line) {
			name := strings.TrimSuffix(line, ":")
			section := &ast.Section{Name: name}
			if opts.WantsSection(name) {
				doc.Sections = append(doc.Sections, section)
			}
			current = section
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nxerrors.New(nxerrors.KindParse, fmt.Errorf("read report: %w", err))
	}
	return doc, nil
}

func splitField(line string) (label, value string, ok bool) {
	if strings.TrimSpace(line) == "" {
		return "", "", false
	}
	m := fieldLine.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	value = strings.TrimRight(m[2], " \t")
	if value == "" {
		return "", "", false
	}
	return m[1], value, true
}
