package convert

import (
	"errors"
	"fmt"

	"github.com/ByLCY/figui/figma"
)

// 转换过程中的错误分类。除 ErrFatalImport 外都是警告级：默认记录后继续，严格模式下升级为致命错误。
var (
	ErrUnsupportedNodeType = errors.New("不支持的节点类型")
	ErrMalformedGeometry   = errors.New("几何数据异常")
	ErrMissingAsset        = errors.New("字体或图形缺失")
	ErrUnsupportedFeature  = errors.New("不支持的特性")
	ErrConversionFailed    = errors.New("节点转换失败")
	ErrFatalImport         = errors.New("导入失败")
)

// Issue 是一条带节点身份的转换问题。
type Issue struct {
	Kind     error
	NodeID   string
	NodeName string
	NodeType figma.NodeType
	Message  string
	Err      error
	Fatal    bool
}

func newIssue(kind error, n *figma.Node, msg string) *Issue {
	is := &Issue{Kind: kind, Message: msg}
	if n != nil {
		is.NodeID = n.ID
		is.NodeName = n.Name
		is.NodeType = n.Type
	}
	return is
}

func (i *Issue) Error() string {
	prefix := ""
	if i.Fatal {
		prefix = ErrFatalImport.Error() + ": "
	}
	msg := fmt.Sprintf("%s%v: 节点 %s (%q, %s)", prefix, i.Kind, i.NodeID, i.NodeName, i.NodeType)
	if i.Message != "" {
		msg += ": " + i.Message
	}
	if i.Err != nil {
		msg += ": " + i.Err.Error()
	}
	return msg
}

// Unwrap 让 errors.Is 同时匹配分类、底层错误，以及致命时的 ErrFatalImport。
func (i *Issue) Unwrap() []error {
	errs := make([]error, 0, 3)
	if i.Kind != nil {
		errs = append(errs, i.Kind)
	}
	if i.Err != nil {
		errs = append(errs, i.Err)
	}
	if i.Fatal {
		errs = append(errs, ErrFatalImport)
	}
	return errs
}

// kindOf 从转换器返回的错误中识别分类，未识别的归为 ErrConversionFailed。
func kindOf(err error) error {
	for _, k := range []error{ErrFatalImport, ErrUnsupportedNodeType, ErrMalformedGeometry, ErrMissingAsset, ErrUnsupportedFeature} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrConversionFailed
}
