package library

import (
	"fmt"
	stdstrings "strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wehubfusion/Daedalus/pkg/node"
)

// Casing modes accepted by the ChangeCase node's Mode input.
const (
	CaseUpper = "upper"
	CaseLower = "lower"
	CaseTitle = "title"
)

// ChangeCaseNode rewrites the casing of its string Value input. Mode
// defaults to upper and also accepts lower and title.
type ChangeCaseNode struct {
	node.BaseNode
}

// NewChangeCase builds a casing node instance.
func NewChangeCase(desc *node.ClassDescriptor, cfg node.Config) (*ChangeCaseNode, error) {
	base, err := node.NewBaseNode(desc, cfg)
	if err != nil {
		return nil, err
	}
	n := &ChangeCaseNode{BaseNode: base}
	n.Bind(n)
	return n, nil
}

// Run applies the selected casing and writes the Result output. An unknown
// mode is a domain error reported through the node's channel.
func (n *ChangeCaseNode) Run() error {
	n.Logger().Debug("executing node", zap.String("node", n.String()))
	raw, err := n.ReadInput("Value")
	if err != nil {
		return err
	}
	mode, err := n.ReadInput("Mode")
	if err != nil {
		return err
	}
	value, _ := raw.(string)
	switch mode {
	case CaseUpper:
		value = stdstrings.ToUpper(value)
	case CaseLower:
		value = stdstrings.ToLower(value)
	case CaseTitle:
		value = cases.Title(language.Und).String(value)
	default:
		n.RaiseError("BadMode", fmt.Sprintf("unknown case mode %v", mode))
		return nil
	}
	return n.WriteOutput("Result", value)
}
