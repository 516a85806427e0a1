package vdom

import (
	"fmt"
	"iter"
	"strings"
)

// Text creates an escaped text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates a node whose text is written without escaping. Never pass it
// user input.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment}
	for _, c := range children {
		node.Children = appendChild(node.Children, c)
	}
	return node
}

// If returns node when condition holds and nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// When calls fn only when condition holds.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// RangeSeq maps seq to nodes, dropping nils. seq is consumed once per call.
func RangeSeq[T any](seq iter.Seq[T], fn func(item T) *VNode) []*VNode {
	var result []*VNode
	for item := range seq {
		if node := fn(item); node != nil {
			result = append(result, node)
		}
	}
	return result
}

// CN joins class names, dropping empty and whitespace-only parts.
func CN(classes ...string) string {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// CNIf returns class when condition holds, and "" otherwise. Meant for CN.
func CNIf(condition bool, class string) string {
	if condition {
		return class
	}
	return ""
}
