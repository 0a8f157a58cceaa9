/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package cfnyaml decodes YAML documents that use the CloudFormation
// intrinsic-function short tags (!Ref, !GetAtt, !Join, ...), resolving each
// tag to the single-key mapping form of the full template syntax.
package cfnyaml

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tags that resolve to a key of the same name.
var cfnTags = []string{
	"Condition",
	"Ref",
}

// Function tags that resolve under the Fn:: namespace.
var cfnFns = []string{
	"And",
	"Base64",
	"Cidr",
	"Equals",
	"FindInMap",
	"GetAtt",
	"GetAZs",
	"If",
	"ImportValue",
	"Join",
	"Not",
	"Or",
	"Select",
	"Split",
	"Sub",
	"Transform",
}

// Parser decodes YAML while resolving intrinsic short tags. Each Parser owns
// its rule table, so construct one per document rather than sharing a global
// registry.
type Parser struct {
	rules map[string]string // short tag name -> resolved key
}

// NewParser creates a Parser with the full CloudFormation tag table
func NewParser() *Parser {
	rules := make(map[string]string, len(cfnTags)+len(cfnFns))
	for _, name := range cfnTags {
		rules[name] = name
	}
	for _, name := range cfnFns {
		rules[name] = "Fn::" + name
	}
	return &Parser{rules: rules}
}

// Unmarshal decodes data with a fresh Parser
func Unmarshal(data []byte) (any, error) {
	return NewParser().Parse(data)
}

// Parse decodes a YAML document into plain nested values (map[string]any,
// []any, string, int, float64, bool, nil) with every intrinsic short tag
// resolved to its single-key mapping form
func (p *Parser) Parse(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// empty document
		return nil, nil
	}
	return p.resolve(doc.Content[0])
}

func (p *Parser) resolve(node *yaml.Node) (any, error) {
	if node.Kind == yaml.AliasNode {
		return p.resolve(node.Alias)
	}

	if isShortTag(node.Tag) {
		return p.resolveTag(strings.TrimPrefix(node.Tag, "!"), node)
	}

	switch node.Kind {
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	case yaml.SequenceNode:
		return p.resolveSequence(node)
	case yaml.MappingNode:
		return p.resolveMapping(node)
	}
	return nil, nil
}

func (p *Parser) resolveSequence(node *yaml.Node) ([]any, error) {
	seq := make([]any, 0, len(node.Content))
	for _, child := range node.Content {
		value, err := p.resolve(child)
		if err != nil {
			return nil, err
		}
		seq = append(seq, value)
	}
	return seq, nil
}

func (p *Parser) resolveMapping(node *yaml.Node) (map[string]any, error) {
	m := make(map[string]any, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return nil, err
		}
		value, err := p.resolve(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		m[key] = value
	}
	return m, nil
}

// resolveTag turns a tagged node into the {resolvedKey: value} mapping form
func (p *Parser) resolveTag(name string, node *yaml.Node) (map[string]any, error) {
	key, ok := p.rules[name]
	if !ok {
		return nil, fmt.Errorf("unsupported tag !%s, supported tags are: %s",
			name, strings.Join(p.supportedTags(), ", "))
	}

	if key == "Fn::GetAtt" {
		value, err := p.resolveGetAtt(node)
		if err != nil {
			return nil, err
		}
		return map[string]any{key: value}, nil
	}

	var value any
	var err error
	switch node.Kind {
	case yaml.ScalarNode:
		value = node.Value
	case yaml.SequenceNode:
		value, err = p.resolveSequence(node)
	case yaml.MappingNode:
		value, err = p.resolveMapping(node)
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{key: value}, nil
}

// resolveGetAtt handles the attribute-reference special case: a scalar
// "Resource.Attribute.Path" splits on the first dot; a sequence must hold
// only strings
func (p *Parser) resolveGetAtt(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		parts := strings.SplitN(node.Value, ".", 2)
		value := make([]any, len(parts))
		for i, part := range parts {
			value[i] = part
		}
		return value, nil
	case yaml.SequenceNode:
		seq, err := p.resolveSequence(node)
		if err != nil {
			return nil, err
		}
		for _, item := range seq {
			if _, ok := item.(string); !ok {
				return nil, errors.New("Fn::GetAtt does not support complex data structures")
			}
		}
		return seq, nil
	default:
		return nil, errors.New("Fn::GetAtt only supports string or list values")
	}
}

// supportedTags returns every short tag name, sorted alphabetically
func (p *Parser) supportedTags() []string {
	names := make([]string, 0, len(p.rules))
	for name := range p.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isShortTag reports whether tag is a custom short tag such as "!Ref", as
// opposed to the standard "!!str" family
func isShortTag(tag string) bool {
	return len(tag) > 1 && tag[0] == '!' && tag[1] != '!'
}
