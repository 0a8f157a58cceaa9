/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cfnyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PlainDocument(t *testing.T) {
	result, err := Unmarshal([]byte("name: vpc\ncount: 3\nenabled: true\n"))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":    "vpc",
		"count":   3,
		"enabled": true,
	}, result)
}

func TestParse_EmptyDocument(t *testing.T) {
	result, err := Unmarshal([]byte(""))

	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestParse_RefTag(t *testing.T) {
	result, err := Unmarshal([]byte("SubnetId: !Ref PublicSubnet\n"))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"SubnetId": map[string]any{"Ref": "PublicSubnet"},
	}, result)
}

func TestParse_ConditionTagKeepsBareName(t *testing.T) {
	result, err := Unmarshal([]byte("!Condition IsProduction\n"))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Condition": "IsProduction"}, result)
}

func TestParse_FunctionTagGainsNamespace(t *testing.T) {
	result, err := Unmarshal([]byte(`!Join ["-", [alpha, beta]]`))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"Fn::Join": []any{"-", []any{"alpha", "beta"}},
	}, result)
}

func TestParse_NestedTagsInsideSequence(t *testing.T) {
	result, err := Unmarshal([]byte(`!Join ["-", [!Ref Prefix, suffix]]`))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"Fn::Join": []any{"-", []any{
			map[string]any{"Ref": "Prefix"},
			"suffix",
		}},
	}, result)
}

func TestParse_MappingTagValue(t *testing.T) {
	result, err := Unmarshal([]byte("!Sub\n  Template: value\n"))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"Fn::Sub": map[string]any{"Template": "value"},
	}, result)
}

func TestParse_GetAttScalarSplitsOnFirstDot(t *testing.T) {
	result, err := Unmarshal([]byte("!GetAtt MyResource.Arn\n"))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"Fn::GetAtt": []any{"MyResource", "Arn"},
	}, result)
}

func TestParse_GetAttScalarKeepsAttributePathIntact(t *testing.T) {
	result, err := Unmarshal([]byte("!GetAtt MyResource.Outputs.Arn\n"))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"Fn::GetAtt": []any{"MyResource", "Outputs.Arn"},
	}, result)
}

func TestParse_GetAttSequencePassesThrough(t *testing.T) {
	result, err := Unmarshal([]byte(`!GetAtt [MyResource, Arn]`))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"Fn::GetAtt": []any{"MyResource", "Arn"},
	}, result)
}

func TestParse_GetAttSequenceRejectsNonStrings(t *testing.T) {
	_, err := Unmarshal([]byte(`!GetAtt [MyResource, [nested]]`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support complex data structures")
}

func TestParse_GetAttMappingRejected(t *testing.T) {
	_, err := Unmarshal([]byte("!GetAtt\n  Resource: MyResource\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "only supports string or list values")
}

func TestParse_UnsupportedTagListsAllTagsSorted(t *testing.T) {
	_, err := Unmarshal([]byte("!Foo bar\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported tag !Foo")
	assert.Contains(t, err.Error(),
		"And, Base64, Cidr, Condition, Equals, FindInMap, GetAZs, GetAtt, If, "+
			"ImportValue, Join, Not, Or, Ref, Select, Split, Sub, Transform")
}

func TestParse_FullTemplate(t *testing.T) {
	template := `
Resources:
  Instance:
    Type: AWS::EC2::Instance
    Properties:
      SubnetId: !Ref PublicSubnet
      IamInstanceProfile: !GetAtt Profile.Arn
      UserData: !Base64 |
        #!/bin/bash
Outputs:
  InstanceId:
    Value: !Ref Instance
`
	result, err := Unmarshal([]byte(template))

	require.NoError(t, err)
	doc, ok := result.(map[string]any)
	require.True(t, ok)

	resources := doc["Resources"].(map[string]any)
	properties := resources["Instance"].(map[string]any)["Properties"].(map[string]any)
	assert.Equal(t, map[string]any{"Ref": "PublicSubnet"}, properties["SubnetId"])
	assert.Equal(t, map[string]any{"Fn::GetAtt": []any{"Profile", "Arn"}}, properties["IamInstanceProfile"])

	outputs := doc["Outputs"].(map[string]any)
	assert.Equal(t, map[string]any{"Ref": "Instance"},
		outputs["InstanceId"].(map[string]any)["Value"])
}

func TestNewParser_RuleTableIsPerInstance(t *testing.T) {
	a := NewParser()
	b := NewParser()

	delete(a.rules, "Ref")

	_, err := b.Parse([]byte("!Ref Thing\n"))
	assert.NoError(t, err)
}
