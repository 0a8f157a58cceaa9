/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

package differ

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cairnhq/cairn/internal/model"
)

// MockStackDiffer is a mock implementation of StackDiffer for testing
type MockStackDiffer[D any] struct {
	mock.Mock
}

func (m *MockStackDiffer[D]) Diff(ctx context.Context, config model.StackConfiguration, template string) (*model.StackDiff[D], error) {
	args := m.Called(ctx, config, template)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StackDiff[D]), args.Error(1)
}
