package core

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/followgraph/internal/core/model"
)

type executedQuery struct {
	Query  string
	Params map[string]interface{}
}

type MockDriver struct {
	Queries    []executedQuery
	MockResult neo4j.EagerResult
	Err        error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, executedQuery{Query: query, Params: params})
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func (m *MockDriver) count(query string) int {
	n := 0
	for _, q := range m.Queries {
		if q.Query == query {
			n++
		}
	}
	return n
}

// MockCollector returns fixed friend lists; ids it does not know get an empty set.
type MockCollector struct {
	Friends map[string]model.FriendSet
	Drop    []string
	Calls   [][]string
}

func (m *MockCollector) CollectAll(ctx context.Context, ids []string) model.EntityFriendMap {
	m.Calls = append(m.Calls, ids)
	out := make(model.EntityFriendMap, len(ids))
	for _, id := range ids {
		fs, ok := m.Friends[id]
		if !ok {
			fs = model.FriendSet{}
		}
		out[id] = fs
	}
	for _, id := range m.Drop {
		delete(out, id)
	}
	return out
}
