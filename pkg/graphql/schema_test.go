package graphql_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gql "github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/pkg/graphql"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
)

func init() { logger.Discard() }

func schema(t *testing.T) gql.Schema {
	t.Helper()
	s, err := graphql.NewSchema(gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"hello": &gql.Field{
				Type: gql.String,
				Args: gql.FieldConfigArgument{"name": &gql.ArgumentConfig{Type: gql.String}},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					name, _ := p.Args["name"].(string)
					return "hello " + name, nil
				},
			},
		},
	}))
	require.NoError(t, err)
	return s
}

func TestHandlerExecutesQuery(t *testing.T) {
	h := graphql.Handler(schema(t))
	rec := httptest.NewRecorder()
	body := `{"query":"query($n:String){ hello(name:$n) }","variables":{"n":"ada"}}`
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "hello ada", out.Data["hello"])
}

func TestHandlerRejectsEmptyQuery(t *testing.T) {
	rec := httptest.NewRecorder()
	graphql.Handler(schema(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMutationsAreNotDefined(t *testing.T) {
	rec := httptest.NewRecorder()
	graphql.Handler(schema(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/graphql",
		strings.NewReader(`{"query":"mutation { hello }"}`)))
	assert.Contains(t, rec.Body.String(), "errors")
}
