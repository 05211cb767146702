package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwaggerIsValid(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)

	require.NoError(t, doc.Validate(t.Context()))
}

func TestEveryRouteIsDocumented(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)

	router := chi.NewRouter()
	HandlerFromMux(Unimplemented{}, router)

	routes := 0
	err = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes++

		path := strings.TrimSuffix(route, "/")
		item := doc.Paths.Find(path)
		if !assert.NotNil(t, item, "route %s is not documented", path) {
			return nil
		}

		assert.NotNil(t, item.GetOperation(method), "%s %s is not documented", method, path)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 9, routes)
}

func TestInvalidPathParameter(t *testing.T) {
	var gotErr error

	handler := HandlerWithOptions(Unimplemented{}, ChiServerOptions{
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			gotErr = err
			w.WriteHeader(http.StatusBadRequest)
		},
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/users/me/bookings/abc", nil)
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var paramErr *InvalidParamFormatError
	require.ErrorAs(t, gotErr, &paramErr)
	assert.Equal(t, "bookingId", paramErr.ParamName)
}

func TestGeneratedSpecMatchesSource(t *testing.T) {
	generated, err := GetSwagger()
	require.NoError(t, err)

	source, err := openapi3.NewLoader().LoadFromFile("api.yaml")
	require.NoError(t, err)

	want, err := source.MarshalJSON()
	require.NoError(t, err)

	got, err := generated.MarshalJSON()
	require.NoError(t, err)

	assert.JSONEq(t, string(want), string(got), "run go generate ./api after editing api.yaml")
}
