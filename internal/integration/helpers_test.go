package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":     {},
	"requestId":     {},
	"createdAt":     {},
	"expiresAt":     {},
	"showtimeStart": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	script, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read %s", path)

	_, err = db.Exec(context.Background(), string(script))
	require.NoError(t, err, "failed to execute %s", path)
}

func bearerToken(t testing.TB, userId int) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userId,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(TestJWTSecret))
	require.NoError(t, err)

	return "Bearer " + token
}

// call sends a request to the running test server and decodes a JSON
// response into out when out is not nil.
func call(t testing.TB, serverURL string, userId int, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, serverURL+path, reader)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	if userId != 0 {
		req.Header.Set("Authorization", bearerToken(t, userId))
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	if out != nil && res.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}

	return res.StatusCode
}

func jsonBody(t testing.TB, v any) io.Reader {
	t.Helper()

	payload, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(payload)
}

func walletBalance(t testing.TB, db *pgxpool.Pool, userId int) int64 {
	t.Helper()

	var balance int64
	err := db.QueryRow(context.Background(), `SELECT COALESCE((SELECT balance FROM wallet_accounts WHERE user_id = $1), 0)`, userId).
		Scan(&balance)
	require.NoError(t, err)

	return balance
}

func ledgerSum(t testing.TB, db *pgxpool.Pool, userId int) int64 {
	t.Helper()

	var sum int64
	err := db.QueryRow(context.Background(), `SELECT COALESCE(SUM(delta), 0) FROM ledger_entries WHERE user_id = $1`, userId).
		Scan(&sum)
	require.NoError(t, err)

	return sum
}

func countRows(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))

	return n
}
