package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewValidatesBaseURL(t *testing.T) {
	t.Parallel()

	_, err := New("")
	var valErr ValidationError
	require.ErrorAs(t, err, &valErr)

	_, err = New("ftp://example.com")
	var optErr OptionError
	require.ErrorAs(t, err, &optErr)

	_, err = New("http://example.com", WithTimeout(0))
	require.ErrorAs(t, err, &optErr)
}

func TestWithTimeoutLeavesSharedClientAlone(t *testing.T) {
	t.Parallel()

	shared := &http.Client{Timeout: time.Minute}
	client, err := New("http://example.com", WithHTTPClient(shared), WithTimeout(time.Second))
	require.NoError(t, err)
	require.Equal(t, time.Minute, shared.Timeout)
	require.Equal(t, time.Second, client.httpClient.Timeout)
	require.NotSame(t, shared, client.httpClient)
}

func TestRegisterStoresToken(t *testing.T) {
	t.Parallel()

	var got RegisterRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users/register", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"tok-1","user":{"_id":"u1","name":"Jane","email":"jane@farm.co","role":"vendor"}}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL + "/api/")
	require.NoError(t, err)

	resp, err := client.Register(context.Background(), RegisterRequest{
		Name:     "Jane",
		Email:    "jane@farm.co",
		Password: "secret1",
		Role:     "vendor",
		Location: Location{Country: "Kenya", Region: "Nakuru"},
	})
	require.NoError(t, err)
	require.Equal(t, "u1", resp.User.ID)
	require.Equal(t, "tok-1", client.Token())
	require.True(t, client.Authenticated())
	require.Equal(t, "Nakuru", got.Location.Region)

	client.Logout()
	require.False(t, client.Authenticated())
}

func TestRegisterRejectsMissingEmail(t *testing.T) {
	t.Parallel()

	client, err := New("http://localhost:5000/api")
	require.NoError(t, err)
	_, err = client.Register(context.Background(), RegisterRequest{Password: "secret1"})
	var valErr ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Equal(t, "email", valErr.Field)
}

func TestRequestsCarryBearerToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-2", r.Header.Get("Authorization"))
		require.Equal(t, "/farmers/crops", r.URL.Path)
		_, _ = w.Write([]byte(`[{"_id":"c1","name":"Maize","area":2.5,"plantingDate":"2024-03-01T00:00:00Z","expectedHarvestDate":"2024-07-01T00:00:00Z","status":"growing"}]`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, WithToken("tok-2"))
	require.NoError(t, err)
	crops, err := client.ListCrops(context.Background())
	require.NoError(t, err)
	require.Len(t, crops, 1)
	require.Equal(t, "Maize", crops[0].Name)
	require.Equal(t, CropGrowing, crops[0].Status)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), crops[0].PlantingDate)
}

func TestHTTPErrorCarriesServerMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	require.NoError(t, err)
	_, err = client.Login(context.Background(), LoginRequest{Email: "a@b.co", Password: "x"})

	var httpErr HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	require.Equal(t, "Invalid credentials", httpErr.Message)
	require.True(t, httpErr.Unauthorized())
	require.False(t, client.Authenticated())
}

func TestNetworkErrorWhenServerUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := New(url, WithTimeout(time.Second))
	require.NoError(t, err)
	_, err = client.ListProducts(context.Background())

	var netErr NetworkError
	require.ErrorAs(t, err, &netErr)
	require.Equal(t, http.MethodGet, netErr.Method)
}

func TestDecodeError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	require.NoError(t, err)
	_, err = client.ListAnalytics(context.Background())
	var decErr DecodeError
	require.ErrorAs(t, err, &decErr)
}

func TestDeleteAndForecastPaths(t *testing.T) {
	t.Parallel()

	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.RequestURI())
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(`{"location":{"name":"Nairobi","country":"KE"},"forecast":[]}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL)
	require.NoError(t, err)
	require.NoError(t, client.DeleteProduct(context.Background(), "p 1"))
	forecast, err := client.Forecast(context.Background(), "Nairobi", "KE")
	require.NoError(t, err)
	require.Equal(t, "Nairobi", forecast.Location.Name)

	require.Equal(t, []string{
		"DELETE /vendors/products/p%201",
		"GET /weather/forecast?city=Nairobi&country=KE",
	}, seen)

	err = client.DeleteCrop(context.Background(), " ")
	require.True(t, errors.As(err, new(ValidationError)))
}
