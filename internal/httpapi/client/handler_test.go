package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetrackhq/closetrack/internal/auth"
	"github.com/closetrackhq/closetrack/internal/client"
	clientStore "github.com/closetrackhq/closetrack/internal/client/store"
	clientHandler "github.com/closetrackhq/closetrack/internal/httpapi/client"
)

func newServer(t *testing.T) (*httptest.Server, *client.Service, uuid.UUID) {
	t.Helper()

	svc := client.NewService(clientStore.NewMemory())
	h := clientHandler.NewHandler(svc)

	user := &auth.User{ID: uuid.New(), Username: "maria", Role: auth.RoleAgent}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	})
	router.Route("/api/clients", h.Routes)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, svc, user.ID
}

func TestHandler_ImportCSV_JSONBody(t *testing.T) {
	srv, _, _ := newServer(t)

	body := map[string]string{
		"csvData": "first_name,last_name\nMaria,Santos\n,Broken\n",
	}

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/clients/import", "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Message string         `json:"message"`
		Clients []inlineClient `json:"clients"`
		Skipped int            `json:"skipped"`
		Details []string       `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Len(t, got.Clients, 1)
	assert.Equal(t, 1, got.Skipped)
	require.Len(t, got.Details, 1)
	assert.Contains(t, got.Details[0], "row 3")
}

type inlineClient struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func TestHandler_ImportCSV_Multipart(t *testing.T) {
	srv, svc, agentID := newServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", "clients.csv")
	require.NoError(t, err)

	_, err = part.Write([]byte("First Name,Last Name,Email Address\nSam,Okafor,sam@example.com\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/api/clients/import", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	clients, err := svc.List(context.Background(), agentID)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "sam@example.com", clients[0].Email)
}

func TestHandler_ImportCSV_AllRowsInvalid(t *testing.T) {
	srv, _, _ := newServer(t)

	body := strings.NewReader(`{"csvData": "first_name,last_name\n,Broken\n"}`)

	resp, err := http.Post(srv.URL+"/api/clients/import", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var got struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.NotEmpty(t, got.Error)
	require.Len(t, got.Details, 1)
	assert.Contains(t, got.Details[0], "row 2")
}

func TestHandler_CreateAndList(t *testing.T) {
	srv, _, _ := newServer(t)

	body := strings.NewReader(`{"firstName": "Maria", "lastName": "Santos", "type": "seller"}`)

	resp, err := http.Post(srv.URL+"/api/clients", "application/json", body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/clients")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got []inlineClient
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Santos", got[0].LastName)
}
