package version

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	info := Current()
	assert.Equal(t, "v1", info.APIVersion)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS, info.OS)
}

func TestFormatBuildTime(t *testing.T) {
	old := BuildTime
	defer func() { BuildTime = old }()

	BuildTime = "2021-03-04T05:06:07Z"
	assert.Equal(t, "Thu Mar 4 05:06:07 2021", formatBuildTime())

	BuildTime = "yesterday"
	assert.Equal(t, "yesterday", formatBuildTime())
}

func TestGetServerInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/version", r.URL.Path)
		json.NewEncoder(w).Encode(Info{Version: "1.2.3", APIVersion: "v1"})
	}))
	defer server.Close()

	info, err := GetServerInfo(context.Background(), server.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", info.Version)
}

func TestGetServerInfoStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := GetServerInfo(context.Background(), server.URL)
	assert.ErrorContains(t, err, "502")
}
