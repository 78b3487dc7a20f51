package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/reports"
	"pet-adoption/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "petadopt version "+Version)
}

func TestRunReport_LocalSeeded(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SeedSampleData = true

	var out bytes.Buffer
	require.NoError(t, runReport(context.Background(), cfg, reportOptions{}, &out))

	var doc reports.Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, 4, doc.TotalPets)
	assert.Equal(t, 0, doc.TotalRequests)
	assert.Equal(t, 0.25, doc.AdoptionRate)
}

func TestRunReport_Remote(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	res, err := http.Post(ts.URL+"/pets", "application/json", bytes.NewBufferString(`{"name":"Milo","species":"cat"}`))
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var out bytes.Buffer
	err = runReport(context.Background(), config.DefaultConfig(), reportOptions{remote: ts.URL}, &out)
	require.NoError(t, err)

	var doc reports.Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, 1, doc.TotalPets)
	assert.Equal(t, 1, doc.PetsBySpecies["cat"])
}
